// Package pool
// Author: momentics <momentics@gmail.com>
//
// Reference-counted, content-deduplicating handle pools over fixed-capacity
// hardware memory regions for hioload-vram.
// A Manager owns a slot table and a dedup index; callers hold Handle values
// and never touch slot internals. All placement is first-fit with no
// compaction. Pools are single-threaded by contract.
// See slots.go, dedup.go, handle.go, manager.go for implementation details.
package pool
