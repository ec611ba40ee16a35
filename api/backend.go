// File: api/backend.go
// Author: momentics <momentics@gmail.com>
//
// Opaque hardware memory backend consumed by handle pools.
//
// Backends may be mmap regions, shared memory, or device-mapped VRAM.
// The pool assumes a stable, randomly-addressable region and performs
// no device I/O itself; Commit is the transfer primitive.

package api

// Backend exposes one fixed hardware memory region to a handle pool.
type Backend interface {
	// Bytes returns the whole backing region. The slice identity is stable
	// for the backend's lifetime; contents are mutated in place.
	Bytes() []byte

	// UnitBytes returns the fixed allocation granularity in bytes
	// (e.g. one 32-byte tile).
	UnitBytes() int

	// Commit pushes unitCount units starting at offsetUnits to the
	// physical device. Implementations may transfer immediately or defer
	// to a hardware synchronization point.
	Commit(offsetUnits, unitCount int) error
}
