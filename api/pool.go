// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs: fixed-capacity handle pools over
// hardware-backed memory regions.

package api

// HandlePool abstracts a reference-counted, content-deduplicating allocator
// over a fixed array of hardware-backed slots.
//
// All entry points are synchronous and non-blocking; the only failure kind
// is ErrCapacityExhausted. Pools are single-threaded by contract: callers
// must not share one pool across goroutines.
type HandlePool interface {
	// CapacityUnits returns the total number of hardware units managed.
	CapacityUnits() int

	// UsedUnits returns the number of hardware units currently live.
	UsedUnits() int

	// Stats exposes resource/accounting metrics for observability.
	Stats() PoolStats
}

// ContentHash is the externally supplied content-hash function the dedup
// index is built on. It is a pure function over byte sequences, assumed
// collision-resistant enough for indexing but never trusted alone for
// equality: a hash match is always confirmed by full content comparison.
type ContentHash func(data []byte) uint64

// PoolStats aggregates slot allocation/reuse stats for one pool.
type PoolStats struct {
	CapacityUnits int64
	UsedUnits     int64
	FreeUnits     int64
	LiveSlots     int64
	TotalCreates  int64 // slots allocated (create + allocate paths)
	TotalFrees    int64 // slots returned to the free list
	DedupHits     int64 // find/find_or_create calls resolved to a live slot
}
