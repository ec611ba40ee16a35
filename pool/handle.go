// File: pool/handle.go
// Package pool implements the caller-facing handle value type.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/cespare/xxhash/v2"

// Handle is a lightweight value referencing one slot of a Manager. It is
// the only caller-visible representation of ownership: each live Handle
// accounts for exactly one reference on its slot.
//
// Go has no copy constructors, so sharing and transfer are explicit:
//
//	b := a.Clone()   // copy semantics: both live, refcount +1
//	b := a.Move()    // move semantics: a becomes empty, refcount unchanged
//	b.Release()      // destroy semantics: refcount -1, slot freed at zero
//
// Passing a Handle by value without Clone does NOT take a reference; the
// receiver must not outlive the original. All other operations on an empty
// or released handle panic.
type Handle struct {
	idx SlotIndex
	mgr *Manager
}

// Valid reports whether the handle references a slot. The zero value is
// a valid empty handle: not Valid, inert, and safe to Release.
func (h Handle) Valid() bool { return h.idx >= 0 && h.mgr != nil }

// ID returns the slot index: a stable small integer uniquely identifying
// the resource while it is live. Suitable as a map key and for equality.
func (h Handle) ID() int { return int(h.slot()) }

// UnitCount returns the slot's size in hardware units.
func (h Handle) UnitCount() int { return h.mgr.table.slots[h.slot()].units }

// SourceView returns the bound source data the slot mirrors, ok=false if
// the slot was raw-allocated and never bound.
func (h Handle) SourceView() ([]byte, bool) {
	s := &h.mgr.table.slots[h.slot()]
	return s.source, s.source != nil
}

// RebindSource replaces the slot's mirrored source and re-copies it into
// hardware memory. The new source must occupy the same unit count as the
// slot; the slot's dedup fingerprint follows the new content.
func (h Handle) RebindSource(src []byte) {
	h.mgr.rebindSlot(h.slot(), src)
}

// Reload re-copies the currently bound source into hardware memory
// unchanged, for callers whose backing storage was transiently reused
// and has been restored since the last upload.
func (h Handle) Reload() {
	h.mgr.reloadSlot(h.slot())
}

// HardwareView returns a direct mutable view onto the slot's hardware
// memory region for in-place writes bypassing the source binding. The
// view must not be retained past the handle's lifetime.
func (h Handle) HardwareView() []byte {
	s := &h.mgr.table.slots[h.slot()]
	ub := h.mgr.backend.UnitBytes()
	return h.mgr.backend.Bytes()[s.offsetUnits*ub : (s.offsetUnits+s.units)*ub]
}

// Commit pushes the slot's current hardware-memory contents to the device,
// typically after HardwareView writes.
func (h Handle) Commit() error {
	s := &h.mgr.table.slots[h.slot()]
	return h.mgr.backend.Commit(s.offsetUnits, s.units)
}

// Clone returns a second handle on the same slot, incrementing its
// reference count.
func (h Handle) Clone() Handle {
	h.mgr.table.slots[h.slot()].refs++
	return h
}

// Move transfers ownership to the returned handle and empties the
// receiver. No reference count changes. The moved-from handle is safe to
// Release (a no-op).
func (h *Handle) Move() Handle {
	moved := *h
	h.idx = NoSlot
	h.mgr = nil
	return moved
}

// Release drops this handle's reference. When the last reference goes,
// the slot returns to the free list and leaves the dedup index. Release
// on an empty handle is a no-op; the handle is empty afterwards, so a
// double Release cannot underflow the count.
func (h *Handle) Release() {
	if h.idx < 0 || h.mgr == nil {
		return
	}
	h.mgr.releaseSlot(h.idx)
	h.idx = NoSlot
	h.mgr = nil
}

// Hash64 hashes the handle identity, for use in caller-side hash maps.
func (h Handle) Hash64() uint64 {
	var b [2]byte
	b[0] = byte(h.slot())
	b[1] = byte(uint16(h.slot()) >> 8)
	return xxhash.Sum64(b[:])
}

// slot returns the index after the liveness precondition check.
func (h Handle) slot() SlotIndex {
	if h.idx < 0 || h.mgr == nil {
		panic("pool: use of an empty handle")
	}
	return h.idx
}
