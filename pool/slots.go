// File: pool/slots.go
// Package pool implements the fixed-capacity slot table and free-region list.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/hioload-vram/internal/fingerprint"

// SlotIndex is the handle index width. Handles are kept deliberately small
// for memory-constrained targets; widen this single type to raise the slot
// limit.
type SlotIndex int16

// NoSlot marks an empty handle.
const NoSlot SlotIndex = -1

// MaxSlots is the hard ceiling implied by the SlotIndex width.
const MaxSlots = int(^uint16(0) >> 1)

// slot is one hardware region plus its bookkeeping. Owned exclusively by
// the Manager; external code only ever sees Handle values.
type slot struct {
	offsetUnits int // first unit of the hardware region
	units       int // immutable for the slot's lifetime
	refs        int
	fp          fingerprint.Key
	hasFP       bool
	source      []byte // caller-owned mirrored data, nil once detached
}

// freeRegion is one contiguous run of free units.
type freeRegion struct {
	offsetUnits int
	units       int
}

// slotTable: fixed array of slots, a LIFO stack of free slot indices, and
// a first-fit free-region list kept sorted by offset with coalescing.
//
// Invariants: a slot with refs == 0 is on the free stack and never in the
// dedup index; a slot with refs > 0 is never on the free stack.
type slotTable struct {
	slots     []slot
	freeSlots []SlotIndex
	regions   []freeRegion
	capacity  int
	usedUnits int
}

func newSlotTable(capacityUnits, maxSlots int) *slotTable {
	t := &slotTable{
		slots:     make([]slot, maxSlots),
		freeSlots: make([]SlotIndex, 0, maxSlots),
		regions:   []freeRegion{{offsetUnits: 0, units: capacityUnits}},
		capacity:  capacityUnits,
	}
	// Stack is popped from the tail; push descending so the lowest index
	// is handed out first.
	for i := maxSlots - 1; i >= 0; i-- {
		t.freeSlots = append(t.freeSlots, SlotIndex(i))
	}
	return t
}

// reserve claims units contiguous units first-fit and binds them to a free
// slot index. Returns NoSlot when no region fits or all slots are live.
func (t *slotTable) reserve(units int) SlotIndex {
	if len(t.freeSlots) == 0 {
		return NoSlot
	}
	for ri := range t.regions {
		if t.regions[ri].units < units {
			continue
		}
		offset := t.regions[ri].offsetUnits
		t.regions[ri].offsetUnits += units
		t.regions[ri].units -= units
		if t.regions[ri].units == 0 {
			t.regions = append(t.regions[:ri], t.regions[ri+1:]...)
		}

		idx := t.freeSlots[len(t.freeSlots)-1]
		t.freeSlots = t.freeSlots[:len(t.freeSlots)-1]
		t.slots[idx] = slot{offsetUnits: offset, units: units, refs: 1}
		t.usedUnits += units
		return idx
	}
	return NoSlot
}

// release returns the slot's region to the free list, coalescing with
// adjacent free regions, and pushes the slot index back on the stack.
func (t *slotTable) release(idx SlotIndex) {
	s := &t.slots[idx]
	t.usedUnits -= s.units
	t.insertRegion(freeRegion{offsetUnits: s.offsetUnits, units: s.units})
	*s = slot{}
	t.freeSlots = append(t.freeSlots, idx)
}

// insertRegion keeps the free-region list sorted by offset and merges
// neighbours that touch.
func (t *slotTable) insertRegion(r freeRegion) {
	pos := len(t.regions)
	for i := range t.regions {
		if t.regions[i].offsetUnits > r.offsetUnits {
			pos = i
			break
		}
	}
	t.regions = append(t.regions, freeRegion{})
	copy(t.regions[pos+1:], t.regions[pos:])
	t.regions[pos] = r

	// Merge with successor first, then predecessor.
	if pos+1 < len(t.regions) && r.offsetUnits+r.units == t.regions[pos+1].offsetUnits {
		t.regions[pos].units += t.regions[pos+1].units
		t.regions = append(t.regions[:pos+1], t.regions[pos+2:]...)
	}
	if pos > 0 && t.regions[pos-1].offsetUnits+t.regions[pos-1].units == t.regions[pos].offsetUnits {
		t.regions[pos-1].units += t.regions[pos].units
		t.regions = append(t.regions[:pos], t.regions[pos+1:]...)
	}
}

// liveSlots counts slots currently bound.
func (t *slotTable) liveSlots() int {
	return len(t.slots) - len(t.freeSlots)
}

func (t *slotTable) freeUnits() int {
	return t.capacity - t.usedUnits
}
