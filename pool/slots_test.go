// File: pool/slots_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "testing"

func TestFirstFitPlacement(t *testing.T) {
	tbl := newSlotTable(8, 8)

	a := tbl.reserve(2)
	b := tbl.reserve(3)
	c := tbl.reserve(3)
	if a == NoSlot || b == NoSlot || c == NoSlot {
		t.Fatal("expected three reservations to fit")
	}
	if tbl.slots[a].offsetUnits != 0 || tbl.slots[b].offsetUnits != 2 || tbl.slots[c].offsetUnits != 5 {
		t.Errorf("unexpected offsets: %d %d %d",
			tbl.slots[a].offsetUnits, tbl.slots[b].offsetUnits, tbl.slots[c].offsetUnits)
	}

	// Free the first region; a fitting request must take it first-fit.
	tbl.release(a)
	d := tbl.reserve(2)
	if d == NoSlot || tbl.slots[d].offsetUnits != 0 {
		t.Errorf("expected reuse of offset 0, got slot %d", d)
	}
}

func TestCoalescing(t *testing.T) {
	tbl := newSlotTable(4, 4)

	a := tbl.reserve(1)
	b := tbl.reserve(1)
	c := tbl.reserve(1)
	d := tbl.reserve(1)

	// Free in an order that only coalesces once the middle pieces land.
	tbl.release(a)
	tbl.release(c)
	if got := tbl.reserve(2); got != NoSlot {
		t.Fatal("fragmented units must not satisfy a contiguous request")
	}
	tbl.release(b)
	if got := tbl.reserve(3); got == NoSlot {
		t.Fatal("adjacent free regions must coalesce")
	} else {
		tbl.release(got)
	}
	tbl.release(d)

	if got := tbl.reserve(4); got == NoSlot {
		t.Fatal("full capacity must be reservable after all frees")
	}
	if tbl.usedUnits != 4 || tbl.freeUnits() != 0 {
		t.Errorf("accounting off: used=%d free=%d", tbl.usedUnits, tbl.freeUnits())
	}
}

func TestSlotIndexExhaustion(t *testing.T) {
	// Two slot entries over four units: the third reservation fails even
	// though free units remain.
	tbl := newSlotTable(4, 2)

	if tbl.reserve(1) == NoSlot || tbl.reserve(1) == NoSlot {
		t.Fatal("expected two reservations to fit")
	}
	if tbl.reserve(1) != NoSlot {
		t.Error("expected slot index exhaustion")
	}
}

func TestLowestSlotIndexFirst(t *testing.T) {
	tbl := newSlotTable(4, 4)
	if idx := tbl.reserve(1); idx != 0 {
		t.Errorf("first reservation got slot %d, want 0", idx)
	}
	if idx := tbl.reserve(1); idx != 1 {
		t.Errorf("second reservation got slot %d, want 1", idx)
	}
}
