// File: pool/manager.go
// Package pool implements the pool manager: allocation policy and placement.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The Manager is the single owner of the slot table and the dedup index.
// It is constructed explicitly and passed to the subsystems that need it;
// there is no package-level pool state.

package pool

import (
	"github.com/momentics/hioload-vram/api"
	"github.com/momentics/hioload-vram/internal/fingerprint"
)

// Manager allocates handles over one fixed hardware memory region.
//
// Entry points come in two flavors: the plain ones fail hard with
// api.ErrCapacityExhausted when no contiguous free region of the required
// size exists, the Optional* ones report the same condition as a false ok
// for call sites with a documented fallback. There is no partial
// allocation and no automatic eviction.
type Manager struct {
	name    string
	backend api.Backend
	table   *slotTable
	index   *dedupIndex
	hash    api.ContentHash

	creates   int64
	frees     int64
	dedupHits int64
}

// Option tunes Manager construction.
type Option func(*Manager)

// WithHash replaces the dedup content-hash function. The hash is only an
// index accelerator; identity is always confirmed by content comparison.
func WithHash(h api.ContentHash) Option {
	return func(m *Manager) { m.hash = h }
}

// WithMaxSlots caps the number of simultaneously live slots below the
// default (one per capacity unit).
func WithMaxSlots(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.table = newSlotTable(m.table.capacity, minInt(n, MaxSlots))
		}
	}
}

// NewManager builds a pool over backend managing capacityUnits units.
func NewManager(name string, backend api.Backend, capacityUnits int, opts ...Option) (*Manager, error) {
	if backend == nil || capacityUnits <= 0 || backend.UnitBytes() <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "pool: bad manager parameters").
			WithContext("pool", name).
			WithContext("capacityUnits", capacityUnits)
	}
	if len(backend.Bytes()) < capacityUnits*backend.UnitBytes() {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "pool: backend region smaller than declared capacity").
			WithContext("pool", name).
			WithContext("regionBytes", len(backend.Bytes()))
	}
	m := &Manager{
		name:    name,
		backend: backend,
		table:   newSlotTable(capacityUnits, minInt(capacityUnits, MaxSlots)),
		index:   newDedupIndex(),
		hash:    fingerprint.Default,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Name returns the pool's diagnostic name.
func (m *Manager) Name() string { return m.name }

// Find returns a handle to the live slot whose source content equals src,
// or ok=false when no such slot exists. Find never allocates.
func (m *Manager) Find(src []byte) (Handle, bool) {
	units := m.unitsFor(src)
	idx, ok := m.index.find(m.table, fingerprint.Make(m.hash, src, units), src)
	if !ok {
		return Handle{idx: NoSlot}, false
	}
	m.table.slots[idx].refs++
	m.dedupHits++
	return Handle{idx: idx, mgr: m}, true
}

// Create allocates a fresh slot sized to src, copies src into hardware
// memory, and registers its fingerprint. Duplicates are not checked:
// Create always consumes capacity.
func (m *Manager) Create(src []byte) (Handle, error) {
	units := m.unitsFor(src)
	idx := m.table.reserve(units)
	if idx == NoSlot {
		return Handle{idx: NoSlot}, m.capacityError(units)
	}
	s := &m.table.slots[idx]
	key := fingerprint.Make(m.hash, src, units)
	s.fp = key
	s.hasFP = true
	s.source = src
	m.index.insert(key, idx)
	m.upload(s, src)
	m.creates++
	return Handle{idx: idx, mgr: m}, nil
}

// FindOrCreate is the common path: two calls with bit-identical source
// content resolve to the same slot while both handles are live.
func (m *Manager) FindOrCreate(src []byte) (Handle, error) {
	if h, ok := m.Find(src); ok {
		return h, nil
	}
	return m.Create(src)
}

// Allocate reserves units of raw, uninitialized hardware memory with no
// source binding and no fingerprint. Never participates in dedup.
func (m *Manager) Allocate(units int) (Handle, error) {
	if units <= 0 {
		panic("pool: allocate of non-positive unit count")
	}
	idx := m.table.reserve(units)
	if idx == NoSlot {
		return Handle{idx: NoSlot}, m.capacityError(units)
	}
	m.creates++
	return Handle{idx: idx, mgr: m}, nil
}

// OptionalCreate is Create for call sites with a fallback policy: a
// capacity failure is reported as ok=false instead of an error.
func (m *Manager) OptionalCreate(src []byte) (Handle, bool) {
	h, err := m.Create(src)
	return h, err == nil
}

// OptionalFindOrCreate is FindOrCreate with the optional failure contract.
func (m *Manager) OptionalFindOrCreate(src []byte) (Handle, bool) {
	h, err := m.FindOrCreate(src)
	return h, err == nil
}

// OptionalAllocate is Allocate with the optional failure contract.
func (m *Manager) OptionalAllocate(units int) (Handle, bool) {
	h, err := m.Allocate(units)
	return h, err == nil
}

// CapacityUnits implements api.HandlePool.
func (m *Manager) CapacityUnits() int { return m.table.capacity }

// UsedUnits implements api.HandlePool.
func (m *Manager) UsedUnits() int { return m.table.usedUnits }

// Stats implements api.HandlePool.
func (m *Manager) Stats() api.PoolStats {
	return api.PoolStats{
		CapacityUnits: int64(m.table.capacity),
		UsedUnits:     int64(m.table.usedUnits),
		FreeUnits:     int64(m.table.freeUnits()),
		LiveSlots:     int64(m.table.liveSlots()),
		TotalCreates:  m.creates,
		TotalFrees:    m.frees,
		DedupHits:     m.dedupHits,
	}
}

var _ api.HandlePool = (*Manager)(nil)

// unitsFor validates src against the unit granularity.
// A source that is empty or not unit-aligned is a programming error.
func (m *Manager) unitsFor(src []byte) int {
	ub := m.backend.UnitBytes()
	if len(src) == 0 || len(src)%ub != 0 {
		panic("pool: source length not a positive multiple of the unit size")
	}
	return len(src) / ub
}

// upload copies src into the slot's hardware region and commits it.
func (m *Manager) upload(s *slot, src []byte) {
	ub := m.backend.UnitBytes()
	copy(m.backend.Bytes()[s.offsetUnits*ub:], src)
	// Transfer errors surface at the device sync point, not here.
	_ = m.backend.Commit(s.offsetUnits, s.units)
}

func (m *Manager) capacityError(units int) error {
	return api.NewError(api.ErrCodeCapacityExhausted, api.ErrCapacityExhausted.Error()).
		WithContext("pool", m.name).
		WithContext("requestedUnits", units).
		WithContext("freeUnits", m.table.freeUnits())
}

// releaseSlot drops one reference; at zero the slot leaves the dedup index
// and its region returns to the free list.
func (m *Manager) releaseSlot(idx SlotIndex) {
	s := &m.table.slots[idx]
	if s.refs <= 0 {
		panic("pool: release of a free slot")
	}
	s.refs--
	if s.refs > 0 {
		return
	}
	if s.hasFP {
		m.index.remove(s.fp, idx)
	}
	m.table.release(idx)
	m.frees++
}

// reloadSlot re-uploads the slot's bound source unchanged. The
// fingerprint cannot have drifted, so the dedup index is untouched.
func (m *Manager) reloadSlot(idx SlotIndex) {
	s := &m.table.slots[idx]
	if s.source == nil {
		panic("pool: reload of a slot without a source binding")
	}
	m.upload(s, s.source)
}

// rebindSlot replaces the slot's mirrored source and re-copies it into
// hardware memory. The new source must occupy the same unit count.
func (m *Manager) rebindSlot(idx SlotIndex, src []byte) {
	s := &m.table.slots[idx]
	if s.source == nil {
		panic("pool: rebind of a slot without a source binding")
	}
	if m.unitsFor(src) != s.units {
		panic("pool: rebind with a different unit count")
	}
	key := fingerprint.Make(m.hash, src, s.units)
	if s.hasFP {
		m.index.remove(s.fp, idx)
	}
	s.fp = key
	s.hasFP = true
	s.source = src
	m.index.insert(key, idx)
	m.upload(s, src)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
