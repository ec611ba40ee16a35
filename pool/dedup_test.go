// File: pool/dedup_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vram/pool"
)

// A constant hash forces every source into one bucket: lookups must still
// resolve by content, never by hash alone.
func TestDedupSurvivesHashCollisions(t *testing.T) {
	collide := func([]byte) uint64 { return 42 }
	m := newTestManager(t, 8, pool.WithHash(collide))

	x := source(2, 0x01)
	y := source(2, 0x02)

	hx, err := m.FindOrCreate(x)
	require.NoError(t, err)
	hy, err := m.FindOrCreate(y)
	require.NoError(t, err)
	require.NotEqual(t, hx.ID(), hy.ID(), "colliding contents must not share a slot")

	fx, ok := m.Find(x)
	require.True(t, ok)
	require.Equal(t, hx.ID(), fx.ID())
	fy, ok := m.Find(y)
	require.True(t, ok)
	require.Equal(t, hy.ID(), fy.ID())

	// Releasing one colliding slot leaves the other findable.
	fx.Release()
	hx.Release()
	_, ok = m.Find(x)
	require.False(t, ok)
	fy2, ok := m.Find(y)
	require.True(t, ok)
	require.Equal(t, hy.ID(), fy2.ID())

	fy.Release()
	fy2.Release()
	hy.Release()
}

// Create never dedup-checks: explicit duplicates coexist, and the index
// keeps serving the survivors as duplicates go away.
func TestExplicitDuplicateSlots(t *testing.T) {
	m := newTestManager(t, 8)

	x := source(1, 0x07)
	h1, err := m.Create(x)
	require.NoError(t, err)
	h2, err := m.Create(x)
	require.NoError(t, err)
	require.NotEqual(t, h1.ID(), h2.ID())
	require.Equal(t, 2, m.UsedUnits())

	found, ok := m.Find(x)
	require.True(t, ok)
	require.Contains(t, []int{h1.ID(), h2.ID()}, found.ID())
	found.Release()

	h1.Release()
	found2, ok := m.Find(x)
	require.True(t, ok)
	require.Equal(t, h2.ID(), found2.ID())
	found2.Release()
	h2.Release()

	_, ok = m.Find(x)
	require.False(t, ok)
}
