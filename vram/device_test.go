// File: vram/device_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vram_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vram/api"
	"github.com/momentics/hioload-vram/vram"
)

func tileData(tiles int, fill byte) []byte {
	src := make([]byte, tiles*32)
	for i := range src {
		src[i] = fill
	}
	return src
}

func newTestDevice(t *testing.T, transfer api.TransferFunc) *vram.Device {
	t.Helper()
	cfg := vram.DefaultConfig()
	cfg.Transfer = transfer
	d, err := vram.NewDevice(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestTileBankDedup(t *testing.T) {
	d := newTestDevice(t, nil)

	src := tileData(16, 0x3C)
	h1, err := d.Tiles().FindOrCreate(src)
	require.NoError(t, err)
	h2, err := d.Tiles().FindOrCreate(src)
	require.NoError(t, err)
	require.Equal(t, h1.ID(), h2.ID())
	require.Equal(t, int64(16), d.Tiles().Stats().UsedUnits)

	h1.Release()
	h2.Release()
	require.Equal(t, int64(0), d.Tiles().Stats().UsedUnits)
}

func TestTileBankGeometry(t *testing.T) {
	d := newTestDevice(t, nil)

	require.True(t, d.Tiles().ValidTileCount(64))
	require.False(t, d.Tiles().ValidTileCount(48))

	require.Equal(t, 64, d.Tiles().NormalizeTileCount(48))
	require.Equal(t, 1024, d.Tiles().NormalizeTileCount(2000))

	_, err := d.Tiles().Create(tileData(48, 0))
	require.ErrorIs(t, err, api.ErrInvalidArgument)
	_, err = d.Tiles().Allocate(3)
	require.ErrorIs(t, err, api.ErrInvalidArgument)

	// The optional path folds geometry rejections into ok=false too.
	_, ok := d.Tiles().OptionalCreate(tileData(48, 0))
	require.False(t, ok)

	h, err := d.Tiles().Allocate(128)
	require.NoError(t, err)
	h.Release()
}

func TestVBlankDrainsCommits(t *testing.T) {
	var got []api.CommitRange
	d := newTestDevice(t, func(rng api.CommitRange, data []byte) error {
		got = append(got, rng)
		require.Len(t, data, rng.UnitCount*32)
		return nil
	})

	h, err := d.Tiles().Create(tileData(32, 0x77))
	require.NoError(t, err)
	require.Equal(t, 1, d.PendingCommits())

	require.NoError(t, d.VBlank())
	require.Equal(t, 0, d.PendingCommits())
	require.Equal(t, []api.CommitRange{{Bank: api.BankTiles, OffsetUnits: 0, UnitCount: 32}}, got)

	// Nothing pending: VBlank is a no-op.
	require.NoError(t, d.VBlank())
	require.Len(t, got, 1)

	h.Release()
}

// A saturated queue must not lose transfers: the overflowing bank falls
// back to one whole-region flush at the next sync point.
func TestCommitQueueSaturationFullFlush(t *testing.T) {
	var got []api.CommitRange
	var fullFlushData []byte
	cfg := vram.DefaultConfig()
	cfg.CommitQueueDepth = 1
	cfg.Transfer = func(rng api.CommitRange, data []byte) error {
		got = append(got, rng)
		if rng.UnitCount == cfg.TileCapacity {
			fullFlushData = append([]byte(nil), data...)
		}
		return nil
	}
	d, err := vram.NewDevice(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	h1, err := d.Tiles().Create(tileData(16, 0x01))
	require.NoError(t, err)
	h2, err := d.Tiles().Create(tileData(16, 0x02))
	require.NoError(t, err)

	require.NoError(t, d.VBlank())
	require.Equal(t, []api.CommitRange{
		{Bank: api.BankTiles, OffsetUnits: 0, UnitCount: 16},
		{Bank: api.BankTiles, OffsetUnits: 0, UnitCount: cfg.TileCapacity},
	}, got)
	// The dropped range's bytes still reach the device via the flush.
	require.Equal(t, byte(0x02), fullFlushData[16*32])

	// The flush is one-shot: the next sync point transfers nothing.
	got = nil
	require.NoError(t, d.VBlank())
	require.Empty(t, got)

	h1.Release()
	h2.Release()
}

func TestPaletteBank(t *testing.T) {
	d := newTestDevice(t, nil)

	colors := make([]uint16, vram.ColorsPerPalette)
	for i := range colors {
		colors[i] = uint16(0x7FFF - i)
	}

	h1, err := d.Palettes().FindOrCreate(colors)
	require.NoError(t, err)
	h2, err := d.Palettes().FindOrCreate(colors)
	require.NoError(t, err)
	require.Equal(t, h1.ID(), h2.ID())

	_, err = d.Palettes().Create(colors[:4])
	require.ErrorIs(t, err, api.ErrInvalidArgument)

	h1.Release()
	h2.Release()
}

func TestAffineBankSharing(t *testing.T) {
	d := newTestDevice(t, nil)

	a, err := d.Affine().FindOrCreate(vram.Identity())
	require.NoError(t, err)
	b, err := d.Affine().FindOrCreate(vram.Identity())
	require.NoError(t, err)
	require.Equal(t, a.ID(), b.ID(), "identity matrix must be shared")
	require.Equal(t, int64(1), d.Affine().Stats().LiveSlots)

	a.Release()
	b.Release()
}

func TestAffineBankExhaustionFallback(t *testing.T) {
	d := newTestDevice(t, nil)

	handles := make([]vram.Handle, 0, 32)
	for i := 0; i < 32; i++ {
		h, err := d.Affine().FindOrCreate(vram.Matrix{PA: int16(i + 1), PD: 256})
		require.NoError(t, err)
		handles = append(handles, h)
	}

	// All slots taken: the optional path degrades instead of failing.
	_, ok := d.Affine().OptionalFindOrCreate(vram.Matrix{PA: 999, PD: 256})
	require.False(t, ok)
	_, err := d.Affine().Create(vram.Matrix{PA: 999, PD: 256})
	require.ErrorIs(t, err, api.ErrCapacityExhausted)

	// Reusing an already-live transform still works at full capacity.
	h, ok := d.Affine().OptionalFindOrCreate(vram.Matrix{PA: 1, PD: 256})
	require.True(t, ok)
	h.Release()

	for i := range handles {
		handles[i].Release()
	}
	require.Equal(t, int64(0), d.Affine().Stats().LiveSlots)
}

func TestDeviceStatsProbes(t *testing.T) {
	d := newTestDevice(t, nil)

	stats := d.Stats()
	for _, key := range []string{"tiles", "palettes", "affine", "pendingCommits"} {
		require.Contains(t, stats, key)
	}

	cfg := d.Control().GetConfig()
	require.Equal(t, 1024, cfg["tileCapacity"])
}
