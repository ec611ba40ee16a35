// File: vram/tiles.go
// Package vram: tile memory bank, the exemplar handle type.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vram

import (
	"github.com/momentics/hioload-vram/api"
	"github.com/momentics/hioload-vram/internal/units"
	"github.com/momentics/hioload-vram/pool"
)

// TileBank manages tile memory. Units are whole tiles; the hardware only
// accepts block sizes from a fixed geometry table, enforced on every
// allocating entry point.
type TileBank struct {
	mgr       *pool.Manager
	tileBytes int
}

func newTileBank(d *Device, capacity, tileBytes int) (*TileBank, error) {
	region, err := d.newBankRegion(api.BankTiles, tileBytes, capacity)
	if err != nil {
		return nil, err
	}
	mgr, err := pool.NewManager("tiles", region, capacity)
	if err != nil {
		return nil, err
	}
	return &TileBank{mgr: mgr, tileBytes: tileBytes}, nil
}

// ValidTileCount reports whether n tiles is an accepted block geometry.
func (b *TileBank) ValidTileCount(n int) bool { return units.ValidTileCount(n) }

// NormalizeTileCount rounds n up to the smallest accepted block
// geometry, for callers sizing a block from arbitrary sprite sheets.
func (b *TileBank) NormalizeTileCount(n int) int { return units.NormalizeTileCount(n) }

// Find returns a handle to live tiles with content identical to src.
func (b *TileBank) Find(src []byte) (Handle, bool) { return b.mgr.Find(src) }

// Create uploads src into a fresh tile block.
func (b *TileBank) Create(src []byte) (Handle, error) {
	if err := b.checkGeometry(len(src) / b.tileBytes); err != nil {
		return Handle{}, err
	}
	return b.mgr.Create(src)
}

// FindOrCreate reuses an identical live block or uploads a fresh one.
func (b *TileBank) FindOrCreate(src []byte) (Handle, error) {
	if err := b.checkGeometry(len(src) / b.tileBytes); err != nil {
		return Handle{}, err
	}
	return b.mgr.FindOrCreate(src)
}

// Allocate reserves count uninitialized tiles for direct hardware writes.
func (b *TileBank) Allocate(count int) (Handle, error) {
	if err := b.checkGeometry(count); err != nil {
		return Handle{}, err
	}
	return b.mgr.Allocate(count)
}

// OptionalCreate is Create with the optional failure contract: any
// failure, capacity pressure or rejected geometry, reports ok=false so
// the call site's fallback policy applies either way.
func (b *TileBank) OptionalCreate(src []byte) (Handle, bool) {
	h, err := b.Create(src)
	return h, err == nil
}

// OptionalFindOrCreate is FindOrCreate with the optional failure contract.
func (b *TileBank) OptionalFindOrCreate(src []byte) (Handle, bool) {
	h, err := b.FindOrCreate(src)
	return h, err == nil
}

// OptionalAllocate is Allocate with the optional failure contract.
func (b *TileBank) OptionalAllocate(count int) (Handle, bool) {
	h, err := b.Allocate(count)
	return h, err == nil
}

// Stats exposes the underlying pool stats.
func (b *TileBank) Stats() api.PoolStats { return b.mgr.Stats() }

func (b *TileBank) checkGeometry(count int) error {
	if !units.ValidTileCount(count) {
		return api.NewError(api.ErrCodeInvalidArgument, "vram: unsupported tile block size").
			WithContext("tiles", count)
	}
	return nil
}
