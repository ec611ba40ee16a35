// File: vram/palettes.go
// Package vram: 16-color palette bank.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vram

import (
	"encoding/binary"

	"github.com/momentics/hioload-vram/api"
	"github.com/momentics/hioload-vram/pool"
)

// ColorsPerPalette is the fixed palette width of the target hardware.
const ColorsPerPalette = 16

// paletteBytes: 16 colors, 2 bytes (BGR555) each.
const paletteBytes = ColorsPerPalette * 2

// PaletteBank manages 16-color palette slots. One unit is one palette.
// Identical color sets dedup to a single slot.
type PaletteBank struct {
	mgr *pool.Manager
}

func newPaletteBank(d *Device, capacity int) (*PaletteBank, error) {
	region, err := d.newBankRegion(api.BankPalettes, paletteBytes, capacity)
	if err != nil {
		return nil, err
	}
	mgr, err := pool.NewManager("palettes", region, capacity)
	if err != nil {
		return nil, err
	}
	return &PaletteBank{mgr: mgr}, nil
}

// Find returns a handle to a live palette with identical colors.
func (b *PaletteBank) Find(colors []uint16) (Handle, bool) {
	src, err := encodePalette(colors)
	if err != nil {
		return Handle{}, false
	}
	return b.mgr.Find(src)
}

// Create uploads colors into a fresh palette slot.
func (b *PaletteBank) Create(colors []uint16) (Handle, error) {
	src, err := encodePalette(colors)
	if err != nil {
		return Handle{}, err
	}
	return b.mgr.Create(src)
}

// FindOrCreate reuses a live palette with identical colors or creates one.
func (b *PaletteBank) FindOrCreate(colors []uint16) (Handle, error) {
	src, err := encodePalette(colors)
	if err != nil {
		return Handle{}, err
	}
	return b.mgr.FindOrCreate(src)
}

// OptionalFindOrCreate is FindOrCreate with the optional failure contract.
func (b *PaletteBank) OptionalFindOrCreate(colors []uint16) (Handle, bool) {
	h, err := b.FindOrCreate(colors)
	return h, err == nil
}

// Stats exposes the underlying pool stats.
func (b *PaletteBank) Stats() api.PoolStats { return b.mgr.Stats() }

// encodePalette serializes colors little-endian into one palette unit.
func encodePalette(colors []uint16) ([]byte, error) {
	if len(colors) != ColorsPerPalette {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "vram: palette must hold exactly 16 colors").
			WithContext("colors", len(colors))
	}
	src := make([]byte, paletteBytes)
	for i, c := range colors {
		binary.LittleEndian.PutUint16(src[i*2:], c)
	}
	return src, nil
}
