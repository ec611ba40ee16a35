// File: vram/affine.go
// Package vram: per-object affine matrix slots.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vram

import (
	"encoding/binary"

	"github.com/momentics/hioload-vram/api"
	"github.com/momentics/hioload-vram/pool"
)

// matrixBytes: four 8.8 fixed-point register values.
const matrixBytes = 8

// Matrix is one hardware affine transform in 8.8 fixed point.
type Matrix struct {
	PA, PB, PC, PD int16
}

// Identity returns the identity transform (1.0 scale, no shear).
func Identity() Matrix { return Matrix{PA: 256, PD: 256} }

// AffineBank manages the scarce per-object affine matrix slots. One unit
// is one matrix; FindOrCreate shares slots between objects using the same
// transform, which keeps the common identity matrix down to one slot.
type AffineBank struct {
	mgr *pool.Manager
}

func newAffineBank(d *Device, capacity int) (*AffineBank, error) {
	region, err := d.newBankRegion(api.BankAffine, matrixBytes, capacity)
	if err != nil {
		return nil, err
	}
	mgr, err := pool.NewManager("affine", region, capacity)
	if err != nil {
		return nil, err
	}
	return &AffineBank{mgr: mgr}, nil
}

// Find returns a handle to a live slot holding exactly mat.
func (b *AffineBank) Find(mat Matrix) (Handle, bool) {
	return b.mgr.Find(encodeMatrix(mat))
}

// Create claims a fresh slot for mat.
func (b *AffineBank) Create(mat Matrix) (Handle, error) {
	return b.mgr.Create(encodeMatrix(mat))
}

// FindOrCreate shares a live slot holding mat or claims a fresh one.
func (b *AffineBank) FindOrCreate(mat Matrix) (Handle, error) {
	return b.mgr.FindOrCreate(encodeMatrix(mat))
}

// OptionalFindOrCreate is FindOrCreate with the optional failure contract:
// a caller out of matrix slots can fall back to rendering unrotated.
func (b *AffineBank) OptionalFindOrCreate(mat Matrix) (Handle, bool) {
	h, err := b.FindOrCreate(mat)
	return h, err == nil
}

// Allocate reserves one uninitialized matrix slot for direct writes.
func (b *AffineBank) Allocate() (Handle, error) { return b.mgr.Allocate(1) }

// Stats exposes the underlying pool stats.
func (b *AffineBank) Stats() api.PoolStats { return b.mgr.Stats() }

// encodeMatrix serializes mat register order, little-endian.
func encodeMatrix(mat Matrix) []byte {
	src := make([]byte, matrixBytes)
	binary.LittleEndian.PutUint16(src[0:], uint16(mat.PA))
	binary.LittleEndian.PutUint16(src[2:], uint16(mat.PB))
	binary.LittleEndian.PutUint16(src[4:], uint16(mat.PC))
	binary.LittleEndian.PutUint16(src[6:], uint16(mat.PD))
	return src
}
