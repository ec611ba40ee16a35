// File: backend/region.go
// Package backend provides fixed hardware memory regions for handle pools.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Region models one bank of device memory as a stable, randomly
// addressable byte slice. On Linux the region is mmap'ed anonymous memory
// (see region_linux.go); elsewhere it falls back to the Go heap. The
// Commit primitive forwards to a pluggable sink so a device layer can
// defer physical transfers to a hardware synchronization point.

package backend

import (
	"github.com/momentics/hioload-vram/api"
)

// CommitSink receives committed unit ranges.
type CommitSink func(offsetUnits, unitCount int) error

// Region is one fixed hardware memory bank.
type Region struct {
	data      []byte
	unitBytes int
	units     int
	mapped    bool
	sink      CommitSink
}

// NewRegion allocates a region of units fixed-size units.
func NewRegion(unitBytes, units int) (*Region, error) {
	if unitBytes <= 0 || units <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "backend: bad region geometry").
			WithContext("unitBytes", unitBytes).
			WithContext("units", units)
	}
	data, mapped := allocRegion(unitBytes * units)
	return &Region{data: data, unitBytes: unitBytes, units: units, mapped: mapped}, nil
}

// SetCommitSink installs the transfer sink. A nil sink makes Commit a no-op
// (the region bytes are still authoritative).
func (r *Region) SetCommitSink(sink CommitSink) { r.sink = sink }

// Bytes implements api.Backend.
func (r *Region) Bytes() []byte { return r.data }

// UnitBytes implements api.Backend.
func (r *Region) UnitBytes() int { return r.unitBytes }

// Units returns the region size in units.
func (r *Region) Units() int { return r.units }

// Commit implements api.Backend.
func (r *Region) Commit(offsetUnits, unitCount int) error {
	if offsetUnits < 0 || unitCount <= 0 || offsetUnits+unitCount > r.units {
		return api.NewError(api.ErrCodeInvalidArgument, "backend: commit range out of region").
			WithContext("offsetUnits", offsetUnits).
			WithContext("unitCount", unitCount)
	}
	if r.sink == nil {
		return nil
	}
	return r.sink(offsetUnits, unitCount)
}

// Close releases the backing memory. The region must not be used after.
func (r *Region) Close() error {
	err := freeRegion(r.data, r.mapped)
	r.data = nil
	return err
}

var _ api.Backend = (*Region)(nil)
