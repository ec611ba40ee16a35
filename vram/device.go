// File: vram/device.go
// Unified device facade for hioload-vram library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Device struct, which aggregates the hardware
// memory banks of a target device behind a single facade. It initializes
// backing regions, handle pools, the deferred commit queue, and the
// control interface based on immutable configuration. The facade exposes
// methods to access the banks, flush pending transfers at the hardware
// synchronization point, and retrieve runtime stats.

package vram

import (
	"log"

	"github.com/momentics/hioload-vram/api"
	"github.com/momentics/hioload-vram/backend"
	"github.com/momentics/hioload-vram/control"
	"github.com/momentics/hioload-vram/pool"
)

// Config holds parameters immutable per device.
// Capacities mirror the target hardware and cannot be changed at runtime.
type Config struct {
	TileCapacity     int              // Tile bank size, in tiles
	TileBytes        int              // Bytes per tile (32 = 4bpp 8x8)
	PaletteCapacity  int              // Number of 16-color palette slots
	AffineCapacity   int              // Number of affine matrix slots
	CommitQueueDepth int              // Max pending transfer ranges, 0 = unbounded
	Transfer         api.TransferFunc // Physical transfer hook, nil = discard
	EnableDebug      bool             // Register per-bank debug probes
}

// DefaultConfig returns default configuration values matching a small
// tile-based target.
func DefaultConfig() *Config {
	return &Config{
		TileCapacity:     1024, // one charblock of 8x8 4bpp tiles
		TileBytes:        32,   // 32 bytes per 4bpp tile
		PaletteCapacity:  16,   // 16 palettes of 16 colors
		AffineCapacity:   32,   // hardware affine matrix slots
		CommitQueueDepth: 256,  // pending transfer ranges
		EnableDebug:      true,
	}
}

// Device is the main facade type. Single-threaded by contract, like the
// pools it owns.
type Device struct {
	cfg      Config
	tiles    *TileBank
	palettes *PaletteBank
	affine   *AffineBank
	commits  *commitQueue
	ctrl     *control.Controller
	regions  map[api.BankKind]*backend.Region
	flush    map[api.BankKind]bool // banks needing a whole-region flush
}

// NewDevice builds a device and all its banks from cfg.
// A nil cfg selects DefaultConfig.
func NewDevice(cfg *Config) (*Device, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	d := &Device{
		cfg:     *cfg,
		commits: newCommitQueue(cfg.CommitQueueDepth),
		ctrl:    control.NewController(),
		regions: make(map[api.BankKind]*backend.Region),
		flush:   make(map[api.BankKind]bool),
	}

	var err error
	if d.tiles, err = newTileBank(d, cfg.TileCapacity, cfg.TileBytes); err != nil {
		return nil, err
	}
	if d.palettes, err = newPaletteBank(d, cfg.PaletteCapacity); err != nil {
		return nil, err
	}
	if d.affine, err = newAffineBank(d, cfg.AffineCapacity); err != nil {
		return nil, err
	}

	d.ctrl.SetConfig(map[string]any{
		"tileCapacity":     cfg.TileCapacity,
		"paletteCapacity":  cfg.PaletteCapacity,
		"affineCapacity":   cfg.AffineCapacity,
		"commitQueueDepth": cfg.CommitQueueDepth,
	})
	if cfg.EnableDebug {
		d.ctrl.RegisterDebugProbe("tiles", func() any { return d.tiles.Stats() })
		d.ctrl.RegisterDebugProbe("palettes", func() any { return d.palettes.Stats() })
		d.ctrl.RegisterDebugProbe("affine", func() any { return d.affine.Stats() })
		d.ctrl.RegisterDebugProbe("pendingCommits", func() any { return d.commits.pending() })
	}
	return d, nil
}

// newBankRegion allocates a bank's backing region and routes its commit
// traffic into the device commit queue.
func (d *Device) newBankRegion(kind api.BankKind, unitBytes, units int) (*backend.Region, error) {
	region, err := backend.NewRegion(unitBytes, units)
	if err != nil {
		return nil, err
	}
	region.SetCommitSink(func(offsetUnits, unitCount int) error {
		if !d.commits.push(api.CommitRange{Bank: kind, OffsetUnits: offsetUnits, UnitCount: unitCount}) {
			d.flush[kind] = true
			log.Printf("[vram] commit queue saturated, scheduling whole-bank %s flush at next sync point", kind)
		}
		return nil
	})
	d.regions[kind] = region
	return region, nil
}

// Tiles returns the tile memory bank.
func (d *Device) Tiles() *TileBank { return d.tiles }

// Palettes returns the color palette bank.
func (d *Device) Palettes() *PaletteBank { return d.palettes }

// Affine returns the affine matrix bank.
func (d *Device) Affine() *AffineBank { return d.affine }

// Control returns the runtime control plane.
func (d *Device) Control() api.Control { return d.ctrl }

// PendingCommits returns the number of queued transfer ranges.
func (d *Device) PendingCommits() int { return d.commits.pending() }

// VBlank is the hardware synchronization point: it drains the commit
// queue in submission order, handing each range and its current region
// bytes to the configured transfer hook, then re-pushes any bank whose
// range tracking overflowed since the last sync as one whole-region
// transfer.
func (d *Device) VBlank() error {
	err := d.commits.drain(func(rng api.CommitRange) error {
		if d.cfg.Transfer == nil {
			return nil
		}
		region := d.regions[rng.Bank]
		ub := region.UnitBytes()
		data := region.Bytes()[rng.OffsetUnits*ub : (rng.OffsetUnits+rng.UnitCount)*ub]
		return d.cfg.Transfer(rng, data)
	})
	if err != nil {
		return err
	}
	for kind := range d.flush {
		if d.cfg.Transfer != nil {
			region := d.regions[kind]
			rng := api.CommitRange{Bank: kind, OffsetUnits: 0, UnitCount: region.Units()}
			if err := d.cfg.Transfer(rng, region.Bytes()); err != nil {
				return err
			}
		}
		delete(d.flush, kind)
	}
	return nil
}

// Stats returns all registered probe outputs.
func (d *Device) Stats() map[string]any { return d.ctrl.Stats() }

// Close releases all backing regions. The device must not be used after.
func (d *Device) Close() error {
	var first error
	for _, region := range d.regions {
		if err := region.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Pool aliases for callers that type bank handles explicitly.
type (
	// Handle is the caller-visible resource reference; see pool.Handle.
	Handle = pool.Handle
)
