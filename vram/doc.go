// Package vram
// Author: momentics <momentics@gmail.com>
//
// Device composition layer for hioload-vram.
// A Device aggregates the analogous fixed-capacity hardware banks (tile
// memory, color palettes, affine matrix slots) behind a single facade,
// wires their commit traffic into a deferred command queue, and drains
// that queue only at the explicit hardware synchronization point
// (VBlank). Pool mutations themselves stay immediate and synchronous;
// only the physical transfer is deferred.
// See device.go, commit.go, tiles.go, palettes.go, affine.go.
package vram
