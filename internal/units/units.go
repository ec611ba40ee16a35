// File: internal/units/units.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unified unit-count validation and rounding routines for hardware banks.
// Ensures all allocations and bank configurations validate their sizes
// against the target's accepted geometries to prevent out-of-bounds and
// silent fallbacks. Should be used by ALL call sites working with tile,
// palette or matrix counts.

package units

// tileCounts is the set of tile-block sizes the tile hardware accepts.
var tileCounts = [...]int{16, 32, 64, 128, 256, 512, 1024}

// ValidTileCount reports whether n is an accepted tile-block size.
func ValidTileCount(n int) bool {
	for _, c := range tileCounts {
		if n == c {
			return true
		}
	}
	return false
}

// NormalizeTileCount rounds n up to the smallest accepted tile-block
// size; requests beyond the largest geometry clamp down to it.
func NormalizeTileCount(n int) int {
	return Clamp(RoundPow2(n), tileCounts[0], tileCounts[len(tileCounts)-1])
}

// Clamp bounds n into [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// RoundPow2 rounds n up to the next power of two (n <= 1 yields 1).
func RoundPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
