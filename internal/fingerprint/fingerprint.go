// File: internal/fingerprint/fingerprint.go
// Package fingerprint builds dedup keys for handle pools.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A fingerprint combines a content hash with the declared unit count.
// Two sources of different size must never collide into the same slot
// even when a hash prefix matches, so the unit count is part of the key.

package fingerprint

import (
	"github.com/cespare/xxhash/v2"

	"github.com/momentics/hioload-vram/api"
)

// Key is the deduplication key: content hash plus declared size in units.
// Keys are comparable and usable as map keys directly.
type Key struct {
	Sum   uint64
	Units int
}

// Default is the default content hash (xxhash64).
var Default api.ContentHash = xxhash.Sum64

// Make computes the key of src under hash h, declared as units wide.
func Make(h api.ContentHash, src []byte, units int) Key {
	return Key{Sum: h(src), Units: units}
}
