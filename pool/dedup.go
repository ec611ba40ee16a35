// File: pool/dedup.go
// Package pool implements the content-dedup index of the slot table.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"bytes"

	"github.com/momentics/hioload-vram/internal/fingerprint"
)

// dedupIndex maps a fingerprint to the live slots carrying it. The hash is
// an index accelerator, not the identity itself: find confirms a hit by
// full content comparison, so unrelated sources that collide on the hash
// never resolve to each other's slots. Buckets exist because Create never
// dedup-checks and may register the same fingerprint more than once.
type dedupIndex struct {
	buckets map[fingerprint.Key][]SlotIndex
}

func newDedupIndex() *dedupIndex {
	return &dedupIndex{buckets: make(map[fingerprint.Key][]SlotIndex)}
}

// find returns the live slot whose bound source matches src byte for byte.
func (d *dedupIndex) find(t *slotTable, key fingerprint.Key, src []byte) (SlotIndex, bool) {
	for _, idx := range d.buckets[key] {
		s := &t.slots[idx]
		if s.source != nil && bytes.Equal(s.source, src) {
			return idx, true
		}
	}
	return NoSlot, false
}

// insert registers idx under key.
func (d *dedupIndex) insert(key fingerprint.Key, idx SlotIndex) {
	d.buckets[key] = append(d.buckets[key], idx)
}

// remove unregisters idx from key's bucket. Called exactly once per
// fingerprinted slot, when its reference count reaches zero or its source
// is rebound.
func (d *dedupIndex) remove(key fingerprint.Key, idx SlotIndex) {
	bucket := d.buckets[key]
	for i, cand := range bucket {
		if cand != idx {
			continue
		}
		bucket[i] = bucket[len(bucket)-1]
		bucket = bucket[:len(bucket)-1]
		if len(bucket) == 0 {
			delete(d.buckets, key)
		} else {
			d.buckets[key] = bucket
		}
		return
	}
}
