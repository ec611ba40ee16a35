// File: vram/commit.go
// Package vram implements the deferred commit command queue.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Writes land in the backing regions immediately; the ranges to push to
// the physical device are queued here and applied only when the device
// reaches its hardware synchronization point, not on submission.

package vram

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-vram/api"
)

// commitQueue is a bounded FIFO of pending device transfer ranges.
type commitQueue struct {
	q       *queue.Queue
	depth   int
	dropped int64
}

func newCommitQueue(depth int) *commitQueue {
	return &commitQueue{q: queue.New(), depth: depth}
}

// push enqueues one range; reports false when the queue is saturated.
// The caller must then schedule a whole-bank flush for the next sync
// point: the backing region still holds the bytes, only the range
// tracking is lost.
func (cq *commitQueue) push(rng api.CommitRange) bool {
	if cq.depth > 0 && cq.q.Length() >= cq.depth {
		cq.dropped++
		return false
	}
	cq.q.Add(rng)
	return true
}

// drain applies every pending range in submission order.
func (cq *commitQueue) drain(apply func(api.CommitRange) error) error {
	for cq.q.Length() > 0 {
		rng := cq.q.Remove().(api.CommitRange)
		if err := apply(rng); err != nil {
			return err
		}
	}
	return nil
}

func (cq *commitQueue) pending() int { return cq.q.Length() }
