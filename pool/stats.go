// File: pool/stats.go
// Package pool: human-readable stats reporting.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/momentics/hioload-vram/api"
)

// StatsString renders pool stats for logs and debug probes.
func StatsString(name string, s api.PoolStats) string {
	return fmt.Sprintf("%s: units=%s/%s live-slots=%s creates=%s frees=%s dedup-hits=%s",
		name,
		humanize.Comma(s.UsedUnits),
		humanize.Comma(s.CapacityUnits),
		humanize.Comma(s.LiveSlots),
		humanize.Comma(s.TotalCreates),
		humanize.Comma(s.TotalFrees),
		humanize.Comma(s.DedupHits))
}
