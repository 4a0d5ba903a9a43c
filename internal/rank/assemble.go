// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"sort"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// minResultFloor is the guaranteed minimum set size when enough records
// survive filtering, even if the cap is configured lower.
const minResultFloor = 3

// Diagnostics carries the counts and query provenance attached to the
// assembled set.
type Diagnostics struct {
	TotalFetched      int
	TotalAfterQuality int
	QueryUsed         string
	FallbackUsed      bool
}

// Assemble sorts records by descending score (stable, so ties keep original
// retrieval order), truncates to max(min(3, available), min(limit, available)),
// and attaches diagnostics. Records are never fabricated: fewer than three
// available means fewer than three returned.
func Assemble(records []types.CandidateRecord, limit int, diag Diagnostics) types.RankedResultSet {
	out := make([]types.CandidateRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	target := len(out)
	if limit > 0 && limit < target {
		target = limit
	}
	if target < minResultFloor && len(out) >= minResultFloor {
		target = minResultFloor
	}
	out = out[:target]

	return types.RankedResultSet{
		Records:           out,
		TotalFetched:      diag.TotalFetched,
		TotalAfterQuality: diag.TotalAfterQuality,
		QueryUsed:         diag.QueryUsed,
		FallbackUsed:      diag.FallbackUsed,
	}
}
