// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import "github.com/ravisuresh229/evidencegap/pkg/types"

// QualityLevel selects the minimum-abstract-length admission threshold.
type QualityLevel string

const (
	QualityHigh   QualityLevel = "high"
	QualityMedium QualityLevel = "medium"
	QualityLow    QualityLevel = "low"
)

// minAbstractLen per level. A placeholder or empty abstract fails at every
// level regardless of length.
var minAbstractLen = map[QualityLevel]int{
	QualityHigh:   200,
	QualityMedium: 100,
	QualityLow:    50,
}

// Escalation bounds: relax to medium below minHighSurvivors, then to low
// below minMediumSurvivors.
const (
	minHighSurvivors   = 5
	minMediumSurvivors = 3
)

// FilterByQuality returns the records whose abstract passes the level's
// admission threshold.
func FilterByQuality(records []types.CandidateRecord, level QualityLevel) []types.CandidateRecord {
	threshold, ok := minAbstractLen[level]
	if !ok {
		threshold = minAbstractLen[QualityLow]
	}

	var out []types.CandidateRecord
	for _, rec := range records {
		if !rec.HasAbstract() {
			continue
		}
		if len(rec.Abstract) > threshold {
			out = append(out, rec)
		}
	}
	return out
}

// EscalateQuality applies the staged admission policy: attempt high, relax
// to medium when fewer than five records survive, relax to low when fewer
// than three survive. A looser level always admits a superset of the
// stricter one, and relaxation never tightens again.
func EscalateQuality(records []types.CandidateRecord) ([]types.CandidateRecord, QualityLevel) {
	level := QualityHigh
	out := FilterByQuality(records, level)

	if len(out) < minHighSurvivors {
		level = QualityMedium
		out = FilterByQuality(records, level)
	}
	if len(out) < minMediumSurvivors {
		level = QualityLow
		out = FilterByQuality(records, level)
	}
	return out, level
}
