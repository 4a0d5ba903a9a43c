// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the search flow: analyze the question,
// build queries, retrieve candidates through the fallback ladder, then
// validate, score, quality-filter, and assemble the ranked set.
package pipeline

import (
	"context"
	"errors"

	"github.com/ravisuresh229/evidencegap/internal/analyze"
	"github.com/ravisuresh229/evidencegap/internal/expand"
	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// ErrNoResults reports that every ladder strategy returned zero records.
var ErrNoResults = errors.New("no results for any query strategy")

// FetchFunc executes one round-trip to the literature backend for the given
// expanded query.
type FetchFunc func(ctx context.Context, query string) ([]types.CandidateRecord, error)

// LadderConfig sizes the ladder's query construction.
type LadderConfig struct {
	// WindowYears is the date window of the original query. Later rungs
	// widen or drop it.
	WindowYears int

	// MaxPrimaryTerms is passed to the modifier-stripped re-analysis.
	MaxPrimaryTerms int
}

// LadderResult is the outcome of the first strategy that produced records.
type LadderResult struct {
	Records      []types.CandidateRecord
	QueryUsed    string
	Strategy     string
	FallbackUsed bool
	Attempts     int
}

// singleTermWindowYears is the widened date window of the single-term rung.
const singleTermWindowYears = 20

// strategy builds one rung's query. An empty query means the rung does not
// apply to this question and is skipped.
type strategy struct {
	name  string
	build func(question string, analysis types.QueryAnalysis, cfg LadderConfig) string
}

// strategies is the escalation order. Each rung relaxes the previous one:
// filters are dropped before terms, terms are dropped before the hand-tuned
// broad categories. Results are never merged across rungs.
var strategies = []strategy{
	{
		name: "full",
		build: func(_ string, a types.QueryAnalysis, cfg LadderConfig) string {
			return expand.BuildQuery(a, expand.Options{StudyTypes: true, WindowYears: cfg.WindowYears})
		},
	},
	{
		name: "relaxed-filters",
		build: func(_ string, a types.QueryAnalysis, cfg LadderConfig) string {
			return expand.BuildQuery(a, expand.Options{WindowYears: 2 * cfg.WindowYears})
		},
	},
	{
		name: "single-term",
		build: func(_ string, a types.QueryAnalysis, _ LadderConfig) string {
			return expand.BuildQuery(a, expand.Options{MaxTerms: 1, WindowYears: singleTermWindowYears})
		},
	},
	{
		name: "no-filters",
		build: func(_ string, a types.QueryAnalysis, _ LadderConfig) string {
			return expand.BuildQuery(a, expand.Options{})
		},
	},
	{
		name: "modifier-stripped",
		build: func(question string, _ types.QueryAnalysis, cfg LadderConfig) string {
			stripped := analyze.StripModifiers(question)
			again := analyze.Analyze(stripped, analyze.Config{MaxPrimaryTerms: cfg.MaxPrimaryTerms})
			if len(again.PrimaryTerms) == 0 {
				return ""
			}
			return expand.BuildQuery(again, expand.Options{})
		},
	},
	{
		name: "term-pair",
		build: func(_ string, a types.QueryAnalysis, _ LadderConfig) string {
			if len(a.PrimaryTerms) < 2 {
				return ""
			}
			return expand.BuildQuery(a, expand.Options{MaxTerms: 2})
		},
	},
	{
		name: "lenient-category",
		build: func(_ string, a types.QueryAnalysis, _ LadderConfig) string {
			expr, ok := expand.LookupLenientCategory(a.PrimaryTerms)
			if !ok {
				return ""
			}
			return expr
		},
	},
}

// RunLadder walks the strategies in order and returns the first non-empty
// result. Fetch errors do not stop the walk; a later, broader rung may still
// succeed. When every rung comes back empty the last fetch error is
// surfaced if there was one, otherwise ErrNoResults.
func RunLadder(ctx context.Context, question string, analysis types.QueryAnalysis, cfg LadderConfig, fetch FetchFunc) (LadderResult, error) {
	seen := make(map[string]bool)
	attempts := 0
	var lastErr error

	for i, s := range strategies {
		query := s.build(question, analysis, cfg)
		if query == "" || seen[query] {
			continue
		}
		seen[query] = true
		attempts++

		records, err := fetch(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return LadderResult{Attempts: attempts}, err
			}
			lastErr = err
			continue
		}
		if len(records) > 0 {
			return LadderResult{
				Records:      records,
				QueryUsed:    query,
				Strategy:     s.name,
				FallbackUsed: i > 0,
				Attempts:     attempts,
			}, nil
		}
	}

	if lastErr != nil {
		return LadderResult{Attempts: attempts}, lastErr
	}
	return LadderResult{Attempts: attempts}, ErrNoResults
}
