// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ravisuresh229/evidencegap/internal/analyze"
	"github.com/ravisuresh229/evidencegap/internal/expand"
	"github.com/ravisuresh229/evidencegap/internal/rank"
	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// ErrEmptyQuestion reports an empty or whitespace-only question. Rejected
// before any external call.
var ErrEmptyQuestion = errors.New("question is empty")

// NoResultsError carries the alternative phrasings offered when every ladder
// strategy came back empty. errors.Is(err, ErrNoResults) matches it.
type NoResultsError struct {
	Question    string
	Suggestions []string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no results found for %q", e.Question)
}

func (e *NoResultsError) Unwrap() error { return ErrNoResults }

// Searcher is the literature backend consumed by the engine: a search call
// returning identifiers and a fetch call resolving them to records.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
	Fetch(ctx context.Context, ids []string) ([]types.CandidateRecord, error)
}

// Result is one completed pipeline run.
type Result struct {
	Analysis types.QueryAnalysis
	Set      types.RankedResultSet

	// Conditions and Interventions hold every vocabulary hit when
	// multi-match detection is enabled; otherwise they are nil.
	Conditions    []string
	Interventions []string
}

// Engine runs the search pipeline end to end. It holds no mutable state and
// is safe for concurrent Run calls.
type Engine struct {
	cfg      types.PipelineConfig
	searcher Searcher
	out      io.Writer
}

// New creates an engine. Progress lines are written to out; pass io.Discard
// to silence them.
func New(cfg types.PipelineConfig, searcher Searcher, out io.Writer) *Engine {
	if out == nil {
		out = io.Discard
	}
	return &Engine{cfg: cfg, searcher: searcher, out: out}
}

// Run executes the full pipeline for one question: analyze, retrieve through
// the fallback ladder, validate, score, quality-filter, and assemble.
func (e *Engine) Run(ctx context.Context, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, ErrEmptyQuestion
	}

	var res Result
	acfg := analyze.Config{MaxPrimaryTerms: e.cfg.Query.MaxPrimaryTerms}
	if e.cfg.Query.DetectAll {
		res.Analysis, res.Conditions, res.Interventions = analyze.AnalyzeAll(question, acfg)
	} else {
		res.Analysis = analyze.Analyze(question, acfg)
	}
	fmt.Fprintf(e.out, "terms: %s\n", strings.Join(res.Analysis.PrimaryTerms, ", "))

	ladderCfg := LadderConfig{
		WindowYears:     e.cfg.Search.DateWindowYears,
		MaxPrimaryTerms: e.cfg.Query.MaxPrimaryTerms,
	}
	lr, err := RunLadder(ctx, question, res.Analysis, ladderCfg, e.fetch)
	if err != nil {
		if errors.Is(err, ErrNoResults) {
			return res, &NoResultsError{
				Question:    question,
				Suggestions: Suggest(question, res.Analysis),
			}
		}
		return res, fmt.Errorf("searching literature: %w", err)
	}
	fmt.Fprintf(e.out, "strategy %s returned %d records\n", lr.Strategy, len(lr.Records))

	strict := e.cfg.Ranking.Strict || expand.HasOverride(res.Analysis)

	var kept []types.CandidateRecord
	for _, rec := range lr.Records {
		if rank.IsRelevant(rec, res.Analysis, strict) {
			kept = append(kept, rec)
		}
	}
	for i := range kept {
		kept[i].Score = rank.Score(kept[i], res.Analysis, e.cfg.Ranking)
	}

	filtered, level := rank.EscalateQuality(kept)
	fmt.Fprintf(e.out, "quality %s kept %d of %d relevant records\n", level, len(filtered), len(kept))

	res.Set = rank.Assemble(filtered, e.cfg.Ranking.ResultCap, rank.Diagnostics{
		TotalFetched:      len(lr.Records),
		TotalAfterQuality: len(filtered),
		QueryUsed:         lr.QueryUsed,
		FallbackUsed:      lr.FallbackUsed,
	})
	if len(res.Set.Records) == 0 {
		return res, &NoResultsError{
			Question:    question,
			Suggestions: Suggest(question, res.Analysis),
		}
	}
	return res, nil
}

// fetch is the ladder's round-trip: search for identifiers, then resolve
// them. A query matching nothing is not an error.
func (e *Engine) fetch(ctx context.Context, query string) ([]types.CandidateRecord, error) {
	ids, err := e.searcher.Search(ctx, query, e.cfg.Search.MaxResults)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return e.searcher.Fetch(ctx, ids)
}
