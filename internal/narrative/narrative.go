// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package narrative turns a ranked record set into an evidence-gap
// narrative via a text completion backend. Backend failures of any kind,
// timeouts included, are absorbed by a deterministic fallback narrative;
// the caller always receives usable text.
package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// defaultTimeout bounds the completion call when the config leaves it unset.
const defaultTimeout = 45 * time.Second

// Analysis is the narrative produced for one question and record set.
type Analysis struct {
	Question       string `json:"question"`
	Narrative      string `json:"analysis"`
	PapersAnalyzed int    `json:"papers_analyzed"`

	// Fallback reports that the backend failed and the canned narrative
	// was substituted.
	Fallback bool `json:"fallback,omitempty"`
}

// Analyze generates the evidence-gap narrative. It never fails: when the
// backend errors, times out, or returns empty text, the fallback narrative
// is substituted and Fallback is set.
func Analyze(ctx context.Context, backend Backend, question string, records []types.CandidateRecord, cfg types.NarrativeConfig) Analysis {
	out := Analysis{
		Question:       question,
		PapersAnalyzed: len(records),
	}
	if backend == nil || len(records) == 0 {
		out.Narrative = FallbackNarrative(question, records)
		out.Fallback = true
		return out
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := backend.Complete(ctx, systemPrompt, BuildPrompt(records, cfg))
	if err != nil || strings.TrimSpace(text) == "" {
		out.Narrative = FallbackNarrative(question, records)
		out.Fallback = true
		return out
	}
	out.Narrative = strings.TrimSpace(text)
	return out
}

// FallbackNarrative builds the canned narrative from local counts only. It
// is deterministic for a given question and record set.
func FallbackNarrative(question string, records []types.CandidateRecord) string {
	var b strings.Builder
	b.WriteString("Automated narrative analysis is unavailable right now.\n\n")

	if len(records) == 0 {
		fmt.Fprintf(&b, "No papers were retrieved for %q, so no evidence summary can be drawn. ", question)
		b.WriteString("Consider rephrasing the question or broadening its terms.")
		return b.String()
	}

	withAbstract := 0
	minYear, maxYear := 0, 0
	for _, rec := range records {
		if rec.HasAbstract() {
			withAbstract++
		}
		if rec.Year > 0 {
			if minYear == 0 || rec.Year < minYear {
				minYear = rec.Year
			}
			if rec.Year > maxYear {
				maxYear = rec.Year
			}
		}
	}

	fmt.Fprintf(&b, "For %q, %d papers were retrieved", question, len(records))
	if minYear > 0 {
		if minYear == maxYear {
			fmt.Fprintf(&b, ", published in %d", minYear)
		} else {
			fmt.Fprintf(&b, ", published between %d and %d", minYear, maxYear)
		}
	}
	fmt.Fprintf(&b, "; %d of them carry substantive abstracts.\n\n", withAbstract)
	b.WriteString("Review the listed abstracts for current findings. ")
	b.WriteString("Typical evidence gaps in sets of this size include limited long-term follow-up, ")
	b.WriteString("small or single-site samples, and inconsistent outcome definitions across studies.")
	return b.String()
}
