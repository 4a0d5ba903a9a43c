// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze parses a free-text clinical question into search terms and
// detected concepts. Analysis is pure: no I/O, no error paths, and an empty
// question yields an empty result rather than a failure.
package analyze

import (
	"strings"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// defaultMaxPrimaryTerms caps the mandatory term list when the config leaves
// it unset.
const defaultMaxPrimaryTerms = 3

// stopWords are dropped before term extraction: articles, conjunctions,
// prepositions, question scaffolding, and generic outcome words that match
// nearly every clinical abstract and therefore carry no search value.
var stopWords = map[string]bool{
	// articles, conjunctions, prepositions, pronouns
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"of": true, "for": true, "in": true, "on": true, "to": true, "with": true,
	"without": true, "by": true, "from": true, "at": true, "as": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"do": true, "does": true, "did": true, "can": true, "could": true,
	"should": true, "would": true, "will": true, "has": true, "have": true,
	"what": true, "which": true, "who": true, "how": true, "why": true,
	"when": true, "where": true, "there": true, "their": true, "it": true,
	"its": true, "this": true, "that": true, "these": true, "those": true,
	"among": true, "between": true, "versus": true, "vs": true,

	// generic outcome words
	"effectiveness": true, "effective": true, "efficacy": true,
	"effect": true, "effects": true, "impact": true, "outcome": true,
	"outcomes": true, "benefit": true, "benefits": true, "role": true,
	"use": true, "management": true, "treatment": true, "therapy": true,
	"evidence": true, "studies": true, "study": true, "research": true,

	// vague qualifiers
	"novel": true, "new": true, "recent": true, "long": true, "short": true,
	"term": true, "improved": true, "better": true, "best": true,
	"current": true, "modern": true, "comparative": true,
}

// modifierPhrases are filler expressions stripped from the raw question by
// the modifier-stripped fallback strategy and by the suggestion generator.
var modifierPhrases = []string{
	"effectiveness of",
	"efficacy of",
	"impact of",
	"role of",
	"use of",
	"long-term",
	"short-term",
	"comparative",
	"evidence for",
	"evidence on",
}

// Config controls analysis. The zero value gives the default behavior.
type Config struct {
	// MaxPrimaryTerms caps the mandatory term list (default 3).
	MaxPrimaryTerms int
}

// Analyze parses question into a QueryAnalysis using first-match-wins
// concept detection. First-match-wins can misclassify multi-topic
// questions; callers that want every vocabulary hit use AnalyzeAll.
func Analyze(question string, cfg Config) types.QueryAnalysis {
	maxPrimary := cfg.MaxPrimaryTerms
	if maxPrimary <= 0 {
		maxPrimary = defaultMaxPrimaryTerms
	}

	lowered := strings.ToLower(question)
	tokens := tokenize(lowered)

	var content []string
	for _, tok := range tokens {
		if stopWords[tok] {
			continue
		}
		content = append(content, tok)
	}

	analysis := types.QueryAnalysis{}
	if len(content) > maxPrimary {
		analysis.PrimaryTerms = content[:maxPrimary]
		analysis.SecondaryTerms = content[maxPrimary:]
	} else {
		analysis.PrimaryTerms = content
	}

	analysis.Condition = detect(lowered, Conditions)
	analysis.Intervention = detect(lowered, Interventions)

	return analysis
}

// AnalyzeAll is Analyze with multi-match detection: it additionally returns
// every condition and intervention found, in question order.
func AnalyzeAll(question string, cfg Config) (types.QueryAnalysis, []string, []string) {
	analysis := Analyze(question, cfg)
	lowered := strings.ToLower(question)
	return analysis, detectAll(lowered, Conditions), detectAll(lowered, Interventions)
}

// StripModifiers removes filler phrases from the raw question so it can be
// re-analyzed by the modifier-stripped fallback strategy.
func StripModifiers(question string) string {
	q := strings.ToLower(question)
	for _, phrase := range modifierPhrases {
		q = strings.ReplaceAll(q, phrase, " ")
	}
	return strings.Join(strings.Fields(q), " ")
}

// tokenize splits on whitespace and trims surrounding punctuation from each
// token. Interior punctuation (hyphens, digits like "glp-1") is preserved.
func tokenize(s string) []string {
	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.Trim(f, ".,;:!?\"'()[]{}")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// detect returns the vocabulary entry appearing earliest in the lowered
// question, or "" when none appears. This is the first-match-wins policy;
// multi-match callers use detectAll via AnalyzeAll.
func detect(lowered string, vocab []string) string {
	best := ""
	bestIdx := -1
	for _, entry := range vocab {
		idx := indexWord(lowered, entry)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			best = entry
			bestIdx = idx
		}
	}
	return best
}

// detectAll returns every vocabulary entry present, ordered by position.
func detectAll(lowered string, vocab []string) []string {
	type hit struct {
		entry string
		idx   int
	}
	var hits []hit
	for _, entry := range vocab {
		if idx := indexWord(lowered, entry); idx >= 0 {
			hits = append(hits, hit{entry, idx})
		}
	}
	// insertion sort by position; vocab lists are small
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].idx < hits[j-1].idx; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}

// indexWord finds entry in s at a word boundary, returning -1 when absent.
// Plain strings.Index would match "arthritis" inside "osteoarthritis" and
// misattribute the position.
func indexWord(s, entry string) int {
	from := 0
	for {
		idx := strings.Index(s[from:], entry)
		if idx < 0 {
			return -1
		}
		idx += from
		before := idx == 0 || isBoundary(s[idx-1])
		afterIdx := idx + len(entry)
		after := afterIdx >= len(s) || isBoundary(s[afterIdx])
		if before && after {
			return idx
		}
		from = idx + 1
	}
}

func isBoundary(b byte) bool {
	return !(b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '-')
}
