// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package expand builds boolean search expressions from a QueryAnalysis.
// Every primary term is mandatory (ANDed); each term's clause ORs the term
// with its lexical variants to widen recall without relaxing the AND
// requirement between distinct concepts. Building is deterministic and does
// no I/O.
package expand

import (
	"fmt"
	"strings"
	"time"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// studyTypes are the acceptable publication types appended to generic
// queries as a single OR clause.
var studyTypes = []string{
	"systematic review",
	"meta-analysis",
	"randomized controlled trial",
	"clinical trial",
	"observational study",
}

// now is the clock used for the rolling date window. Tests substitute it.
var now = time.Now

// Options controls which filter clauses BuildQuery appends. The fallback
// ladder builds progressively looser Options; the zero value emits term
// clauses only.
type Options struct {
	// StudyTypes appends the publication-type OR clause.
	StudyTypes bool

	// WindowYears appends a publication-date clause covering the last N
	// years. Zero omits the clause.
	WindowYears int

	// MaxTerms limits how many primary terms are used. Zero means all.
	MaxTerms int
}

// BuildQuery renders the boolean expression for analysis. Known
// multi-concept combinations bypass the generic builder: when both filter
// clauses are requested and the condition/intervention pair has an override,
// the override's hand-tuned expression and narrower window are used instead.
func BuildQuery(analysis types.QueryAnalysis, opts Options) string {
	if opts.StudyTypes && opts.WindowYears > 0 {
		if ov, ok := LookupOverride(analysis); ok {
			return ov.Expression + " AND " + dateClause(ov.WindowYears)
		}
	}

	terms := analysis.PrimaryTerms
	if opts.MaxTerms > 0 && len(terms) > opts.MaxTerms {
		terms = terms[:opts.MaxTerms]
	}

	var clauses []string
	for _, term := range terms {
		clauses = append(clauses, TermClause(term))
	}
	if opts.StudyTypes {
		clauses = append(clauses, orClause(studyTypes))
	}
	if opts.WindowYears > 0 {
		clauses = append(clauses, dateClause(opts.WindowYears))
	}
	return strings.Join(clauses, " AND ")
}

// TermClause renders one term as a parenthesized OR of quoted literals:
// the term itself plus its synonym set. Terms without a dictionary entry
// stand alone.
func TermClause(term string) string {
	variants := []string{term}
	for _, syn := range Synonyms[term] {
		if syn != term {
			variants = append(variants, syn)
		}
	}
	return orClause(variants)
}

// orClause quotes and ORs the given literals inside parentheses.
func orClause(literals []string) string {
	quoted := make([]string, len(literals))
	for i, l := range literals {
		quoted[i] = `"` + l + `"`
	}
	return "(" + strings.Join(quoted, " OR ") + ")"
}

// dateClause renders the rolling publication-date window in E-utilities
// range syntax.
func dateClause(windowYears int) string {
	year := now().Year()
	return fmt.Sprintf("%d:%d[dp]", year-windowYears, year)
}
