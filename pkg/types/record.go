// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model and stage configurations shared across
// the evidencegap pipeline.
package types

// Sentinel values substituted when a field cannot be extracted from the
// literature backend's payload. Absence of a field is never an error.
const (
	NoTitle        = "No title available"
	NoAbstract     = "No abstract available"
	UnknownJournal = "Unknown Journal"
)

// QueryAnalysis is the structured form of a free-text clinical question.
type QueryAnalysis struct {
	// PrimaryTerms are the mandatory search concepts, in question order
	// after stop-word removal. Never empty if the question contains at
	// least one non-stop-word token.
	PrimaryTerms []string `json:"primary_terms" yaml:"primary_terms"`

	// SecondaryTerms are the remaining content words beyond the primary cap.
	SecondaryTerms []string `json:"secondary_terms,omitempty" yaml:"secondary_terms,omitempty"`

	// Condition is the detected medical condition from the closed
	// vocabulary, or "" when none was found.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`

	// Intervention is the detected intervention from the closed vocabulary,
	// or "" when none was found.
	Intervention string `json:"intervention,omitempty" yaml:"intervention,omitempty"`
}

// CandidateRecord is a single literature item retrieved from the search
// backend. Fields that could not be extracted carry the sentinel values
// above (or zero for Year). Score starts at zero and is assigned exactly
// once by the relevance scorer.
type CandidateRecord struct {
	Title    string   `json:"title" yaml:"title"`
	Abstract string   `json:"abstract" yaml:"abstract"`
	Authors  []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Journal  string   `json:"journal" yaml:"journal"`
	Year     int      `json:"year,omitempty" yaml:"year,omitempty"`
	PMID     string   `json:"pmid,omitempty" yaml:"pmid,omitempty"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty"`
	Score    int      `json:"score" yaml:"score"`
}

// HasAbstract reports whether the record carries a real (non-sentinel,
// non-empty) abstract.
func (r CandidateRecord) HasAbstract() bool {
	return r.Abstract != "" && r.Abstract != NoAbstract
}

// RankedResultSet is the final, capped, score-ordered record set plus
// diagnostic metadata about how it was produced.
type RankedResultSet struct {
	// Records is ordered by descending relevance score, ties broken by
	// original retrieval order.
	Records []CandidateRecord `json:"records" yaml:"records"`

	// TotalFetched counts every record returned by the search backend
	// before filtering, sentinel-only records included.
	TotalFetched int `json:"total_fetched" yaml:"total_fetched"`

	// TotalAfterQuality counts the records surviving quality filtering.
	TotalAfterQuality int `json:"total_after_quality" yaml:"total_after_quality"`

	// QueryUsed is the boolean expression of the strategy that produced
	// the records.
	QueryUsed string `json:"query_used" yaml:"query_used"`

	// FallbackUsed is true when any strategy past the original expanded
	// query produced the records.
	FallbackUsed bool `json:"fallback_used" yaml:"fallback_used"`
}
