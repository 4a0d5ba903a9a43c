// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank filters, scores, and assembles candidate records. The
// validator is a binary accept/reject gate; the scorer is an additive point
// model; the quality filter admits records in staged thresholds; the
// assembler caps and orders the final set.
package rank

import (
	"strings"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// matchVariants maps a concept to the textual variants that count as a
// match in a record's title+abstract blob. This table is for matching, not
// query construction; it is deliberately distinct from the expander's
// synonym dictionary and includes stems and related vocabulary a paper
// would use without naming the concept verbatim.
var matchVariants = map[string][]string{
	"diabetes":      {"diabetic", "glycemic", "hba1c", "t2dm", "hyperglycemia", "diabetes mellitus"},
	"hypertension":  {"blood pressure", "antihypertensive", "hypertensive"},
	"cancer":        {"tumor", "tumour", "carcinoma", "malignan", "neoplas", "oncolog"},
	"obesity":       {"overweight", "body mass index", "bmi", "adiposity"},
	"heart failure": {"cardiac failure", "ejection fraction", "chf"},
	"depression":    {"depressive", "antidepressant", "mood disorder"},
	"asthma":        {"bronchial", "wheez"},
	"copd":          {"chronic obstructive", "emphysema"},
	"stroke":        {"cerebrovascular", "ischemic", "ischaemic"},
	"dementia":      {"cognitive decline", "alzheimer"},
	"arthritis":     {"osteoarthritis", "joint", "rheumat"},
	"telemedicine":  {"telehealth", "remote monitoring", "digital health", "virtual care", "ehealth", "mhealth"},
	"metformin":     {"biguanide"},
	"statins":       {"statin", "hmg-coa"},
	"statin":        {"statins", "hmg-coa"},
	"insulin":       {"basal insulin", "insulin therapy"},
	"glp-1":         {"glp-1 receptor", "semaglutide", "liraglutide", "incretin"},
	"sglt2":         {"gliflozin", "empagliflozin", "dapagliflozin"},
	"exercise":      {"physical activity", "aerobic", "resistance training"},
	"biologics":     {"biologic", "monoclonal"},
	"vaccination":   {"vaccine", "immunization", "immunisation"},
	"screening":     {"early detection"},
	"biomarkers":    {"biomarker", "biological marker"},
	"biomarker":     {"biomarkers", "biological marker"},
}

// blob concatenates the lowercased title and abstract for matching.
func blob(rec types.CandidateRecord) string {
	return strings.ToLower(rec.Title + " " + rec.Abstract)
}

// conceptPresent reports whether the concept or any of its match variants
// appears in text.
func conceptPresent(text, concept string) bool {
	if concept == "" {
		return false
	}
	if strings.Contains(text, concept) {
		return true
	}
	for _, v := range matchVariants[concept] {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}

// countTermMatches counts how many of the terms appear in text, directly or
// via variants.
func countTermMatches(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if conceptPresent(text, term) {
			n++
		}
	}
	return n
}

// IsRelevant is the accept/reject gate applied to each fetched record.
//
// The default gate is deliberately permissive: earlier strict revisions of
// this check over-filtered and produced empty result sets, so a record
// passes on any of three weak signals. Strict mode is reserved for known
// multi-concept queries, where it requires each concept's keyword family to
// be independently present; an aggregate term count would accept a paper
// that discusses only one of the two required concepts.
func IsRelevant(rec types.CandidateRecord, analysis types.QueryAnalysis, strict bool) bool {
	text := blob(rec)

	condPresent := conceptPresent(text, analysis.Condition)
	intPresent := conceptPresent(text, analysis.Intervention)

	if strict {
		if analysis.Condition != "" && !condPresent {
			return false
		}
		if analysis.Intervention != "" && !intPresent {
			return false
		}
		return countTermMatches(text, analysis.PrimaryTerms) >= 1
	}

	matches := countTermMatches(text, analysis.PrimaryTerms)
	switch {
	case matches >= 2:
		return true
	case matches >= 1 && (condPresent || intPresent):
		return true
	case condPresent && intPresent:
		return true
	}
	return false
}
