// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"strings"
	"time"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// Additive scoring weights. Magnitudes are a ranking policy, not a
// correctness constraint; only relative ordering matters to callers.
const (
	weightTitleTerm    = 30
	weightAbstractTerm = 15
	weightCondition    = 25
	weightIntervention = 25
	weightSubstantial  = 10
	weightRecent       = 15
	weightStudyType    = 20
	weightJournal      = 10

	penaltyConflict     = 20
	penaltyPoorAbstract = 50

	substantialAbstractLen = 300
	recentYears            = 5
	poorAbstractLen        = 100
)

// nowYear is the clock for the recency bonus. Tests substitute it.
var nowYear = func() int { return time.Now().Year() }

// highEvidencePhrases award the study-type bonus, first match only. A
// paper that is both a systematic review and reports RCTs scores the bonus
// once.
var highEvidencePhrases = []string{
	"systematic review",
	"meta-analysis",
	"randomized controlled trial",
}

// prestigeJournals is matched as a substring of the lowercased journal name.
var prestigeJournals = []string{
	"lancet",
	"jama",
	"new england journal",
	"bmj",
	"nature",
	"annals of internal medicine",
	"circulation",
	"diabetes care",
	"plos medicine",
}

// topicFamilies group condition vocabulary into mutually exclusive topic
// areas for the optional conflict penalty.
var topicFamilies = map[string][]string{
	"metabolic":      {"diabetes", "glycemic", "insulin resistance", "obesity", "metabolic syndrome"},
	"oncology":       {"cancer", "tumor", "carcinoma", "chemotherapy", "metastatic"},
	"cardiovascular": {"hypertension", "heart failure", "stroke", "myocardial", "atrial fibrillation"},
	"respiratory":    {"asthma", "copd", "pulmonary", "bronchial"},
	"mental health":  {"depression", "anxiety", "psychiatric", "mood disorder"},
}

// Score assigns the relevance score for one record. Ties between equal
// scores are broken later by the assembler's stable sort, which preserves
// original retrieval order.
func Score(rec types.CandidateRecord, analysis types.QueryAnalysis, cfg types.RankingConfig) int {
	title := strings.ToLower(rec.Title)
	abstract := strings.ToLower(rec.Abstract)
	text := title + " " + abstract

	score := 0

	for _, term := range analysis.PrimaryTerms {
		switch {
		case conceptPresent(title, term):
			score += weightTitleTerm
		case conceptPresent(abstract, term):
			score += weightAbstractTerm
		}
	}

	if conceptPresent(text, analysis.Condition) {
		score += weightCondition
	}
	if conceptPresent(text, analysis.Intervention) {
		score += weightIntervention
	}

	if rec.HasAbstract() && len(rec.Abstract) > substantialAbstractLen {
		score += weightSubstantial
	}

	if rec.Year > 0 && rec.Year >= nowYear()-recentYears {
		score += weightRecent
	}

	for _, phrase := range highEvidencePhrases {
		if strings.Contains(text, phrase) {
			score += weightStudyType
			break
		}
	}

	journal := strings.ToLower(rec.Journal)
	for _, name := range prestigeJournals {
		if strings.Contains(journal, name) {
			score += weightJournal
			break
		}
	}

	if cfg.PenalizeConflicts {
		score -= penaltyConflict * conflictingFamilies(text, analysis)
	}
	if cfg.PenalizePoorAbstracts && (!rec.HasAbstract() || len(rec.Abstract) < poorAbstractLen) {
		score -= penaltyPoorAbstract
	}

	return score
}

// conflictingFamilies counts topic families that match the text but do not
// contain the analysis's detected condition.
func conflictingFamilies(text string, analysis types.QueryAnalysis) int {
	own := familyOf(analysis.Condition)
	n := 0
	for name, terms := range topicFamilies {
		if name == own {
			continue
		}
		for _, term := range terms {
			if strings.Contains(text, term) {
				n++
				break
			}
		}
	}
	return n
}

// familyOf returns the topic family containing the concept, or "".
func familyOf(concept string) string {
	if concept == "" {
		return ""
	}
	for name, terms := range topicFamilies {
		for _, term := range terms {
			if term == concept {
				return name
			}
		}
	}
	return ""
}
