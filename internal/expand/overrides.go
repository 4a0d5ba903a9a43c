// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expand

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// Override is a hand-tuned expression for a known condition/intervention
// pair. Overrides exist because the generic builder over-broadens a few
// heavily published combinations; each entry narrows the date window and
// pins the variant sets that matter for the pair.
type Override struct {
	// Expression is the full term portion of the query; the date clause is
	// appended by BuildQuery from WindowYears.
	Expression string `yaml:"expression"`

	// WindowYears is the narrower date window for this pair.
	WindowYears int `yaml:"window_years"`
}

// overrides is keyed by "condition|intervention". Replaceable via
// LoadVocabularyFile; the shipped table covers the combinations the generic
// builder handles poorly.
var overrides = map[string]Override{
	"diabetes|telemedicine": {
		Expression:  `("telemedicine" OR "telehealth" OR "remote monitoring") AND ("diabetes" OR "diabetes mellitus" OR "glycemic control")`,
		WindowYears: 8,
	},
	"hypertension|telemedicine": {
		Expression:  `("telemedicine" OR "telehealth" OR "remote monitoring") AND ("hypertension" OR "blood pressure control")`,
		WindowYears: 8,
	},
	"obesity|glp-1": {
		Expression:  `("glp-1 receptor agonist" OR "semaglutide" OR "liraglutide") AND ("obesity" OR "weight loss" OR "body mass index")`,
		WindowYears: 6,
	},
}

// lenientCategories maps a term to the hand-tuned broad expression used by
// the ladder's final, domain-specific strategy. These categories tolerate
// very loose queries because their literature is large and well indexed.
var lenientCategories = map[string]string{
	"biomarker":  `("biomarker" OR "biological marker") AND ("prognostic" OR "diagnostic" OR "predictive")`,
	"biomarkers": `("biomarker" OR "biological marker") AND ("prognostic" OR "diagnostic" OR "predictive")`,
	"screening":  `("screening" OR "early detection") AND ("sensitivity" OR "specificity" OR "uptake")`,
}

// overrideKey builds the lookup key for a detected concept pair.
func overrideKey(analysis types.QueryAnalysis) string {
	if analysis.Condition == "" || analysis.Intervention == "" {
		return ""
	}
	return analysis.Condition + "|" + analysis.Intervention
}

// LookupOverride returns the hand-tuned override for the analysis's concept
// pair, if one exists.
func LookupOverride(analysis types.QueryAnalysis) (Override, bool) {
	ov, ok := overrides[overrideKey(analysis)]
	return ov, ok
}

// HasOverride reports whether the analysis matches a known multi-concept
// combination. The validator switches to strict mode for these pairs.
func HasOverride(analysis types.QueryAnalysis) bool {
	_, ok := LookupOverride(analysis)
	return ok
}

// LookupLenientCategory returns the broad expression for a term belonging
// to a lenient category, if any primary term matches one.
func LookupLenientCategory(terms []string) (string, bool) {
	for _, term := range terms {
		if expr, ok := lenientCategories[term]; ok {
			return expr, true
		}
	}
	return "", false
}

// vocabularyFile is the on-disk shape accepted by LoadVocabularyFile.
type vocabularyFile struct {
	Synonyms  map[string][]string `yaml:"synonyms"`
	Overrides map[string]Override `yaml:"overrides"`
	Lenient   map[string]string   `yaml:"lenient_categories"`
}

// LoadVocabularyFile replaces the built-in synonym dictionary, override
// table, and lenient categories with the contents of a YAML file. Sections
// absent from the file keep the built-in tables. Intended to run once at
// process start, before any query is built.
func LoadVocabularyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading vocabulary file %s: %w", path, err)
	}

	var vf vocabularyFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return fmt.Errorf("parsing vocabulary file %s: %w", path, err)
	}

	if len(vf.Synonyms) > 0 {
		Synonyms = vf.Synonyms
	}
	if len(vf.Overrides) > 0 {
		overrides = vf.Overrides
	}
	if len(vf.Lenient) > 0 {
		lenientCategories = vf.Lenient
	}
	return nil
}
