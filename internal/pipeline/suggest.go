// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strings"

	"github.com/ravisuresh229/evidencegap/internal/analyze"
	"github.com/ravisuresh229/evidencegap/internal/expand"
	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// maxSuggestions caps the alternative phrasings offered with a zero-result
// error.
const maxSuggestions = 3

// Suggest generates alternative phrasings of a question that produced no
// results: the modifier-stripped form, a bare primary-term form, and synonym
// substitutions of the detected concepts. Suggestions are plain text for the
// user to resubmit, not boolean expressions.
func Suggest(question string, analysis types.QueryAnalysis) []string {
	lowered := strings.ToLower(strings.TrimSpace(question))
	seen := map[string]bool{lowered: true}
	var out []string

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] || len(out) >= maxSuggestions {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	add(analyze.StripModifiers(question))
	add(strings.Join(analysis.PrimaryTerms, " "))

	for _, concept := range []string{analysis.Intervention, analysis.Condition} {
		if concept == "" {
			continue
		}
		for _, syn := range expand.Synonyms[concept] {
			if syn == concept || !strings.Contains(lowered, concept) {
				continue
			}
			add(strings.Replace(lowered, concept, syn, 1))
			break
		}
	}

	return out
}
