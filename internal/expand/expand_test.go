// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expand

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

func init() {
	// Pin the clock so date clauses are stable.
	now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
}

func fullOpts() Options {
	return Options{StudyTypes: true, WindowYears: 12}
}

func TestBuildQueryStructure(t *testing.T) {
	a := types.QueryAnalysis{PrimaryTerms: []string{"telemedicine", "hypertension", "adherence"}}
	q := BuildQuery(a, fullOpts())

	// Every primary term's clause, the study-type clause, and the date
	// clause are all ANDed.
	clauses := strings.Split(q, " AND ")
	require.Len(t, clauses, 5)
	assert.Contains(t, clauses[0], `"telemedicine"`)
	assert.Contains(t, clauses[0], `"telehealth"`)
	assert.Contains(t, clauses[1], `"hypertension"`)
	assert.Contains(t, clauses[3], `"systematic review"`)
	assert.Contains(t, clauses[3], `"observational study"`)
	assert.Equal(t, "2014:2026[dp]", clauses[4])
}

func TestTermClauseWithoutSynonyms(t *testing.T) {
	// Terms with no dictionary entry stand alone.
	assert.Equal(t, `("zoledronate")`, TermClause("zoledronate"))
}

func TestTermClauseSynonymGroup(t *testing.T) {
	c := TermClause("diabetes")
	assert.True(t, strings.HasPrefix(c, `("diabetes" OR `))
	assert.Contains(t, c, `"type 2 diabetes"`)
	assert.True(t, strings.HasSuffix(c, ")"))
}

func TestBuildQueryOptionsDropFilters(t *testing.T) {
	a := types.QueryAnalysis{PrimaryTerms: []string{"exercise", "depression"}}

	bare := BuildQuery(a, Options{})
	assert.NotContains(t, bare, "[dp]")
	assert.NotContains(t, bare, "systematic review")

	dated := BuildQuery(a, Options{WindowYears: 20})
	assert.Contains(t, dated, "2006:2026[dp]")
	assert.NotContains(t, dated, "systematic review")
}

func TestBuildQueryMaxTerms(t *testing.T) {
	a := types.QueryAnalysis{PrimaryTerms: []string{"exercise", "depression", "adherence"}}
	q := BuildQuery(a, Options{MaxTerms: 1})
	assert.Contains(t, q, `"exercise"`)
	assert.NotContains(t, q, `"depression"`)
}

func TestOverrideBypassesGenericBuilder(t *testing.T) {
	a := types.QueryAnalysis{
		PrimaryTerms: []string{"telemedicine", "diabetes"},
		Condition:    "diabetes",
		Intervention: "telemedicine",
	}
	q := BuildQuery(a, fullOpts())

	assert.Contains(t, q, `"glycemic control"`)
	// Override narrows the window to 8 years.
	assert.Contains(t, q, "2018:2026[dp]")
	assert.NotContains(t, q, "systematic review")
}

func TestOverrideIgnoredWithoutBothFilters(t *testing.T) {
	a := types.QueryAnalysis{
		PrimaryTerms: []string{"telemedicine", "diabetes"},
		Condition:    "diabetes",
		Intervention: "telemedicine",
	}
	q := BuildQuery(a, Options{})
	assert.NotContains(t, q, "glycemic control")
}

func TestHasOverride(t *testing.T) {
	assert.True(t, HasOverride(types.QueryAnalysis{Condition: "diabetes", Intervention: "telemedicine"}))
	assert.False(t, HasOverride(types.QueryAnalysis{Condition: "diabetes"}))
	assert.False(t, HasOverride(types.QueryAnalysis{Condition: "asthma", Intervention: "metformin"}))
}

func TestLookupLenientCategory(t *testing.T) {
	expr, ok := LookupLenientCategory([]string{"cardiac", "biomarkers"})
	require.True(t, ok)
	assert.Contains(t, expr, "biological marker")

	_, ok = LookupLenientCategory([]string{"cardiac"})
	assert.False(t, ok)
}

func TestLoadVocabularyFile(t *testing.T) {
	origSynonyms := Synonyms
	origOverrides := overrides
	t.Cleanup(func() {
		Synonyms = origSynonyms
		overrides = origOverrides
	})

	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := `synonyms:
  ketamine:
    - esketamine
overrides:
  depression|ketamine:
    expression: '("ketamine" OR "esketamine") AND ("depression")'
    window_years: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, LoadVocabularyFile(path))

	assert.Equal(t, `("ketamine" OR "esketamine")`, TermClause("ketamine"))

	a := types.QueryAnalysis{
		PrimaryTerms: []string{"ketamine"},
		Condition:    "depression",
		Intervention: "ketamine",
	}
	q := BuildQuery(a, fullOpts())
	assert.Contains(t, q, "2021:2026[dp]")
}

func TestLoadVocabularyFileMissing(t *testing.T) {
	err := LoadVocabularyFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, strings.Contains(fmt.Sprint(err), "absent.yaml"))
}
