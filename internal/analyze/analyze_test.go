// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTelemedicineDiabetes(t *testing.T) {
	a := Analyze("effectiveness of telemedicine for diabetes management in older adults", Config{})

	require.NotEmpty(t, a.PrimaryTerms)
	assert.Contains(t, a.PrimaryTerms, "telemedicine")
	assert.Contains(t, a.PrimaryTerms, "diabetes")
	assert.Equal(t, "diabetes", a.Condition)
	assert.Equal(t, "telemedicine", a.Intervention)
}

func TestAnalyzePrimaryTermOrder(t *testing.T) {
	a := Analyze("metformin versus insulin for gestational diabetes screening programs", Config{})

	// Order follows the question, capped at three.
	require.Len(t, a.PrimaryTerms, 3)
	assert.Equal(t, []string{"metformin", "insulin", "gestational"}, a.PrimaryTerms)
	assert.Contains(t, a.SecondaryTerms, "screening")
}

func TestAnalyzeNeverEmptyForContentWords(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     bool // want non-empty primary terms
	}{
		{"single content word", "hypertension?", true},
		{"stop words only", "what is the effectiveness of the outcomes", false},
		{"empty", "", false},
		{"whitespace", "   \t ", false},
		{"mixed", "does exercise help", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.question, Config{})
			if tt.want {
				assert.NotEmpty(t, a.PrimaryTerms)
			} else {
				assert.Empty(t, a.PrimaryTerms)
			}
		})
	}
}

func TestDetectFirstMatchWins(t *testing.T) {
	// Both conditions appear; the earlier one in the question wins.
	a := Analyze("cancer screening in patients with diabetes", Config{})
	assert.Equal(t, "cancer", a.Condition)

	b := Analyze("diabetes outcomes after cancer remission", Config{})
	assert.Equal(t, "diabetes", b.Condition)
}

func TestDetectWordBoundaries(t *testing.T) {
	// "osteoarthritis" must not be read as "arthritis" at an offset.
	a := Analyze("knee osteoarthritis pain scores", Config{})
	assert.Equal(t, "osteoarthritis", a.Condition)
}

func TestDetectNoMatch(t *testing.T) {
	a := Analyze("vitamin supplementation in marathon runners", Config{})
	assert.Empty(t, a.Condition)
	assert.Empty(t, a.Intervention)
}

func TestAnalyzeAllMultiMatch(t *testing.T) {
	_, conditions, interventions := AnalyzeAll(
		"metformin and exercise for diabetes and hypertension", Config{})

	assert.Equal(t, []string{"diabetes", "hypertension"}, conditions)
	assert.Equal(t, []string{"metformin", "exercise"}, interventions)
}

func TestAnalyzeMaxPrimaryTermsConfigurable(t *testing.T) {
	a := Analyze("metformin insulin semaglutide empagliflozin aspirin", Config{MaxPrimaryTerms: 2})
	assert.Len(t, a.PrimaryTerms, 2)
	assert.Len(t, a.SecondaryTerms, 3)
}

func TestStripModifiers(t *testing.T) {
	got := StripModifiers("Effectiveness of long-term telemedicine for diabetes")
	assert.False(t, strings.Contains(got, "effectiveness of"))
	assert.False(t, strings.Contains(got, "long-term"))
	assert.Contains(t, got, "telemedicine")
	assert.Contains(t, got, "diabetes")
}
