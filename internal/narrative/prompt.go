// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// systemPrompt frames the model's role for every analysis request.
const systemPrompt = "You are a research analyst specializing in identifying evidence gaps in scientific literature."

// Prompt sizing defaults, used when the config leaves them unset.
const (
	defaultMaxRecords     = 10
	defaultAbstractBudget = 500
)

// analysisPromptTmpl is the evidence-gap prompt. Papers are numbered from 1
// and rendered with title, truncated abstract, and author list.
var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`Analyze the following research papers and identify evidence gaps in the field:

{{range .Papers}}Paper {{.Index}}:
Title: {{.Title}}
Abstract: {{.Abstract}}
Authors: {{.Authors}}

{{end}}Please provide:
1. A summary of the current research landscape
2. Key evidence gaps that need to be addressed
3. Recommendations for future research directions
4. Potential research questions that could fill these gaps

Format your response in a clear, structured manner.
`))

// promptPaper is one paper prepared for template rendering.
type promptPaper struct {
	Index    int
	Title    string
	Abstract string
	Authors  string
}

// BuildPrompt renders the analysis prompt for the record set, bounded by the
// configured record count and per-abstract budget so the request stays
// within the model's context.
func BuildPrompt(records []types.CandidateRecord, cfg types.NarrativeConfig) string {
	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 {
		maxRecords = defaultMaxRecords
	}
	budget := cfg.AbstractBudget
	if budget <= 0 {
		budget = defaultAbstractBudget
	}
	if len(records) > maxRecords {
		records = records[:maxRecords]
	}

	papers := make([]promptPaper, len(records))
	for i, rec := range records {
		papers[i] = promptPaper{
			Index:    i + 1,
			Title:    rec.Title,
			Abstract: truncate(rec.Abstract, budget),
			Authors:  strings.Join(rec.Authors, ", "),
		}
	}

	var buf bytes.Buffer
	// Writing to a bytes.Buffer cannot fail and the template fields are
	// fixed above, so there is no error path to surface.
	_ = analysisPromptTmpl.Execute(&buf, struct{ Papers []promptPaper }{Papers: papers})
	return buf.String()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
