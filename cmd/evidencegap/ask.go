// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ravisuresh229/evidencegap/internal/narrative"
	"github.com/ravisuresh229/evidencegap/internal/pipeline"
	"github.com/ravisuresh229/evidencegap/internal/pubmed"
	"github.com/ravisuresh229/evidencegap/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Run the full pipeline and generate an evidence-gap narrative",
	Long: `Ask runs the complete analysis for a clinical question: literature
search, relevance ranking, and a generated narrative identifying evidence
gaps across the retrieved papers. When the narrative backend is
unreachable a deterministic summary built from local counts is shown
instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("no-narrative", false, "skip narrative generation, print ranked records only")
	askCmd.Flags().String("save", "", "write the full result to a YAML file")
	askCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(askCmd)
}

// askResult is the saved/printed shape of a complete ask run.
type askResult struct {
	Question  string                `json:"question" yaml:"question"`
	Analysis  types.QueryAnalysis   `json:"analysis" yaml:"analysis"`
	Set       types.RankedResultSet `json:"results" yaml:"results"`
	Narrative *narrative.Analysis   `json:"narrative,omitempty" yaml:"narrative,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	client := pubmed.NewFromConfig(cfg.Search)
	eng := pipeline.New(cfg, client, os.Stderr)

	res, err := eng.Run(cmd.Context(), question)
	if err != nil {
		return reportRunError(os.Stderr, err)
	}

	out := askResult{
		Question: question,
		Analysis: res.Analysis,
		Set:      res.Set,
	}

	if skip, _ := cmd.Flags().GetBool("no-narrative"); !skip {
		backend := narrative.NewOpenAIBackend(cfg.Narrative, cfg.Narrative.APIKey)
		analysis := narrative.Analyze(cmd.Context(), backend, question, res.Set.Records, cfg.Narrative)
		out.Narrative = &analysis
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := saveYAML(path, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved result to %s\n", path)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(os.Stdout, out)
	}

	printResultSet(os.Stdout, out.Set)
	if out.Narrative != nil {
		fmt.Fprintln(os.Stdout)
		if out.Narrative.Fallback {
			fmt.Fprintln(os.Stdout, "Narrative (generated locally):")
		} else {
			fmt.Fprintln(os.Stdout, "Narrative:")
		}
		fmt.Fprintln(os.Stdout, out.Narrative.Narrative)
	}
	return nil
}

// saveYAML marshals the result and writes it to path.
func saveYAML(path string, result askResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
