// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ravisuresh229/evidencegap/internal/pipeline"
	"github.com/ravisuresh229/evidencegap/internal/pubmed"
)

var searchCmd = &cobra.Command{
	Use:   "search [question...]",
	Short: "Search and rank literature for a clinical question",
	Long: `Search analyzes a clinical question, expands it into a boolean PubMed
query, and retrieves, validates, and ranks the matching records. When the
original query matches nothing, progressively broader fallback queries are
tried automatically.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum identifiers requested per search (default 25)")
	searchCmd.Flags().Bool("strict", false, "require every detected concept to appear in each record")
	searchCmd.Flags().Bool("json", false, "output the ranked set as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("max-results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if v, _ := cmd.Flags().GetBool("strict"); v {
		cfg.Ranking.Strict = true
	}

	question := strings.Join(args, " ")
	client := pubmed.NewFromConfig(cfg.Search)
	eng := pipeline.New(cfg, client, os.Stderr)

	res, err := eng.Run(cmd.Context(), question)
	if err != nil {
		return reportRunError(os.Stderr, err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(os.Stdout, res.Set)
	}
	printResultSet(os.Stdout, res.Set)
	return nil
}
