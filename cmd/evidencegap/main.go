// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the evidencegap CLI: clinical
// literature search with relevance ranking and evidence-gap narratives.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ravisuresh229/evidencegap/internal/expand"
	"github.com/ravisuresh229/evidencegap/internal/secrets"
	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the evidencegap CLI.
var rootCmd = &cobra.Command{
	Use:   "evidencegap",
	Short: "Clinical literature search and evidence-gap analysis",
	Long: `evidencegap turns a free-text clinical question into a ranked set of
literature records and an evidence-gap narrative. Questions are analyzed
into search terms, expanded into boolean queries against PubMed, and the
retrieved records are validated, scored, and quality-filtered.

Subcommands: ask runs the full pipeline including the narrative, search
retrieves and ranks records only, serve exposes both over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./evidencegap.yaml or ~/.config/evidencegap/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("evidencegap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "evidencegap"))
		}
	}

	viper.SetEnvPrefix("EVIDENCEGAP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the pipeline configuration: defaults, then config
// file values, then credentials from the secrets directory or environment.
// An optional vocabulary file replaces the built-in query tables.
func loadConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()

	if err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = secrets.Value(loadedSecrets, "ncbi-api-key", "NCBI_API_KEY")
	}
	if cfg.Search.Email == "" {
		cfg.Search.Email = secrets.Value(loadedSecrets, "ncbi-email", "NCBI_EMAIL")
	}
	if cfg.Narrative.APIKey == "" {
		cfg.Narrative.APIKey = secrets.Value(loadedSecrets, "openai-api-key", "OPENAI_API_KEY")
	}

	if cfg.Query.VocabularyFile != "" {
		if err := expand.LoadVocabularyFile(cfg.Query.VocabularyFile); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
