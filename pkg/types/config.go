// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "evidencegap/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// QueryConfig holds settings for question analysis.
type QueryConfig struct {
	// MaxPrimaryTerms caps how many content words become mandatory search
	// terms (default 3). Remaining words become secondary terms.
	MaxPrimaryTerms int `json:"max_primary_terms" yaml:"max_primary_terms"`

	// DetectAll switches condition/intervention detection from
	// first-match-wins to multi-match. The pipeline uses first-match-wins
	// by default; multi-match is exposed for callers that want every
	// vocabulary hit.
	DetectAll bool `json:"detect_all" yaml:"detect_all"`

	// VocabularyFile optionally points at a YAML file that replaces the
	// built-in synonym dictionary and query overrides.
	VocabularyFile string `json:"vocabulary_file,omitempty" yaml:"vocabulary_file,omitempty"`
}

// SearchConfig holds settings for the literature search backend.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of record identifiers requested
	// per search (default 25).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// DateWindowYears is the rolling publication-date window applied to
	// the original expanded query (default 12).
	DateWindowYears int `json:"date_window_years" yaml:"date_window_years"`

	// APIKey is an optional NCBI API key for the higher rate limit tier.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is the contact address sent with E-utilities requests.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool identifies this application to the backend.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// RankingConfig holds settings for validation, scoring, and assembly.
type RankingConfig struct {
	// Strict forces the strict validator for every query. When false,
	// strict mode still activates for known multi-concept query pairs.
	Strict bool `json:"strict" yaml:"strict"`

	// PenalizeConflicts subtracts points for matches against conflicting
	// topic families. Off by default.
	PenalizeConflicts bool `json:"penalize_conflicts" yaml:"penalize_conflicts"`

	// PenalizePoorAbstracts subtracts points for missing or short
	// abstracts. Off by default.
	PenalizePoorAbstracts bool `json:"penalize_poor_abstracts" yaml:"penalize_poor_abstracts"`

	// ResultCap is the maximum size of the assembled result set (default 8).
	ResultCap int `json:"result_cap" yaml:"result_cap"`
}

// NarrativeConfig holds settings for the narrative-generation backend.
type NarrativeConfig struct {
	// Model is the chat-completion model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// BaseURL is the OpenAI-compatible API base URL.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds the narrative call; on expiry the call is cancelled
	// and the fallback narrative is used (default 45s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRecords caps how many records are included in the prompt (default 10).
	MaxRecords int `json:"max_records" yaml:"max_records"`

	// AbstractBudget truncates each abstract in the prompt to this many
	// characters (default 500).
	AbstractBudget int `json:"abstract_budget" yaml:"abstract_budget"`

	// MaxTokens bounds the completion length (default 1500).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigin is the CORS allowed origin (default "*").
	AllowedOrigin string `json:"allowed_origin" yaml:"allowed_origin"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Query     QueryConfig     `json:"query" yaml:"query"`
	Search    SearchConfig    `json:"search" yaml:"search"`
	Ranking   RankingConfig   `json:"ranking" yaml:"ranking"`
	Narrative NarrativeConfig `json:"narrative" yaml:"narrative"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}

// DefaultPipelineConfig returns the configuration used when no config file
// or flags override a value.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Query: QueryConfig{
			MaxPrimaryTerms: 3,
		},
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "evidencegap/0.1",
			},
			MaxResults:      25,
			DateWindowYears: 12,
			Tool:            "evidencegap",
		},
		Ranking: RankingConfig{
			ResultCap: 8,
		},
		Narrative: NarrativeConfig{
			Model:          "gpt-4o-mini",
			Timeout:        45 * time.Second,
			MaxRecords:     10,
			AbstractBudget: 500,
			MaxTokens:      1500,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			AllowedOrigin: "*",
		},
	}
}
