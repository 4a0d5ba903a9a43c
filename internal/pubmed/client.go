// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed is the NCBI E-utilities client used by the pipeline: an
// esearch call resolving a boolean expression to PMIDs and an efetch call
// resolving PMIDs to candidate records.
package pubmed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/ravisuresh229/evidencegap/internal/httputil"
	"github.com/ravisuresh229/evidencegap/pkg/types"
)

const (
	// DefaultBaseURL is the NCBI E-utilities base URL.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultTool identifies this application to NCBI.
	DefaultTool = "evidencegap"

	// articleURLPrefix is the public article page for a PMID.
	articleURLPrefix = "https://pubmed.ncbi.nlm.nih.gov/"

	// NCBI allows 3 requests per second anonymously, 10 with an API key.
	rateWithoutKey = 3
	rateWithKey    = 10
)

// Client is a rate-limited HTTP client for NCBI E-utilities.
type Client struct {
	baseURL    string
	apiKey     string
	tool       string
	email      string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the base URL for E-utilities requests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithAPIKey sets the NCBI API key and raises the request rate accordingly.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
		if key != "" {
			c.limiter = rate.NewLimiter(rate.Limit(rateWithKey), 1)
		}
	}
}

// WithTool sets the tool parameter sent to NCBI.
func WithTool(tool string) Option {
	return func(c *Client) { c.tool = tool }
}

// WithEmail sets the contact email parameter sent to NCBI.
func WithEmail(email string) Option {
	return func(c *Client) { c.email = email }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an E-utilities client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		tool:    DefaultTool,
		limiter: rate.NewLimiter(rate.Limit(rateWithoutKey), 1),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client from the search section of the pipeline
// configuration.
func NewFromConfig(cfg types.SearchConfig) *Client {
	opts := []Option{
		WithAPIKey(cfg.APIKey),
		WithEmail(cfg.Email),
	}
	if cfg.Tool != "" {
		opts = append(opts, WithTool(cfg.Tool))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	return NewClient(opts...)
}

// doGet performs a rate-limited GET against one endpoint and returns the
// response body. HTTP 429 is retried with backoff before failing.
func (c *Client) doGet(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.tool != "" {
		params.Set("tool", c.tool)
	}
	if c.email != "" {
		params.Set("email", c.email)
	}

	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NCBI returned HTTP %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
