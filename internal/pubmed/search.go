// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// defaultRetMax bounds a search when the caller passes no limit.
const defaultRetMax = 25

// esearchResponse is the JSON shape of an esearch.fcgi response. Only the
// identifier list is consumed; counts arrive as strings.
type esearchResponse struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Search resolves a boolean query expression to a list of PMIDs, most
// relevant first. An expression matching nothing returns an empty list, not
// an error.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultRetMax
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmode", "json")
	params.Set("retmax", strconv.Itoa(limit))
	params.Set("sort", "relevance")

	body, err := c.doGet(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	var parsed esearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return parsed.Result.IDList, nil
}
