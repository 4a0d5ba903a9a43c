// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ravisuresh229/evidencegap/internal/pipeline"
	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// printResultSet renders the ranked records as readable text.
func printResultSet(w io.Writer, set types.RankedResultSet) {
	fmt.Fprintf(w, "Found %d records (fetched %d, %d passed quality filtering)\n",
		len(set.Records), set.TotalFetched, set.TotalAfterQuality)
	if set.FallbackUsed {
		fmt.Fprintf(w, "Broadened query used: %s\n", set.QueryUsed)
	} else {
		fmt.Fprintf(w, "Query: %s\n", set.QueryUsed)
	}
	fmt.Fprintln(w)

	for i, rec := range set.Records {
		fmt.Fprintf(w, "%d. %s (score %d)\n", i+1, rec.Title, rec.Score)
		journal := rec.Journal
		if rec.Year > 0 {
			journal = fmt.Sprintf("%s, %d", journal, rec.Year)
		}
		fmt.Fprintf(w, "   %s\n", journal)
		if rec.URL != "" {
			fmt.Fprintf(w, "   %s\n", rec.URL)
		}
	}
}

// printJSON writes any payload as indented JSON.
func printJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// reportRunError prints suggestions for a zero-result error before the
// error itself propagates to cobra.
func reportRunError(w io.Writer, err error) error {
	var nre *pipeline.NoResultsError
	if errors.As(err, &nre) && len(nre.Suggestions) > 0 {
		fmt.Fprintln(w, "No results found. Try one of these instead:")
		for _, s := range nre.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	return err
}
