// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ravisuresh229/evidencegap/internal/narrative"
	"github.com/ravisuresh229/evidencegap/internal/pipeline"
	"github.com/ravisuresh229/evidencegap/internal/pubmed"
	"github.com/ravisuresh229/evidencegap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search and analyze endpoints over HTTP",
	Long: `Serve exposes the pipeline as an HTTP API: POST /api/search returns the
ranked record set for a question, POST /api/analyze returns the
evidence-gap narrative, GET /health reports liveness.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	client := pubmed.NewFromConfig(cfg.Search)
	eng := pipeline.New(cfg, client, io.Discard)
	backend := narrative.NewOpenAIBackend(cfg.Narrative, cfg.Narrative.APIKey)
	srv := server.New(cfg, eng, backend)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return srv.ListenAndServe(ctx)
}
