// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over HTTP: a search endpoint
// returning the ranked record set and an analyze endpoint returning the
// evidence-gap narrative. Narrative failures never surface as errors; the
// analyze endpoint always answers 200 with usable text.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ravisuresh229/evidencegap/internal/narrative"
	"github.com/ravisuresh229/evidencegap/internal/pipeline"
	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// Server routes API requests to the pipeline engine and narrative backend.
type Server struct {
	cfg     types.PipelineConfig
	engine  *pipeline.Engine
	backend narrative.Backend
}

// New creates a server. backend may be nil, in which case every analyze
// request receives the fallback narrative.
func New(cfg types.PipelineConfig, engine *pipeline.Engine, backend narrative.Backend) *Server {
	return &Server{cfg: cfg, engine: engine, backend: backend}
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	return s.cors(mux)
}

// cors applies the allowed-origin header to every response and answers
// preflight requests directly.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.Server.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// searchRequest is the body accepted by POST /api/search.
type searchRequest struct {
	Question string `json:"question"`
}

// searchResponse echoes the question alongside the ranked set so clients
// can discard responses superseded by a newer submission.
type searchResponse struct {
	Question string `json:"question"`
	types.RankedResultSet
}

// errorResponse is the structured error payload.
type errorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	res, err := s.engine.Run(r.Context(), req.Question)
	if err != nil {
		writeSearchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Question: req.Question, RankedResultSet: res.Set})
}

// writeSearchError maps pipeline errors to status codes: input errors are
// 400, exhausted searches are 404 with suggestions, upstream failures 502.
func writeSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, pipeline.ErrEmptyQuestion) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question must not be empty"})
		return
	}
	var nre *pipeline.NoResultsError
	if errors.As(err, &nre) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:       nre.Error(),
			Suggestions: nre.Suggestions,
		})
		return
	}
	writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
}

// analyzeRequest is the body accepted by POST /api/analyze. Records are
// optional; when absent the search pipeline runs first.
type analyzeRequest struct {
	Question string                  `json:"question"`
	Records  []types.CandidateRecord `json:"records,omitempty"`
}

// analyzeResponse carries the narrative plus the records it was drawn from.
type analyzeResponse struct {
	narrative.Analysis
	Records []types.CandidateRecord `json:"records"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	// Validated here rather than left to the pipeline: when records are
	// supplied the pipeline is skipped, and a blank question must be
	// rejected before the narrative backend is called.
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question must not be empty"})
		return
	}

	records := req.Records
	if len(records) == 0 {
		res, err := s.engine.Run(r.Context(), req.Question)
		if err != nil {
			writeSearchError(w, err)
			return
		}
		records = res.Set.Records
	}

	analysis := narrative.Analyze(r.Context(), s.backend, req.Question, records, s.cfg.Narrative)
	writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analysis, Records: records})
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func decodeBody(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
