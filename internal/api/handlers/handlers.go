// Package handlers implements the HTTP endpoints for submitting statements
// and reading analysis results.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/api/middleware"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/jobs"
)

// AnalysesHandler handles analysis endpoints. Analyses run asynchronously:
// creation enqueues a job and the job record, including the finished
// analysis, is what the read endpoints return.
type AnalysesHandler struct {
	publisher jobs.Publisher
	store     jobs.JobStore
	log       zerolog.Logger
}

// NewAnalysesHandler creates a new analyses handler.
func NewAnalysesHandler(publisher jobs.Publisher, store jobs.JobStore, log zerolog.Logger) *AnalysesHandler {
	return &AnalysesHandler{
		publisher: publisher,
		store:     store,
		log:       log,
	}
}

// CreateAnalysis handles POST /api/analyses
func (h *AnalysesHandler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceURI string `json:"source_uri"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SourceURI == "" {
		middleware.WriteError(w, http.StatusBadRequest, "source_uri is required")
		return
	}

	ctx := r.Context()

	job := &jobs.AnalyzeStatementJob{
		SourceURI: req.SourceURI,
	}

	if err := h.publisher.PublishAnalyzeStatement(ctx, job); err != nil {
		h.log.Error().Err(err).Str("source_uri", req.SourceURI).Msg("Failed to enqueue analysis")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue analysis")
		return
	}

	h.log.Info().
		Str("analysis_id", job.JobID).
		Str("source_uri", req.SourceURI).
		Str("request_id", middleware.RequestIDFromContext(ctx)).
		Msg("Analysis enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"analysis_id": job.JobID,
		"source_uri":  job.SourceURI,
		"status":      string(job.Status),
	})
}

// GetAnalysis handles GET /api/analyses/{id}
func (h *AnalysesHandler) GetAnalysis(w http.ResponseWriter, r *http.Request, analysisID string) {
	ctx := r.Context()

	job, err := h.store.GetJob(ctx, analysisID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Analysis not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListAnalyses handles GET /api/analyses
func (h *AnalysesHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	filter := jobs.JobFilter{
		SourceURI: query.Get("source_uri"),
		Status:    jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	analyses, err := h.store.ListJobs(ctx, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list analyses")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}

	// An empty list must encode as [] rather than null.
	if analyses == nil {
		analyses = []*jobs.AnalyzeStatementJob{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"analyses": analyses,
		"count":    len(analyses),
	})
}
