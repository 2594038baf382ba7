package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/analyzer"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/jobs"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/jobs/inmemory"
)

// newHandler wires a handler to an in-memory queue with no consumer, so
// published jobs stay pending and tests see deterministic state.
func newHandler(t *testing.T) (*AnalysesHandler, *inmemory.Store, *inmemory.Queue) {
	t.Helper()
	store := inmemory.NewStore()
	queue := inmemory.NewQueue(8, 1, store)
	t.Cleanup(func() { _ = queue.Close() })
	return NewAnalysesHandler(queue, store, zerolog.Nop()), store, queue
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCreateAnalysis(t *testing.T) {
	handler, store, _ := newHandler(t)

	rec := postJSON(t, handler.CreateAnalysis, `{"source_uri": "gs://statements/january.pdf"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["analysis_id"])
	assert.Equal(t, "gs://statements/january.pdf", resp["source_uri"])
	assert.Equal(t, "pending", resp["status"])

	stored, err := store.GetJob(context.Background(), resp["analysis_id"])
	require.NoError(t, err)
	assert.Equal(t, jobs.JobStatusPending, stored.Status)
}

func TestCreateAnalysisRejectsBadBody(t *testing.T) {
	handler, _, _ := newHandler(t)

	rec := postJSON(t, handler.CreateAnalysis, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestCreateAnalysisRequiresSourceURI(t *testing.T) {
	handler, _, _ := newHandler(t)

	rec := postJSON(t, handler.CreateAnalysis, `{"source_uri": ""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "source_uri is required")
}

func TestCreateAnalysisWhenQueueClosed(t *testing.T) {
	handler, _, queue := newHandler(t)
	require.NoError(t, queue.Close())

	rec := postJSON(t, handler.CreateAnalysis, `{"source_uri": "statement.pdf"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to enqueue analysis")
}

func TestGetAnalysis(t *testing.T) {
	handler, store, _ := newHandler(t)

	valid := true
	job := &jobs.AnalyzeStatementJob{
		JobID:     "analysis-1",
		SourceURI: "statement.pdf",
		Status:    jobs.JobStatusCompleted,
		CreatedAt: time.Now(),
		Analysis: &analyzer.Analysis{
			AnalysisID:      "analysis-1",
			IsBankStatement: &valid,
		},
	}
	require.NoError(t, store.SaveJob(context.Background(), job))

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/analysis-1", nil)
	rec := httptest.NewRecorder()
	handler.GetAnalysis(rec, req, "analysis-1")

	require.Equal(t, http.StatusOK, rec.Code)

	var got jobs.AnalyzeStatementJob
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, jobs.JobStatusCompleted, got.Status)
	require.NotNil(t, got.Analysis)
	require.NotNil(t, got.Analysis.IsBankStatement)
	assert.True(t, *got.Analysis.IsBankStatement)
}

func TestGetAnalysisNotFound(t *testing.T) {
	handler, _, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/nope", nil)
	rec := httptest.NewRecorder()
	handler.GetAnalysis(rec, req, "nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analysis not found")
}

func TestListAnalysesFiltersByStatus(t *testing.T) {
	handler, store, _ := newHandler(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	seed := []*jobs.AnalyzeStatementJob{
		{JobID: "a", SourceURI: "one.pdf", Status: jobs.JobStatusCompleted, CreatedAt: base},
		{JobID: "b", SourceURI: "two.pdf", Status: jobs.JobStatusPending, CreatedAt: base.Add(time.Minute)},
		{JobID: "c", SourceURI: "three.pdf", Status: jobs.JobStatusCompleted, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, job := range seed {
		require.NoError(t, store.SaveJob(ctx, job))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/analyses?status=completed", nil)
	rec := httptest.NewRecorder()
	handler.ListAnalyses(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Analyses []*jobs.AnalyzeStatementJob `json:"analyses"`
		Count    int                         `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Analyses, 2)
	assert.Equal(t, "c", resp.Analyses[0].JobID, "newest first")
	assert.Equal(t, "a", resp.Analyses[1].JobID)
}

func TestListAnalysesLimit(t *testing.T) {
	handler, store, _ := newHandler(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveJob(ctx, &jobs.AnalyzeStatementJob{
			JobID:     id,
			SourceURI: "one.pdf",
			Status:    jobs.JobStatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/analyses?limit=1&offset=1", nil)
	rec := httptest.NewRecorder()
	handler.ListAnalyses(rec, req)

	var resp struct {
		Analyses []*jobs.AnalyzeStatementJob `json:"analyses"`
		Count    int                         `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Analyses, 1)
	assert.Equal(t, "b", resp.Analyses[0].JobID)
}

func TestListAnalysesEmptyIsArray(t *testing.T) {
	handler, _, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses", nil)
	rec := httptest.NewRecorder()
	handler.ListAnalyses(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"analyses":[]`)
}
