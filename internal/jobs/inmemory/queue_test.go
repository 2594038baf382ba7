package inmemory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/jobs"
)

func jobStatus(t *testing.T, store *Store, jobID string) jobs.JobStatus {
	t.Helper()
	job, err := store.GetJob(context.Background(), jobID)
	if err != nil {
		return ""
	}
	return job.Status
}

func TestQueueProcessesJob(t *testing.T) {
	store := NewStore()
	queue := NewQueue(4, 2, store)
	defer queue.Close()

	var processed atomic.Int32
	require.NoError(t, queue.Start(context.Background(), func(ctx context.Context, job jobs.Job) error {
		processed.Add(1)
		return nil
	}))

	job := &jobs.AnalyzeStatementJob{SourceURI: "gs://statements/january.pdf"}
	require.NoError(t, queue.PublishAnalyzeStatement(context.Background(), job))

	assert.NotEmpty(t, job.JobID, "publish assigns an ID")
	assert.False(t, job.CreatedAt.IsZero())
	assert.Equal(t, DefaultMaxRetries, job.MaxRetries)

	require.Eventually(t, func() bool {
		return jobStatus(t, store, job.JobID) == jobs.JobStatusCompleted
	}, 3*time.Second, 20*time.Millisecond)

	assert.Equal(t, int32(1), processed.Load())

	stored, err := store.GetJob(context.Background(), job.JobID)
	require.NoError(t, err)
	assert.NotNil(t, stored.StartedAt)
	assert.NotNil(t, stored.CompletedAt)
	assert.Empty(t, stored.Error)
}

func TestQueueRetriesFailedJob(t *testing.T) {
	store := NewStore()
	queue := NewQueue(4, 1, store)
	defer queue.Close()

	var attempts atomic.Int32
	require.NoError(t, queue.Start(context.Background(), func(ctx context.Context, job jobs.Job) error {
		if attempts.Add(1) == 1 {
			return errors.New("model unavailable")
		}
		return nil
	}))

	job := &jobs.AnalyzeStatementJob{SourceURI: "gs://statements/january.pdf"}
	require.NoError(t, queue.PublishAnalyzeStatement(context.Background(), job))

	require.Eventually(t, func() bool {
		return jobStatus(t, store, job.JobID) == jobs.JobStatusCompleted
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, int32(2), attempts.Load())

	stored, err := store.GetJob(context.Background(), job.JobID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.RetryCount)
	assert.Empty(t, stored.Error)
}

func TestQueueFailsAfterMaxRetries(t *testing.T) {
	store := NewStore()
	queue := NewQueue(4, 1, store)
	defer queue.Close()

	var attempts atomic.Int32
	require.NoError(t, queue.Start(context.Background(), func(ctx context.Context, job jobs.Job) error {
		attempts.Add(1)
		return errors.New("document unreadable")
	}))

	job := &jobs.AnalyzeStatementJob{SourceURI: "gs://statements/broken.pdf", MaxRetries: 1}
	require.NoError(t, queue.PublishAnalyzeStatement(context.Background(), job))

	require.Eventually(t, func() bool {
		return jobStatus(t, store, job.JobID) == jobs.JobStatusFailed
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, int32(2), attempts.Load(), "one initial attempt plus one retry")

	stored, err := store.GetJob(context.Background(), job.JobID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.RetryCount)
	assert.Contains(t, stored.Error, "document unreadable")
}

func TestQueueRejectsPublishAfterClose(t *testing.T) {
	queue := NewQueue(1, 1, NewStore())
	require.NoError(t, queue.Close())

	err := queue.PublishAnalyzeStatement(context.Background(), &jobs.AnalyzeStatementJob{SourceURI: "x.pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is closed")
}

func TestQueueStopIsIdempotent(t *testing.T) {
	queue := NewQueue(1, 1, NewStore())
	require.NoError(t, queue.Stop(context.Background()))
	require.NoError(t, queue.Stop(context.Background()))
}
