package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/meridian-oms/meridian/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportsRefresh recomputes the dashboard report cache.
	TaskReportsRefresh = "reports:refresh"
)

// ReportsRefreshPayload parameterises a report cache refresh.
type ReportsRefreshPayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewReportsRefreshTask constructs the Asynq task.
func NewReportsRefreshTask(payload ReportsRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsRefresh, data), nil
}

// ReportCache is the versioned report cache shared with the API processes.
type ReportCache interface {
	Invalidate(ctx context.Context) error
}

// ReportsRefreshJob bumps the shared report cache version on a schedule.
// The record stores are per-process, so the worker must never compute report
// figures itself; invalidating forces each API process to recompute from its
// own live data on the next read.
type ReportsRefreshJob struct {
	Cache   ReportCache
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewReportsRefreshJob initialises the refresh handler.
func NewReportsRefreshJob(cache ReportCache, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportsRefreshJob {
	return &ReportsRefreshJob{
		Cache:   cache,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the refresh.
func (j *ReportsRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ReportsRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskReportsRefresh)
	start := j.clock()
	err := j.Cache.Invalidate(ctx)
	err = tracker.End(err)
	if err != nil {
		j.Logger.Error("reports refresh failed", slog.Any("error", err))
		return err
	}
	j.Logger.Info("report cache version bumped",
		slog.String("reason", payload.Reason),
		slog.Duration("took", j.clock().Sub(start)),
	)
	return nil
}
