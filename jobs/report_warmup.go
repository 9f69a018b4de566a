package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/agroplan-erp/agroplan/internal/report"
)

// ReportWarmupJob pre-populates the report cache for the default filter set.
type ReportWarmupJob struct {
	Reports *report.Service
	Logger  *slog.Logger
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(reports *report.Service, logger *slog.Logger) *ReportWarmupJob {
	return &ReportWarmupJob{Reports: reports, Logger: logger}
}

// Handle processes report warmup tasks. The unfiltered report is the one
// every dashboard session opens with, so warming that single signature
// covers the common path.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger().With(slog.String("trigger", payload.Trigger), slog.String("request_id", payload.RequestID))
	started := time.Now()

	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if _, err := j.Reports.BuildReport(warmCtx, report.RawFilters{}); err != nil {
		logger.Error("report warmup", slog.Any("error", err))
		return err
	}

	logger.Info("report warmup complete", slog.Duration("duration", time.Since(started)))
	return nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportWarmup))
}
