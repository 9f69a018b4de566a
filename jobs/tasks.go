package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup re-computes the default dashboard report so the
	// first hit after a cache invalidation stays warm.
	TaskReportWarmup = "report:warmup"
)

// ReportWarmupPayload describes one warmup request.
type ReportWarmupPayload struct {
	RequestID string `json:"request_id"`
	Trigger   string `json:"trigger"`
}

// NewReportWarmupTask constructs an Asynq task for the warmup handler.
func NewReportWarmupTask(trigger string) (*asynq.Task, error) {
	data, err := json.Marshal(ReportWarmupPayload{
		RequestID: uuid.NewString(),
		Trigger:   trigger,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}
