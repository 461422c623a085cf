package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/rostrace/rostrace/internal/dto"
)

// TypeChartExport is the task type for chart HTML export
const TypeChartExport = "chart:export"

// ChartExportPayload is the payload for chart export tasks
type ChartExportPayload struct {
	TaskID    uuid.UUID              `json:"task_id"`
	ObjectKey string                 `json:"object_key"`
	Request   dto.ExportChartRequest `json:"request"`
}

// NewChartExportTask creates a chart export task
func NewChartExportTask(payload *ChartExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart export payload: %w", err)
	}
	return asynq.NewTask(TypeChartExport, data, asynq.MaxRetry(3), asynq.Timeout(5*time.Minute)), nil
}

// TaskEnqueuer enqueues background tasks
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ExportService queues chart HTML exports for background rendering
type ExportService struct {
	client TaskEnqueuer
	queue  string
}

// NewExportService creates a new export service
func NewExportService(client TaskEnqueuer, queue string) *ExportService {
	if queue == "" {
		queue = "default"
	}
	return &ExportService{client: client, queue: queue}
}

// Enqueue queues one export task and returns its ID and the object key
// the rendered document will be uploaded under.
func (s *ExportService) Enqueue(ctx context.Context, req *dto.ExportChartRequest) (*dto.ExportChartResponse, error) {
	taskID := uuid.New()
	objectKey := fmt.Sprintf("exports/%s/%s.html", req.SessionID, taskID)

	task, err := NewChartExportTask(&ChartExportPayload{
		TaskID:    taskID,
		ObjectKey: objectKey,
		Request:   *req,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.client.EnqueueContext(ctx, task, asynq.Queue(s.queue)); err != nil {
		return nil, fmt.Errorf("failed to enqueue chart export: %w", err)
	}

	return &dto.ExportChartResponse{
		TaskID:    taskID.String(),
		ObjectKey: objectKey,
	}, nil
}
