package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rostrace/rostrace/internal/dto"
)

// MockTaskEnqueuer is a mock implementation of TaskEnqueuer
type MockTaskEnqueuer struct {
	mock.Mock
}

func (m *MockTaskEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

func TestExportServiceEnqueue(t *testing.T) {
	var captured *asynq.Task
	enqueuer := new(MockTaskEnqueuer)
	enqueuer.On("EnqueueContext", mock.Anything, mock.AnythingOfType("*asynq.Task"), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*asynq.Task)
		}).
		Return(&asynq.TaskInfo{}, nil)

	svc := NewExportService(enqueuer, "low")
	resp, err := svc.Enqueue(context.Background(), &dto.ExportChartRequest{
		SessionID: "sess-1",
		Kind:      "callback_scheduling",
		Target:    &dto.ChartTarget{Type: "application"},
	})
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, TypeChartExport, captured.Type())
	assert.NotEmpty(t, resp.TaskID)
	assert.Contains(t, resp.ObjectKey, "exports/sess-1/")
	assert.Contains(t, resp.ObjectKey, ".html")

	var payload ChartExportPayload
	require.NoError(t, json.Unmarshal(captured.Payload(), &payload))
	assert.Equal(t, resp.ObjectKey, payload.ObjectKey)
	assert.Equal(t, "sess-1", payload.Request.SessionID)
}
