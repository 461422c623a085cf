package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/plot"
	"github.com/rostrace/rostrace/internal/record"
	"github.com/rostrace/rostrace/internal/service"
	"github.com/rostrace/rostrace/internal/testutil"
)

// stubRecordRepository serves fixture tables for a single known session
type stubRecordRepository struct {
	sessionID string
}

func (r *stubRecordRepository) ExecutionSpans(_ context.Context, sessionID, _ string) (*record.RecordTable, error) {
	return testutil.SpanTable(
		[2]int64{1_000_000_000, 1_001_000_000},
		[2]int64{1_100_000_000, 1_101_000_000},
	), nil
}

func (r *stubRecordRepository) Timeseries(_ context.Context, _, _ string, metric record.Metric) (*record.RecordTable, error) {
	return testutil.MetricTable(metric, 1_000_000_000, 1_000_000, 2_000_000, 3_000_000), nil
}

func (r *stubRecordRepository) ClockConverter(_ context.Context, _ string) (record.ClockConverter, error) {
	return nil, nil
}

func (r *stubRecordRepository) SessionExists(_ context.Context, sessionID string) (bool, error) {
	return sessionID == r.sessionID, nil
}

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

func newChartsApp(enqueuer service.TaskEnqueuer) *fiber.App {
	chartSvc := service.NewChartService(zap.NewNop(), testutil.Application(),
		&stubRecordRepository{sessionID: "sess-1"}, nil, plot.DefaultOptions())
	exportSvc := service.NewExportService(enqueuer, "default")
	h := NewChartsHandler(chartSvc, exportSvc, zap.NewNop())

	app := fiber.New()
	app.Post("/v1/charts/callback-scheduling", h.CreateSchedulingChart)
	app.Post("/v1/charts/timeseries", h.CreateTimeSeriesChart)
	app.Post("/v1/charts/export", h.ExportChart)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	return resp, decoded
}

func TestCreateSchedulingChart(t *testing.T) {
	app := newChartsApp(nil)

	resp, body := postJSON(t, app, "/v1/charts/callback-scheduling",
		`{"sessionId": "sess-1", "target": {"type": "application"}}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "sess-1", body["sessionId"])
	assert.Equal(t, false, body["cached"])
	chart := body["chart"].(map[string]any)
	assert.Len(t, chart["items"], 2)
}

func TestCreateSchedulingChartUnsupportedAxis(t *testing.T) {
	app := newChartsApp(nil)

	resp, body := postJSON(t, app, "/v1/charts/callback-scheduling",
		`{"sessionId": "sess-1", "target": {"type": "application"}, "options": {"xaxisType": "index"}}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_TYPE", body["error"])
}

func TestCreateSchedulingChartMissingSession(t *testing.T) {
	app := newChartsApp(nil)

	resp, body := postJSON(t, app, "/v1/charts/callback-scheduling",
		`{"target": {"type": "application"}}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation Error", body["error"])
}

func TestCreateSchedulingChartUnknownSession(t *testing.T) {
	app := newChartsApp(nil)

	resp, body := postJSON(t, app, "/v1/charts/callback-scheduling",
		`{"sessionId": "ghost", "target": {"type": "application"}}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["error"])
}

func TestCreateTimeSeriesChart(t *testing.T) {
	app := newChartsApp(nil)

	resp, body := postJSON(t, app, "/v1/charts/timeseries",
		`{"sessionId": "sess-1", "metric": "latency", "targets": [{"kind": "callback", "name": "/talker/timer_callback_0"}]}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	chart := body["chart"].(map[string]any)
	items := chart["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "callback", item["kind"])
}

func TestCreateTimeSeriesChartBadMetric(t *testing.T) {
	app := newChartsApp(nil)

	resp, body := postJSON(t, app, "/v1/charts/timeseries",
		`{"sessionId": "sess-1", "metric": "jitter", "targets": [{"kind": "callback", "name": "/talker/timer_callback_0"}]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_TYPE", body["error"])
}

func TestExportChart(t *testing.T) {
	enqueuer := new(MockTaskEnqueuer)
	enqueuer.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).
		Return(&asynq.TaskInfo{}, nil)
	app := newChartsApp(enqueuer)

	resp, body := postJSON(t, app, "/v1/charts/export",
		`{"sessionId": "sess-1", "kind": "callback_scheduling", "target": {"type": "application"}}`)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	assert.NotEmpty(t, body["taskId"])
	assert.Contains(t, body["objectKey"], "exports/sess-1/")
	enqueuer.AssertExpectations(t)
}

func TestExportChartInvalidKind(t *testing.T) {
	app := newChartsApp(nil)

	resp, body := postJSON(t, app, "/v1/charts/export",
		`{"sessionId": "sess-1", "kind": "pdf", "target": {"type": "application"}}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation Error", body["error"])
}
