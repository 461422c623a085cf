package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rostrace/rostrace/internal/domain"
	"github.com/rostrace/rostrace/internal/dto"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/plot"
	"github.com/rostrace/rostrace/internal/record"
	"github.com/rostrace/rostrace/internal/testutil"
)

// MockRecordRepository is a mock implementation of RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) ExecutionSpans(ctx context.Context, sessionID, uniqueName string) (*record.RecordTable, error) {
	args := m.Called(ctx, sessionID, uniqueName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.RecordTable), args.Error(1)
}

func (m *MockRecordRepository) Timeseries(ctx context.Context, sessionID, uniqueName string, metric record.Metric) (*record.RecordTable, error) {
	args := m.Called(ctx, sessionID, uniqueName, metric)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.RecordTable), args.Error(1)
}

func (m *MockRecordRepository) ClockConverter(ctx context.Context, sessionID string) (record.ClockConverter, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(record.ClockConverter), args.Error(1)
}

func (m *MockRecordRepository) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

// fakeCache is an in-memory ChartCache
type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string]string)} }

func (c *fakeCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, key, value string) error {
	c.data[key] = value
	return nil
}

func TestChartServiceGenerateScheduling(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("SessionExists", mock.Anything, "sess-1").Return(true, nil)
	repo.On("ExecutionSpans", mock.Anything, "sess-1", "/talker/timer_callback_0").
		Return(testutil.SpanTable([2]int64{1_000_000_000, 1_001_000_000}), nil)
	repo.On("ExecutionSpans", mock.Anything, "sess-1", "/listener/subscription_callback_0").
		Return(testutil.SpanTable([2]int64{1_002_000_000, 1_003_000_000}), nil)
	repo.On("ClockConverter", mock.Anything, "sess-1").Return(nil, nil)

	cache := newFakeCache()
	svc := NewChartService(nil, testutil.Application(), repo, cache, plot.DefaultOptions())

	req := &dto.SchedulingChartRequest{
		SessionID: "sess-1",
		Target:    dto.ChartTarget{Type: "application"},
	}
	payload, cached, err := svc.GenerateScheduling(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, cached)

	var chart plot.SchedulingChart
	require.NoError(t, json.Unmarshal(payload, &chart))
	assert.Len(t, chart.Items, 2)
	assert.Equal(t, int64(1_000_000_000), chart.FrameMinNs)
	assert.Equal(t, int64(1_003_000_000), chart.FrameMaxNs)

	// Second identical request is served from cache without new queries.
	_, cached, err = svc.GenerateScheduling(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, cached)
	repo.AssertNumberOfCalls(t, "SessionExists", 1)
}

func TestChartServiceSchedulingUnknownSession(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("SessionExists", mock.Anything, "ghost").Return(false, nil)

	svc := NewChartService(nil, testutil.Application(), repo, nil, plot.DefaultOptions())
	_, _, err := svc.GenerateScheduling(context.Background(), &dto.SchedulingChartRequest{
		SessionID: "ghost",
		Target:    dto.ChartTarget{Type: "application"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestChartServiceSchedulingUnknownNode(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("SessionExists", mock.Anything, "sess-1").Return(true, nil)

	svc := NewChartService(nil, testutil.Application(), repo, nil, plot.DefaultOptions())
	_, _, err := svc.GenerateScheduling(context.Background(), &dto.SchedulingChartRequest{
		SessionID: "sess-1",
		Target:    dto.ChartTarget{Type: "node", Name: "/ghost"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestChartServiceSchedulingValidatesBeforeQuerying(t *testing.T) {
	repo := new(MockRecordRepository)

	svc := NewChartService(nil, testutil.Application(), repo, nil, plot.DefaultOptions())
	_, _, err := svc.GenerateScheduling(context.Background(), &dto.SchedulingChartRequest{
		SessionID: "sess-1",
		Target:    dto.ChartTarget{Type: "application"},
		Options:   dto.ChartOptions{XAxisType: "index"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnsupportedType))
	repo.AssertNotCalled(t, "SessionExists", mock.Anything, mock.Anything)
}

func TestChartServiceBuildTimeSeries(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("SessionExists", mock.Anything, "sess-1").Return(true, nil)
	repo.On("Timeseries", mock.Anything, "sess-1", "/talker/timer_callback_0", record.MetricLatency).
		Return(testutil.MetricTable(record.MetricLatency, 1_000_000_000, 1_000_000, 2_000_000), nil)
	repo.On("ClockConverter", mock.Anything, "sess-1").Return(nil, nil)

	svc := NewChartService(nil, testutil.Application(), repo, nil, plot.DefaultOptions())
	chart, err := svc.BuildTimeSeries(context.Background(), "sess-1",
		[]dto.EntityRef{{Kind: "callback", Name: "/talker/timer_callback_0"}},
		"latency", dto.ChartOptions{})
	require.NoError(t, err)
	require.Len(t, chart.Items, 1)
	assert.Equal(t, "callback", chart.Items[0].Kind)
	assert.Equal(t, []any{1.0, 2.0}, chart.Items[0].Source.Column("y"))
}

func TestChartServiceBuildTimeSeriesBadMetric(t *testing.T) {
	repo := new(MockRecordRepository)
	svc := NewChartService(nil, testutil.Application(), repo, nil, plot.DefaultOptions())

	_, err := svc.BuildTimeSeries(context.Background(), "sess-1",
		[]dto.EntityRef{{Kind: "callback", Name: "/talker/timer_callback_0"}},
		"bogus", dto.ChartOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnsupportedType))
	assert.Contains(t, err.Error(), "latency/period/frequency")
}

func TestChartServiceResolveEntity(t *testing.T) {
	svc := NewChartService(nil, testutil.Application(), nil, nil, plot.DefaultOptions())

	t.Run("communication", func(t *testing.T) {
		e, err := svc.resolveEntity(dto.EntityRef{
			Kind:              "communication",
			TopicName:         "/chatter",
			PublishNodeName:   "/talker",
			SubscribeNodeName: "/listener",
		})
		require.NoError(t, err)
		comm := e.(*domain.Communication)
		assert.Equal(t, "/talker", comm.PublishNodeName())
		assert.Equal(t, "/listener", comm.SubscribeNodeName())
	})

	t.Run("publisher", func(t *testing.T) {
		e, err := svc.resolveEntity(dto.EntityRef{
			Kind: "publisher", NodeName: "/talker", TopicName: "/chatter",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.KindPublisher, e.Kind())
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.resolveEntity(dto.EntityRef{Kind: "service"})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeUnsupportedType))
	})

	t.Run("missing subscription", func(t *testing.T) {
		_, err := svc.resolveEntity(dto.EntityRef{
			Kind: "subscription", NodeName: "/talker", TopicName: "/chatter",
		})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	})
}

func TestChartServiceResolveTargetPath(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("SessionExists", mock.Anything, "sess-1").Return(true, nil)
	repo.On("ExecutionSpans", mock.Anything, "sess-1", mock.Anything).
		Return(testutil.SpanTable([2]int64{1_000_000_000, 1_001_000_000}), nil)
	repo.On("ClockConverter", mock.Anything, "sess-1").Return(nil, nil)

	svc := NewChartService(nil, testutil.Application(), repo, nil, plot.DefaultOptions())
	chart, err := svc.BuildScheduling(context.Background(), "sess-1",
		dto.ChartTarget{Type: "path", Name: "chatter_path"}, dto.ChartOptions{})
	require.NoError(t, err)
	// The path touches both nodes, so both callbacks are plotted.
	assert.Len(t, chart.Items, 2)
}
