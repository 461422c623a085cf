package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/domain"
	"github.com/rostrace/rostrace/internal/dto"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/pkg/metrics"
	"github.com/rostrace/rostrace/internal/plot"
	"github.com/rostrace/rostrace/internal/record"
)

// RecordRepository defines trace record loading operations
type RecordRepository interface {
	ExecutionSpans(ctx context.Context, sessionID, uniqueName string) (*record.RecordTable, error)
	Timeseries(ctx context.Context, sessionID, uniqueName string, metric record.Metric) (*record.RecordTable, error)
	ClockConverter(ctx context.Context, sessionID string) (record.ClockConverter, error)
	SessionExists(ctx context.Context, sessionID string) (bool, error)
}

// ChartCache caches marshaled chart documents by request key
type ChartCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// ChartService runs the trace-to-visual-source pipeline: it resolves
// chart targets against the loaded architecture, prefetches record
// tables for the requested session and drives the plot builders.
type ChartService struct {
	logger   *zap.Logger
	app      *domain.Application
	records  RecordRepository
	cache    ChartCache
	defaults plot.Options
}

// NewChartService creates a new chart service. cache may be nil to
// disable response caching.
func NewChartService(
	logger *zap.Logger,
	app *domain.Application,
	records RecordRepository,
	cache ChartCache,
	defaults plot.Options,
) *ChartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartService{
		logger:   logger,
		app:      app,
		records:  records,
		cache:    cache,
		defaults: defaults,
	}
}

// GenerateScheduling generates (or serves from cache) a callback
// scheduling chart document. The bool result reports a cache hit.
func (s *ChartService) GenerateScheduling(ctx context.Context, req *dto.SchedulingChartRequest) (json.RawMessage, bool, error) {
	key := cacheKey("scheduling", req)
	if raw, ok := s.cacheGet(ctx, key); ok {
		return raw, true, nil
	}

	chart, err := s.BuildScheduling(ctx, req.SessionID, req.Target, req.Options)
	if err != nil {
		return nil, false, err
	}

	payload, err := json.Marshal(chart)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal scheduling chart: %w", err)
	}
	s.cacheSet(ctx, key, payload)

	return payload, false, nil
}

// GenerateTimeSeries generates (or serves from cache) a time-series
// chart document. The bool result reports a cache hit.
func (s *ChartService) GenerateTimeSeries(ctx context.Context, req *dto.TimeSeriesChartRequest) (json.RawMessage, bool, error) {
	key := cacheKey("timeseries", req)
	if raw, ok := s.cacheGet(ctx, key); ok {
		return raw, true, nil
	}

	chart, err := s.BuildTimeSeries(ctx, req.SessionID, req.Targets, req.Metric, req.Options)
	if err != nil {
		return nil, false, err
	}

	payload, err := json.Marshal(chart)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal timeseries chart: %w", err)
	}
	s.cacheSet(ctx, key, payload)

	return payload, false, nil
}

// BuildScheduling runs the scheduling pipeline and returns the typed
// chart, bypassing the cache. The export worker renders from this.
func (s *ChartService) BuildScheduling(ctx context.Context, sessionID string, target dto.ChartTarget, options dto.ChartOptions) (*plot.SchedulingChart, error) {
	opts := options.Apply(s.defaults)
	if err := opts.Validate(plot.ChartScheduling); err != nil {
		return nil, err
	}
	if err := s.checkSession(ctx, sessionID); err != nil {
		return nil, err
	}

	resolved, err := s.resolveTarget(target)
	if err != nil {
		return nil, err
	}
	p, err := plot.NewSchedulingPlot(s.logger, resolved)
	if err != nil {
		return nil, err
	}

	src := record.NewMemorySource()
	for _, group := range p.CallbackGroups() {
		for _, cb := range group.Callbacks {
			table, err := s.records.ExecutionSpans(ctx, sessionID, cb.UniqueName())
			if err != nil {
				return nil, fmt.Errorf("failed to load execution spans for %s: %w", cb.UniqueName(), err)
			}
			src.PutExecutionSpans(cb.UniqueName(), table)
		}
	}
	if err := s.loadConverter(ctx, sessionID, src); err != nil {
		return nil, err
	}

	start := time.Now()
	chart, err := p.Generate(src, opts)
	if err != nil {
		metrics.RecordChartGenerated(string(plot.ChartScheduling), "error", 0, time.Since(start))
		return nil, err
	}
	metrics.RecordChartGenerated(string(plot.ChartScheduling), "ok", len(chart.Items), time.Since(start))
	if chart.LegendTruncated {
		metrics.RecordLegendTruncated()
	}

	return chart, nil
}

// BuildTimeSeries runs the time-series pipeline and returns the typed
// chart, bypassing the cache.
func (s *ChartService) BuildTimeSeries(ctx context.Context, sessionID string, targets []dto.EntityRef, metricName string, options dto.ChartOptions) (*plot.TimeSeriesChart, error) {
	opts := options.Apply(s.defaults)
	if err := opts.Validate(plot.ChartTimeSeries); err != nil {
		return nil, err
	}
	metric := record.Metric(metricName)
	if !metric.Valid() {
		return nil, apperrors.UnsupportedType("metric", metricName, record.SupportedMetrics())
	}
	if err := s.checkSession(ctx, sessionID); err != nil {
		return nil, err
	}

	entities := make([]domain.Entity, 0, len(targets))
	for _, ref := range targets {
		e, err := s.resolveEntity(ref)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}

	p, err := plot.NewTimeSeriesPlot(s.logger, entities)
	if err != nil {
		return nil, err
	}

	src := record.NewMemorySource()
	for _, e := range entities {
		table, err := s.records.Timeseries(ctx, sessionID, e.UniqueName(), metric)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s series for %s: %w", metric, e.UniqueName(), err)
		}
		src.PutTimeseries(e.UniqueName(), metric, table)
	}
	if err := s.loadConverter(ctx, sessionID, src); err != nil {
		return nil, err
	}

	start := time.Now()
	chart, err := p.Generate(src, metric, opts)
	if err != nil {
		metrics.RecordChartGenerated(string(plot.ChartTimeSeries), "error", 0, time.Since(start))
		return nil, err
	}
	metrics.RecordChartGenerated(string(plot.ChartTimeSeries), "ok", len(chart.Items), time.Since(start))
	if chart.LegendTruncated {
		metrics.RecordLegendTruncated()
	}

	return chart, nil
}

func (s *ChartService) checkSession(ctx context.Context, sessionID string) error {
	exists, err := s.records.SessionExists(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if !exists {
		return apperrors.NotFound("trace session")
	}
	return nil
}

func (s *ChartService) loadConverter(ctx context.Context, sessionID string, src *record.MemorySource) error {
	conv, err := s.records.ClockConverter(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load clock conversion: %w", err)
	}
	if conv != nil {
		src.SetConverter(conv)
	}
	return nil
}

// resolveTarget maps a request target onto the loaded architecture
func (s *ChartService) resolveTarget(t dto.ChartTarget) (any, error) {
	switch t.Type {
	case "application", "":
		return s.app, nil
	case "node":
		n := s.app.FindNode(t.Name)
		if n == nil {
			return nil, apperrors.NotFound("node " + t.Name)
		}
		return n, nil
	case "path":
		p := s.app.FindPath(t.Name)
		if p == nil {
			return nil, apperrors.NotFound("path " + t.Name)
		}
		return p, nil
	case "callback_group":
		g := s.app.FindCallbackGroup(t.Name)
		if g == nil {
			return nil, apperrors.NotFound("callback group " + t.Name)
		}
		return g, nil
	default:
		return nil, apperrors.UnsupportedType("target type", t.Type,
			[]string{"application", "node", "path", "callback_group"})
	}
}

// resolveEntity maps an entity reference onto the loaded architecture.
// Endpoint entities come back as the graph's own pointers so legend
// labels stay stable across builders in one chart session.
func (s *ChartService) resolveEntity(ref dto.EntityRef) (domain.Entity, error) {
	switch ref.Kind {
	case "callback":
		for _, n := range s.app.Nodes {
			for _, cb := range n.Callbacks() {
				if cb.UniqueName() == ref.Name {
					return cb, nil
				}
			}
		}
		return nil, apperrors.NotFound("callback " + ref.Name)
	case "communication":
		pub := s.app.FindNode(ref.PublishNodeName)
		if pub == nil {
			return nil, apperrors.NotFound("node " + ref.PublishNodeName)
		}
		sub := s.app.FindNode(ref.SubscribeNodeName)
		if sub == nil {
			return nil, apperrors.NotFound("node " + ref.SubscribeNodeName)
		}
		return &domain.Communication{
			TopicName:     ref.TopicName,
			PublishNode:   pub,
			SubscribeNode: sub,
		}, nil
	case "publisher":
		n := s.app.FindNode(ref.NodeName)
		if n == nil {
			return nil, apperrors.NotFound("node " + ref.NodeName)
		}
		for _, p := range n.Publishers {
			if p.TopicName == ref.TopicName {
				return p, nil
			}
		}
		return nil, apperrors.NotFound("publisher " + ref.NodeName + " " + ref.TopicName)
	case "subscription":
		n := s.app.FindNode(ref.NodeName)
		if n == nil {
			return nil, apperrors.NotFound("node " + ref.NodeName)
		}
		for _, sub := range n.Subscriptions {
			if sub.TopicName == ref.TopicName {
				return sub, nil
			}
		}
		return nil, apperrors.NotFound("subscription " + ref.NodeName + " " + ref.TopicName)
	default:
		return nil, apperrors.UnsupportedType("entity kind", ref.Kind,
			[]string{"callback", "communication", "publisher", "subscription"})
	}
}

func (s *ChartService) cacheGet(ctx context.Context, key string) (json.RawMessage, bool) {
	if s.cache == nil {
		return nil, false
	}
	val, ok := s.cache.Get(ctx, key)
	metrics.RecordCacheResult(ok)
	if !ok {
		return nil, false
	}
	return json.RawMessage(val), true
}

func (s *ChartService) cacheSet(ctx context.Context, key string, payload []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload)); err != nil {
		s.logger.Warn("failed to cache chart", zap.Error(err))
	}
}

// cacheKey derives a stable key from the full request
func cacheKey(kind string, req any) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return "chart:" + kind + ":" + hex.EncodeToString(sum[:])
}
