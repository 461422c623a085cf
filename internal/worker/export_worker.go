package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/dto"
	"github.com/rostrace/rostrace/internal/pkg/metrics"
	"github.com/rostrace/rostrace/internal/render"
	"github.com/rostrace/rostrace/internal/service"
)

// ObjectUploader is the subset of the MinIO client used for uploads
type ObjectUploader interface {
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// ExportWorker renders charts to standalone HTML documents and uploads
// them to object storage.
type ExportWorker struct {
	logger       *zap.Logger
	chartService *service.ChartService
	uploader     ObjectUploader
	bucket       string
}

// NewExportWorker creates a new export worker
func NewExportWorker(
	logger *zap.Logger,
	chartService *service.ChartService,
	uploader ObjectUploader,
	bucket string,
) *ExportWorker {
	return &ExportWorker{
		logger:       logger,
		chartService: chartService,
		uploader:     uploader,
		bucket:       bucket,
	}
}

// ProcessTask processes a chart export task: the chart is rebuilt from
// the stored request, rendered to HTML and uploaded under the object
// key chosen at enqueue time.
func (w *ExportWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload service.ChartExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal chart export payload: %w", err)
	}

	w.logger.Info("processing chart export",
		zap.String("task_id", payload.TaskID.String()),
		zap.String("kind", payload.Request.Kind),
		zap.String("session_id", payload.Request.SessionID),
	)

	doc, err := w.renderDocument(ctx, &payload.Request)
	if err != nil {
		metrics.RecordExport("error")
		return err
	}

	reader := bytes.NewReader(doc)
	_, err = w.uploader.PutObject(ctx, w.bucket, payload.ObjectKey, reader, int64(len(doc)), minio.PutObjectOptions{
		ContentType: "text/html; charset=utf-8",
	})
	if err != nil {
		metrics.RecordExport("error")
		return fmt.Errorf("failed to upload chart export: %w", err)
	}

	metrics.RecordExport("success")
	w.logger.Info("chart export completed",
		zap.String("task_id", payload.TaskID.String()),
		zap.String("object_key", payload.ObjectKey),
		zap.Int("size", len(doc)),
	)

	return nil
}

func (w *ExportWorker) renderDocument(ctx context.Context, req *dto.ExportChartRequest) ([]byte, error) {
	switch req.Kind {
	case "callback_scheduling":
		target := dto.ChartTarget{}
		if req.Target != nil {
			target = *req.Target
		}
		chart, err := w.chartService.BuildScheduling(ctx, req.SessionID, target, req.Options)
		if err != nil {
			return nil, err
		}
		renderer := render.NewHTMLRenderer(documentTitle(req.Title, "Callback Scheduling"))
		render.PageLegend(renderer, chart.Legend)
		return renderer.RenderScheduling(chart)

	case "timeseries":
		chart, err := w.chartService.BuildTimeSeries(ctx, req.SessionID, req.Targets, req.Metric, req.Options)
		if err != nil {
			return nil, err
		}
		renderer := render.NewHTMLRenderer(documentTitle(req.Title, fmt.Sprintf("%s Time Series", chart.Metric)))
		render.PageLegend(renderer, chart.Legend)
		return renderer.RenderTimeSeries(chart)

	default:
		return nil, fmt.Errorf("unsupported export kind: %s", req.Kind)
	}
}

func documentTitle(requested, fallback string) string {
	if requested != "" {
		return requested
	}
	return fallback
}
