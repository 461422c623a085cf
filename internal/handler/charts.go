package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/dto"
	"github.com/rostrace/rostrace/internal/service"
)

// ChartsHandler handles chart generation endpoints
type ChartsHandler struct {
	chartService  *service.ChartService
	exportService *service.ExportService
	logger        *zap.Logger
}

// NewChartsHandler creates a new charts handler
func NewChartsHandler(chartService *service.ChartService, exportService *service.ExportService, logger *zap.Logger) *ChartsHandler {
	return &ChartsHandler{
		chartService:  chartService,
		exportService: exportService,
		logger:        logger,
	}
}

// CreateSchedulingChart handles POST /v1/charts/callback-scheduling
func (h *ChartsHandler) CreateSchedulingChart(c *fiber.Ctx) error {
	var req dto.SchedulingChartRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	chart, cached, err := h.chartService.GenerateScheduling(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate scheduling chart")
	}

	return c.JSON(dto.ChartResponse{
		SessionID: req.SessionID,
		Cached:    cached,
		Chart:     chart,
	})
}

// CreateTimeSeriesChart handles POST /v1/charts/timeseries
func (h *ChartsHandler) CreateTimeSeriesChart(c *fiber.Ctx) error {
	var req dto.TimeSeriesChartRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	chart, cached, err := h.chartService.GenerateTimeSeries(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate timeseries chart")
	}

	return c.JSON(dto.ChartResponse{
		SessionID: req.SessionID,
		Cached:    cached,
		Chart:     chart,
	})
}

// ExportChart handles POST /v1/charts/export
func (h *ChartsHandler) ExportChart(c *fiber.Ctx) error {
	var req dto.ExportChartRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.exportService.Enqueue(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to enqueue chart export")
	}

	return c.Status(fiber.StatusAccepted).JSON(resp)
}
