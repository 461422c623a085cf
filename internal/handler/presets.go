package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/dto"
	"github.com/rostrace/rostrace/internal/service"
)

// PresetsHandler handles chart preset endpoints
type PresetsHandler struct {
	presetService *service.PresetService
	logger        *zap.Logger
}

// NewPresetsHandler creates a new presets handler
func NewPresetsHandler(presetService *service.PresetService, logger *zap.Logger) *PresetsHandler {
	return &PresetsHandler{
		presetService: presetService,
		logger:        logger,
	}
}

// CreatePreset handles POST /v1/presets
func (h *PresetsHandler) CreatePreset(c *fiber.Ctx) error {
	var req dto.CreatePresetRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	preset, err := h.presetService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create preset")
	}

	return c.Status(fiber.StatusCreated).JSON(preset)
}

// GetPreset handles GET /v1/presets/:presetId
func (h *PresetsHandler) GetPreset(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "presetId")
	if err != nil {
		return err
	}

	preset, err := h.presetService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get preset")
	}

	return c.JSON(preset)
}

// ListPresets handles GET /v1/presets
func (h *PresetsHandler) ListPresets(c *fiber.Ctx) error {
	list, err := h.presetService.List(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list presets")
	}

	return c.JSON(list)
}

// UpdatePreset handles PATCH /v1/presets/:presetId
func (h *PresetsHandler) UpdatePreset(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "presetId")
	if err != nil {
		return err
	}

	var req dto.UpdatePresetRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	preset, err := h.presetService.Update(c.Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update preset")
	}

	return c.JSON(preset)
}

// DeletePreset handles DELETE /v1/presets/:presetId
func (h *PresetsHandler) DeletePreset(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "presetId")
	if err != nil {
		return err
	}

	if err := h.presetService.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete preset")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
