package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rostrace/rostrace/internal/domain"
	"github.com/rostrace/rostrace/internal/dto"
)

// PresetRepository defines chart preset persistence operations
type PresetRepository interface {
	Create(ctx context.Context, preset *domain.ChartPreset) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChartPreset, error)
	List(ctx context.Context) ([]*domain.ChartPreset, error)
	Update(ctx context.Context, preset *domain.ChartPreset) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// presetPayload is the stored shape of a preset's targets and options
type presetPayload struct {
	Target  *dto.ChartTarget `json:"target,omitempty"`
	Targets []dto.EntityRef  `json:"targets,omitempty"`
	Options dto.ChartOptions `json:"options"`
}

// PresetService handles chart preset operations
type PresetService struct {
	presetRepo PresetRepository
}

// NewPresetService creates a new preset service
func NewPresetService(presetRepo PresetRepository) *PresetService {
	return &PresetService{presetRepo: presetRepo}
}

// Create saves a new chart preset
func (s *PresetService) Create(ctx context.Context, req *dto.CreatePresetRequest) (*dto.PresetResponse, error) {
	payload, err := json.Marshal(presetPayload{
		Target:  req.Target,
		Targets: req.Targets,
		Options: req.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preset payload: %w", err)
	}

	now := time.Now()
	preset := &domain.ChartPreset{
		ID:        uuid.New(),
		Name:      req.Name,
		Kind:      req.Kind,
		Metric:    req.Metric,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.presetRepo.Create(ctx, preset); err != nil {
		return nil, err
	}

	return toPresetResponse(preset)
}

// Get returns a preset by ID
func (s *PresetService) Get(ctx context.Context, id uuid.UUID) (*dto.PresetResponse, error) {
	preset, err := s.presetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPresetResponse(preset)
}

// List returns all presets
func (s *PresetService) List(ctx context.Context) (*dto.ListPresetsResponse, error) {
	presets, err := s.presetRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListPresetsResponse{
		Presets: make([]dto.PresetResponse, 0, len(presets)),
		Total:   len(presets),
	}
	for _, preset := range presets {
		pr, err := toPresetResponse(preset)
		if err != nil {
			return nil, err
		}
		resp.Presets = append(resp.Presets, *pr)
	}

	return resp, nil
}

// Update updates a preset's name and options
func (s *PresetService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePresetRequest) (*dto.PresetResponse, error) {
	preset, err := s.presetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		preset.Name = *req.Name
	}
	if req.Options != nil {
		var payload presetPayload
		if err := json.Unmarshal(preset.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal preset payload: %w", err)
		}
		payload.Options = *req.Options
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal preset payload: %w", err)
		}
		preset.Payload = data
	}
	preset.UpdatedAt = time.Now()

	if err := s.presetRepo.Update(ctx, preset); err != nil {
		return nil, err
	}

	return toPresetResponse(preset)
}

// Delete deletes a preset
func (s *PresetService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.presetRepo.Delete(ctx, id)
}

func toPresetResponse(preset *domain.ChartPreset) (*dto.PresetResponse, error) {
	var payload presetPayload
	if err := json.Unmarshal(preset.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset payload: %w", err)
	}

	return &dto.PresetResponse{
		ID:        preset.ID,
		Name:      preset.Name,
		Kind:      preset.Kind,
		Target:    payload.Target,
		Targets:   payload.Targets,
		Metric:    preset.Metric,
		Options:   payload.Options,
		CreatedAt: preset.CreatedAt,
		UpdatedAt: preset.UpdatedAt,
	}, nil
}
