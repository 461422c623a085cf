package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePresetRequest represents the request to save a chart preset
type CreatePresetRequest struct {
	Name    string       `json:"name" validate:"required,min=1,max=128"`
	Kind    string       `json:"kind" validate:"required,oneof=callback_scheduling timeseries"`
	Target  *ChartTarget `json:"target,omitempty"`
	Targets []EntityRef  `json:"targets,omitempty" validate:"omitempty,dive"`
	Metric  string       `json:"metric,omitempty"`
	Options ChartOptions `json:"options"`
}

// UpdatePresetRequest represents the request to update a chart preset
type UpdatePresetRequest struct {
	Name    *string       `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Options *ChartOptions `json:"options,omitempty"`
}

// PresetResponse represents a stored chart preset
type PresetResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	Target    *ChartTarget `json:"target,omitempty"`
	Targets   []EntityRef  `json:"targets,omitempty"`
	Metric    string       `json:"metric,omitempty"`
	Options   ChartOptions `json:"options"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ListPresetsResponse represents a preset listing
type ListPresetsResponse struct {
	Presets []PresetResponse `json:"presets"`
	Total   int              `json:"total"`
}
