package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rostrace/rostrace/internal/domain"
	"github.com/rostrace/rostrace/internal/pkg/database"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/pkg/metrics"
)

// PresetRepository handles chart preset persistence in PostgreSQL
type PresetRepository struct {
	db *database.PostgresDB
}

// NewPresetRepository creates a new preset repository
func NewPresetRepository(db *database.PostgresDB) *PresetRepository {
	return &PresetRepository{db: db}
}

// Create creates a new chart preset
func (r *PresetRepository) Create(ctx context.Context, preset *domain.ChartPreset) error {
	query := `
		INSERT INTO chart_presets (id, name, kind, metric, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	start := time.Now()
	_, err := r.db.Pool.Exec(ctx, query,
		preset.ID,
		preset.Name,
		preset.Kind,
		preset.Metric,
		preset.Payload,
		preset.CreatedAt,
		preset.UpdatedAt,
	)
	metrics.RecordDBQuery("postgres", "preset_create", time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}

	return nil
}

// GetByID retrieves a preset by ID
func (r *PresetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChartPreset, error) {
	query := `
		SELECT id, name, kind, metric, payload, created_at, updated_at
		FROM chart_presets
		WHERE id = $1
	`

	var preset domain.ChartPreset
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&preset.ID,
		&preset.Name,
		&preset.Kind,
		&preset.Metric,
		&preset.Payload,
		&preset.CreatedAt,
		&preset.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("preset")
		}
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}

	return &preset, nil
}

// List retrieves all presets, newest first
func (r *PresetRepository) List(ctx context.Context) ([]*domain.ChartPreset, error) {
	query := `
		SELECT id, name, kind, metric, payload, created_at, updated_at
		FROM chart_presets
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var presets []*domain.ChartPreset
	for rows.Next() {
		var preset domain.ChartPreset
		if err := rows.Scan(
			&preset.ID,
			&preset.Name,
			&preset.Kind,
			&preset.Metric,
			&preset.Payload,
			&preset.CreatedAt,
			&preset.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		presets = append(presets, &preset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	return presets, nil
}

// Update updates a preset's name and payload
func (r *PresetRepository) Update(ctx context.Context, preset *domain.ChartPreset) error {
	query := `
		UPDATE chart_presets
		SET name = $2, payload = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		preset.ID,
		preset.Name,
		preset.Payload,
		preset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update preset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("preset")
	}

	return nil
}

// Delete deletes a preset
func (r *PresetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM chart_presets WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("preset")
	}

	return nil
}
