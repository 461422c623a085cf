package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rostrace/rostrace/internal/domain"
	"github.com/rostrace/rostrace/internal/dto"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
)

// MockPresetRepository is a mock implementation of PresetRepository
type MockPresetRepository struct {
	mock.Mock
}

func (m *MockPresetRepository) Create(ctx context.Context, preset *domain.ChartPreset) error {
	args := m.Called(ctx, preset)
	return args.Error(0)
}

func (m *MockPresetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChartPreset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartPreset), args.Error(1)
}

func (m *MockPresetRepository) List(ctx context.Context) ([]*domain.ChartPreset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChartPreset), args.Error(1)
}

func (m *MockPresetRepository) Update(ctx context.Context, preset *domain.ChartPreset) error {
	args := m.Called(ctx, preset)
	return args.Error(0)
}

func (m *MockPresetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestPresetServiceCreate(t *testing.T) {
	repo := new(MockPresetRepository)
	var stored *domain.ChartPreset
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ChartPreset")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.ChartPreset)
		}).
		Return(nil)

	svc := NewPresetService(repo)
	maxLegends := 30
	resp, err := svc.Create(context.Background(), &dto.CreatePresetRequest{
		Name:   "scheduling default",
		Kind:   "callback_scheduling",
		Target: &dto.ChartTarget{Type: "application"},
		Options: dto.ChartOptions{
			XAxisType:  "sim_time",
			MaxLegends: &maxLegends,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "scheduling default", resp.Name)
	assert.Equal(t, "callback_scheduling", resp.Kind)
	require.NotNil(t, resp.Target)
	assert.Equal(t, "application", resp.Target.Type)
	assert.Equal(t, "sim_time", resp.Options.XAxisType)
	require.NotNil(t, resp.Options.MaxLegends)
	assert.Equal(t, 30, *resp.Options.MaxLegends)
	assert.Equal(t, stored.ID, resp.ID)
}

func TestPresetServiceUpdateOptions(t *testing.T) {
	id := uuid.New()
	existing := &domain.ChartPreset{
		ID:      id,
		Name:    "old",
		Kind:    "timeseries",
		Metric:  "latency",
		Payload: []byte(`{"targets":[{"kind":"callback","name":"/n/cb"}],"options":{"xaxisType":"index"}}`),
	}

	repo := new(MockPresetRepository)
	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.ChartPreset")).Return(nil)

	svc := NewPresetService(repo)
	newName := "new"
	resp, err := svc.Update(context.Background(), id, &dto.UpdatePresetRequest{
		Name:    &newName,
		Options: &dto.ChartOptions{XAxisType: "system_time"},
	})
	require.NoError(t, err)

	assert.Equal(t, "new", resp.Name)
	assert.Equal(t, "system_time", resp.Options.XAxisType)
	// Targets in the payload survive an options-only update.
	require.Len(t, resp.Targets, 1)
	assert.Equal(t, "/n/cb", resp.Targets[0].Name)
}

func TestPresetServiceGetNotFound(t *testing.T) {
	id := uuid.New()
	repo := new(MockPresetRepository)
	repo.On("GetByID", mock.Anything, id).Return(nil, apperrors.NotFound("preset"))

	svc := NewPresetService(repo)
	_, err := svc.Get(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestPresetServiceList(t *testing.T) {
	repo := new(MockPresetRepository)
	repo.On("List", mock.Anything).Return([]*domain.ChartPreset{
		{ID: uuid.New(), Name: "a", Kind: "timeseries", Payload: []byte(`{"options":{}}`)},
		{ID: uuid.New(), Name: "b", Kind: "callback_scheduling", Payload: []byte(`{"options":{}}`)},
	}, nil)

	svc := NewPresetService(repo)
	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "a", resp.Presets[0].Name)
}
