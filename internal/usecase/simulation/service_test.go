package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthsim/internal/domain"
)

// MockSimulationRepository is a mock implementation of SimulationRepository for testing
type MockSimulationRepository struct {
	mock.Mock
}

func (m *MockSimulationRepository) Create(ctx context.Context, sim *domain.Simulation) error {
	args := m.Called(ctx, sim)
	return args.Error(0)
}

func (m *MockSimulationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Simulation), args.Error(1)
}

func (m *MockSimulationRepository) List(ctx context.Context) ([]*domain.Simulation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Simulation), args.Error(1)
}

func (m *MockSimulationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSimulationRepository)
	service := NewSimulationService(mockRepo)

	input := CreateSimulationInput{
		Name:      "Retirement",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RealRate:  decimal.RequireFromString("0.05"),
	}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(sim *domain.Simulation) bool {
		return sim.ID != uuid.Nil &&
			sim.Name == "Retirement" &&
			sim.RealRate.Equal(decimal.RequireFromString("0.05")) &&
			!sim.CreatedAt.IsZero()
	})).Return(nil)

	before := time.Now().UTC()
	sim, err := service.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.StartDate, sim.StartDate)
	assert.False(t, sim.CreatedAt.Before(before.Add(-time.Second)))
	mockRepo.AssertExpectations(t)
}

func TestCreate_NegativeRate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSimulationRepository)
	service := NewSimulationService(mockRepo)

	_, err := service.Create(ctx, CreateSimulationInput{
		Name:      "Bad",
		StartDate: time.Now(),
		RealRate:  decimal.RequireFromString("-0.02"),
	})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "rate must be greater than or equal to 0")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreate_EmptyName(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSimulationRepository)
	service := NewSimulationService(mockRepo)

	_, err := service.Create(ctx, CreateSimulationInput{
		StartDate: time.Now(),
		RealRate:  decimal.Zero,
	})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreate_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSimulationRepository)
	service := NewSimulationService(mockRepo)

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("failed to create simulation: connection refused"))

	_, err := service.Create(ctx, CreateSimulationInput{
		Name:      "Retirement",
		StartDate: time.Now(),
		RealRate:  decimal.Zero,
	})

	require.Error(t, err)
	assert.False(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSimulationRepository)
	service := NewSimulationService(mockRepo)

	id := uuid.New()
	mockRepo.On("Delete", ctx, id).Return(domain.NewNotFoundError("simulation", id))

	err := service.Delete(ctx, id)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestList_PassesThroughOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSimulationRepository)
	service := NewSimulationService(mockRepo)

	newer := &domain.Simulation{ID: uuid.New(), Name: "Newer"}
	older := &domain.Simulation{ID: uuid.New(), Name: "Older"}
	mockRepo.On("List", ctx).Return([]*domain.Simulation{newer, older}, nil)

	sims, err := service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, []*domain.Simulation{newer, older}, sims)
}

func TestProjection_UsesSimulationRateAndStartYear(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSimulationRepository)
	service := NewSimulationService(mockRepo)

	id := uuid.New()
	mockRepo.On("GetByID", ctx, id).Return(&domain.Simulation{
		ID:        id,
		Name:      "Retirement",
		StartDate: time.Date(2059, 3, 1, 0, 0, 0, 0, time.UTC),
		RealRate:  decimal.RequireFromString("0.05"),
	}, nil)

	result, err := service.Projection(ctx, id)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 2059, result[0].Year)
	assert.Equal(t, "16800.00", result[0].TotalValue.StringFixed(2))
	assert.Equal(t, 2060, result[1].Year)
	assert.Equal(t, "23940.00", result[1].TotalValue.StringFixed(2))
}

func TestProjection_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSimulationRepository)
	service := NewSimulationService(mockRepo)

	id := uuid.New()
	mockRepo.On("GetByID", ctx, id).Return(nil, domain.NewNotFoundError("simulation", id))

	result, err := service.Projection(ctx, id)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
