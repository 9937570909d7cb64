package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxpadi/internal/domain"
)

// MockCalculationRepo is a mock implementation of port.CalculationRepository.
type MockCalculationRepo struct {
	mock.Mock
}

func (m *MockCalculationRepo) Create(ctx context.Context, calc *domain.Calculation) error {
	args := m.Called(ctx, calc)
	return args.Error(0)
}

func (m *MockCalculationRepo) GetByID(ctx context.Context, userID, calcID uuid.UUID) (*domain.Calculation, error) {
	args := m.Called(ctx, userID, calcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calculation), args.Error(1)
}

func (m *MockCalculationRepo) ListByUser(ctx context.Context, userID uuid.UUID, taxType domain.TaxType, offset, limit int) ([]domain.Calculation, int, error) {
	args := m.Called(ctx, userID, taxType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Calculation), args.Int(1), args.Error(2)
}

func (m *MockCalculationRepo) Delete(ctx context.Context, userID, calcID uuid.UUID) error {
	args := m.Called(ctx, userID, calcID)
	return args.Error(0)
}

func (m *MockCalculationRepo) CountByType(ctx context.Context, userID uuid.UUID) (map[domain.TaxType]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TaxType]int), args.Error(1)
}

func (m *MockCalculationRepo) GlobalStats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}
