package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxpadi/internal/domain"
	"taxpadi/internal/service"
)

// MockHistoryService is a mock implementation of service.HistoryService.
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) List(ctx context.Context, userID uuid.UUID, params service.ListParams) ([]domain.Calculation, int, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Calculation), args.Int(1), args.Error(2)
}

func (m *MockHistoryService) Get(ctx context.Context, userID, calcID uuid.UUID) (*domain.Calculation, error) {
	args := m.Called(ctx, userID, calcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calculation), args.Error(1)
}

func (m *MockHistoryService) Delete(ctx context.Context, userID, calcID uuid.UUID) error {
	args := m.Called(ctx, userID, calcID)
	return args.Error(0)
}

func (m *MockHistoryService) UserStats(ctx context.Context, userID uuid.UUID) (map[domain.TaxType]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TaxType]int), args.Error(1)
}

func (m *MockHistoryService) GlobalStats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}
