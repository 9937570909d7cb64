package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxpadi/internal/domain"
	"taxpadi/internal/service"
	"taxpadi/internal/tax"
)

// MockCalculationService is a mock implementation of service.CalculationService.
type MockCalculationService struct {
	mock.Mock
}

func (m *MockCalculationService) CalculatePIT(in tax.PITInput) (*tax.PITResult, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.PITResult), args.Error(1)
}

func (m *MockCalculationService) CalculateCIT(in tax.CITInput) (*tax.CITResult, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.CITResult), args.Error(1)
}

func (m *MockCalculationService) CalculateCGT(in tax.CGTInput) (*tax.CGTResult, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.CGTResult), args.Error(1)
}

func (m *MockCalculationService) CalculateVAT(req service.VATRequest) (*tax.VATResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.VATResult), args.Error(1)
}

func (m *MockCalculationService) CalculateBusinessVAT(req service.BusinessVATRequest) (*tax.VATBusinessResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.VATBusinessResult), args.Error(1)
}

func (m *MockCalculationService) Save(ctx context.Context, userID uuid.UUID, input service.SaveInput) (*domain.Calculation, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calculation), args.Error(1)
}

func (m *MockCalculationService) Recompute(ctx context.Context, userID, calcID uuid.UUID) (*domain.Calculation, error) {
	args := m.Called(ctx, userID, calcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calculation), args.Error(1)
}
