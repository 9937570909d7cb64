package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taxpadi/internal/domain"
	"taxpadi/internal/service"
	"taxpadi/mocks"
)

func TestHistoryService_List_CacheMissThenStore(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	cache := new(mocks.MockCache)
	svc := service.NewHistoryService(calcRepo, cache, time.Minute)
	userID := uuid.New()

	calcs := []domain.Calculation{{ID: uuid.New(), UserID: userID, TaxType: domain.TaxTypePIT}}
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, false)
	calcRepo.On("ListByUser", mock.Anything, userID, domain.TaxType(""), 0, 20).Return(calcs, 1, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Minute).Return(nil)

	got, total, err := svc.List(context.Background(), userID, service.ListParams{})

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, got, 1)
	calcRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestHistoryService_List_CacheHitSkipsRepo(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	cache := new(mocks.MockCache)
	svc := service.NewHistoryService(calcRepo, cache, time.Minute)
	userID := uuid.New()

	cached, _ := json.Marshal(struct {
		Calculations []domain.Calculation `json:"calculations"`
		Total        int                  `json:"total"`
	}{
		Calculations: []domain.Calculation{{ID: uuid.New(), UserID: userID}},
		Total:        1,
	})
	cache.On("Get", mock.Anything, mock.Anything).Return(cached, true)

	got, total, err := svc.List(context.Background(), userID, service.ListParams{})

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, got, 1)
	calcRepo.AssertNotCalled(t, "ListByUser")
}

func TestHistoryService_List_FilteredPageBypassesCache(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	cache := new(mocks.MockCache)
	svc := service.NewHistoryService(calcRepo, cache, time.Minute)
	userID := uuid.New()

	calcRepo.On("ListByUser", mock.Anything, userID, domain.TaxTypeVAT, 0, 20).
		Return([]domain.Calculation{}, 0, nil)

	_, _, err := svc.List(context.Background(), userID, service.ListParams{TaxType: domain.TaxTypeVAT})

	assert.NoError(t, err)
	cache.AssertNotCalled(t, "Get")
	cache.AssertNotCalled(t, "Set")
}

func TestHistoryService_List_UnknownTaxType(t *testing.T) {
	svc := service.NewHistoryService(new(mocks.MockCalculationRepo), new(mocks.MockCache), time.Minute)

	_, _, err := svc.List(context.Background(), uuid.New(), service.ListParams{TaxType: "stamp_duty"})

	assert.ErrorIs(t, err, domain.ErrUnknownTaxType)
}

func TestHistoryService_List_ClampsLimit(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	cache := new(mocks.MockCache)
	svc := service.NewHistoryService(calcRepo, cache, time.Minute)
	userID := uuid.New()

	calcRepo.On("ListByUser", mock.Anything, userID, domain.TaxType(""), 0, 100).
		Return([]domain.Calculation{}, 0, nil)

	_, _, err := svc.List(context.Background(), userID, service.ListParams{Limit: 5000})

	assert.NoError(t, err)
	calcRepo.AssertExpectations(t)
}

func TestHistoryService_Delete_InvalidatesCache(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	cache := new(mocks.MockCache)
	svc := service.NewHistoryService(calcRepo, cache, time.Minute)
	userID := uuid.New()
	calcID := uuid.New()

	calcRepo.On("Delete", mock.Anything, userID, calcID).Return(nil)
	cache.On("Delete", mock.Anything, mock.Anything).Return(nil)

	err := svc.Delete(context.Background(), userID, calcID)

	assert.NoError(t, err)
	calcRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestHistoryService_Delete_NotFoundSkipsInvalidation(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	cache := new(mocks.MockCache)
	svc := service.NewHistoryService(calcRepo, cache, time.Minute)

	calcRepo.On("Delete", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	cache.AssertNotCalled(t, "Delete")
}

func TestHistoryService_UserStats(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	svc := service.NewHistoryService(calcRepo, new(mocks.MockCache), time.Minute)
	userID := uuid.New()

	counts := map[domain.TaxType]int{domain.TaxTypePIT: 3, domain.TaxTypeVAT: 1}
	calcRepo.On("CountByType", mock.Anything, userID).Return(counts, nil)

	got, err := svc.UserStats(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, 3, got[domain.TaxTypePIT])
}
