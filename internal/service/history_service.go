package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"taxpadi/internal/domain"
	"taxpadi/internal/port"
)

// ListParams narrows a history listing. Offset/Limit paginate; TaxType
// filters when non-empty.
type ListParams struct {
	TaxType domain.TaxType
	Offset  int
	Limit   int
}

const (
	defaultHistoryLimit    = 20
	maxHistoryLimit        = 100
	defaultHistoryCacheTTL = 5 * time.Minute
)

// cachedHistoryPage is the stored form of the unfiltered first page.
type cachedHistoryPage struct {
	Calculations []domain.Calculation `json:"calculations"`
	Total        int                  `json:"total"`
}

// HistoryService serves a user's saved calculations.
type HistoryService interface {
	List(ctx context.Context, userID uuid.UUID, params ListParams) ([]domain.Calculation, int, error)
	Get(ctx context.Context, userID, calcID uuid.UUID) (*domain.Calculation, error)
	Delete(ctx context.Context, userID, calcID uuid.UUID) error
	UserStats(ctx context.Context, userID uuid.UUID) (map[domain.TaxType]int, error)
	GlobalStats(ctx context.Context) (*domain.Stats, error)
}

type historyService struct {
	calcRepo port.CalculationRepository
	cache    port.Cache
	cacheTTL time.Duration
}

// NewHistoryService creates a new HistoryService. A non-positive cacheTTL
// falls back to the default.
func NewHistoryService(calcRepo port.CalculationRepository, cache port.Cache, cacheTTL time.Duration) HistoryService {
	if cacheTTL <= 0 {
		cacheTTL = defaultHistoryCacheTTL
	}
	return &historyService{calcRepo: calcRepo, cache: cache, cacheTTL: cacheTTL}
}

func historyCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("taxpadi:history:%s:first", userID)
}

// List returns a page of the user's calculations, newest first. The
// unfiltered first page is the hot path for the dashboard, so it is served
// from cache when possible.
func (s *historyService) List(ctx context.Context, userID uuid.UUID, params ListParams) ([]domain.Calculation, int, error) {
	if params.Limit <= 0 {
		params.Limit = defaultHistoryLimit
	}
	if params.Limit > maxHistoryLimit {
		params.Limit = maxHistoryLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.TaxType != "" && !domain.ValidTaxType(params.TaxType) {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrUnknownTaxType, params.TaxType)
	}

	cacheable := params.TaxType == "" && params.Offset == 0 && params.Limit == defaultHistoryLimit
	if cacheable {
		if raw, ok := s.cache.Get(ctx, historyCacheKey(userID)); ok {
			var page cachedHistoryPage
			if err := json.Unmarshal(raw, &page); err == nil {
				return page.Calculations, page.Total, nil
			}
			_ = s.cache.Delete(ctx, historyCacheKey(userID))
		}
	}

	calcs, total, err := s.calcRepo.ListByUser(ctx, userID, params.TaxType, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		if raw, err := json.Marshal(cachedHistoryPage{Calculations: calcs, Total: total}); err == nil {
			if err := s.cache.Set(ctx, historyCacheKey(userID), raw, s.cacheTTL); err != nil {
				log.Printf("WARNING: caching history for user %s failed: %v", userID, err)
			}
		}
	}

	return calcs, total, nil
}

func (s *historyService) Get(ctx context.Context, userID, calcID uuid.UUID) (*domain.Calculation, error) {
	return s.calcRepo.GetByID(ctx, userID, calcID)
}

func (s *historyService) Delete(ctx context.Context, userID, calcID uuid.UUID) error {
	if err := s.calcRepo.Delete(ctx, userID, calcID); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, historyCacheKey(userID))
	return nil
}

func (s *historyService) UserStats(ctx context.Context, userID uuid.UUID) (map[domain.TaxType]int, error) {
	return s.calcRepo.CountByType(ctx, userID)
}

func (s *historyService) GlobalStats(ctx context.Context) (*domain.Stats, error) {
	return s.calcRepo.GlobalStats(ctx)
}
