package port

import (
	"context"

	"github.com/google/uuid"

	"taxpadi/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	SetEmailVerified(ctx context.Context, userID uuid.UUID) error
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash, expectedTokenID string) error
}

// CalculationRepository defines the contract for saved-calculation
// persistence. All query methods are scoped by userID: a user can only ever
// see their own history.
type CalculationRepository interface {
	Create(ctx context.Context, calc *domain.Calculation) error
	GetByID(ctx context.Context, userID, calcID uuid.UUID) (*domain.Calculation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, taxType domain.TaxType, offset, limit int) ([]domain.Calculation, int, error)
	Delete(ctx context.Context, userID, calcID uuid.UUID) error
	CountByType(ctx context.Context, userID uuid.UUID) (map[domain.TaxType]int, error)
	GlobalStats(ctx context.Context) (*domain.Stats, error)
}
