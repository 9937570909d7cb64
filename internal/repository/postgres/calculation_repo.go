package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taxpadi/internal/domain"
	"taxpadi/internal/port"
)

type calculationRepo struct {
	db *sqlx.DB
}

// NewCalculationRepo creates a new PostgreSQL-backed CalculationRepository.
func NewCalculationRepo(db *sqlx.DB) port.CalculationRepository {
	return &calculationRepo{db: db}
}

func (r *calculationRepo) Create(ctx context.Context, calc *domain.Calculation) error {
	calc.ID = uuid.New()
	calc.CreatedAt = time.Now().UTC()

	query := `INSERT INTO calculations (id, user_id, tax_type, label, inputs, results, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		calc.ID, calc.UserID, calc.TaxType, calc.Label, calc.Inputs, calc.Results, calc.CreatedAt)
	if err != nil {
		return fmt.Errorf("calculationRepo.Create: %w", err)
	}
	return nil
}

func (r *calculationRepo) GetByID(ctx context.Context, userID, calcID uuid.UUID) (*domain.Calculation, error) {
	var calc domain.Calculation
	err := r.db.GetContext(ctx, &calc,
		"SELECT * FROM calculations WHERE id = $1 AND user_id = $2", calcID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("calculationRepo.GetByID: %w", err)
	}
	return &calc, nil
}

func (r *calculationRepo) ListByUser(ctx context.Context, userID uuid.UUID, taxType domain.TaxType, offset, limit int) ([]domain.Calculation, int, error) {
	countQuery := "SELECT COUNT(*) FROM calculations WHERE user_id = $1"
	listQuery := "SELECT * FROM calculations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3"
	countArgs := []interface{}{userID}
	listArgs := []interface{}{userID, limit, offset}

	if taxType != "" {
		countQuery = "SELECT COUNT(*) FROM calculations WHERE user_id = $1 AND tax_type = $2"
		listQuery = "SELECT * FROM calculations WHERE user_id = $1 AND tax_type = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4"
		countArgs = []interface{}{userID, taxType}
		listArgs = []interface{}{userID, taxType, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("calculationRepo.ListByUser count: %w", err)
	}

	var calcs []domain.Calculation
	if err := r.db.SelectContext(ctx, &calcs, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("calculationRepo.ListByUser: %w", err)
	}
	return calcs, total, nil
}

func (r *calculationRepo) Delete(ctx context.Context, userID, calcID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM calculations WHERE id = $1 AND user_id = $2", calcID, userID)
	if err != nil {
		return fmt.Errorf("calculationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *calculationRepo) CountByType(ctx context.Context, userID uuid.UUID) (map[domain.TaxType]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		"SELECT tax_type, COUNT(*) AS n FROM calculations WHERE user_id = $1 GROUP BY tax_type", userID)
	if err != nil {
		return nil, fmt.Errorf("calculationRepo.CountByType: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.TaxType]int)
	for rows.Next() {
		var taxType domain.TaxType
		var n int
		if err := rows.Scan(&taxType, &n); err != nil {
			return nil, fmt.Errorf("calculationRepo.CountByType scan: %w", err)
		}
		counts[taxType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("calculationRepo.CountByType rows: %w", err)
	}
	return counts, nil
}

func (r *calculationRepo) GlobalStats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{ByType: make(map[domain.TaxType]int)}

	if err := r.db.GetContext(ctx, &stats.TotalCalculations,
		"SELECT COUNT(*) FROM calculations"); err != nil {
		return nil, fmt.Errorf("calculationRepo.GlobalStats calculations: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.TotalUsers,
		"SELECT COUNT(*) FROM users"); err != nil {
		return nil, fmt.Errorf("calculationRepo.GlobalStats users: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx,
		"SELECT tax_type, COUNT(*) AS n FROM calculations GROUP BY tax_type")
	if err != nil {
		return nil, fmt.Errorf("calculationRepo.GlobalStats by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taxType domain.TaxType
		var n int
		if err := rows.Scan(&taxType, &n); err != nil {
			return nil, fmt.Errorf("calculationRepo.GlobalStats scan: %w", err)
		}
		stats.ByType[taxType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("calculationRepo.GlobalStats rows: %w", err)
	}
	return stats, nil
}
