package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	Email                string     `db:"email" json:"email"`
	PasswordHash         string     `db:"password_hash" json:"-"`
	FullName             string     `db:"full_name" json:"full_name"`
	Role                 UserRole   `db:"role" json:"role"`
	IsActive             bool       `db:"is_active" json:"is_active"`
	EmailVerified        bool       `db:"email_verified" json:"email_verified"`
	EmailVerifiedAt      *time.Time `db:"email_verified_at" json:"email_verified_at"`
	PasswordResetTokenID *string    `db:"password_reset_token_id" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// Calculation is a saved {type, inputs, results} triple. Results are always
// recomputed from Inputs at save time; the stored copy exists for display
// and export, never as a source of truth for new computations.
type Calculation struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	TaxType   TaxType         `db:"tax_type" json:"tax_type"`
	Label     string          `db:"label" json:"label"`
	Inputs    json.RawMessage `db:"inputs" json:"inputs"`
	Results   json.RawMessage `db:"results" json:"results"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Stats aggregates saved-calculation counts for a user or the whole system.
type Stats struct {
	TotalCalculations int64           `db:"total_calculations" json:"total_calculations"`
	ByType            map[TaxType]int `json:"by_type"`
	TotalUsers        int64           `db:"total_users" json:"total_users,omitempty"`
}
