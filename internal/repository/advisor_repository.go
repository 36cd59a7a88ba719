package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

// AdvisorRepository manages advisor staff accounts.
type AdvisorRepository struct {
	db *sqlx.DB
}

// NewAdvisorRepository constructs an AdvisorRepository.
func NewAdvisorRepository(db *sqlx.DB) *AdvisorRepository {
	return &AdvisorRepository{db: db}
}

// FindByEmail fetches an advisor by email.
func (r *AdvisorRepository) FindByEmail(ctx context.Context, email string) (*models.Advisor, error) {
	const query = `SELECT id, email, full_name, password_hash, role, active, last_login_at
FROM advisors WHERE email = $1`
	var advisor models.Advisor
	if err := r.db.GetContext(ctx, &advisor, query, email); err != nil {
		return nil, err
	}
	return &advisor, nil
}

// UpdateLastLogin stamps the advisor's last successful login.
func (r *AdvisorRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE advisors SET last_login_at = $1 WHERE id = $2`, ts, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
