package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrInsufficientCredits indicates the user's balance cannot cover the
// requested deduction.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrAccountNotFound indicates no credit account exists for the user.
var ErrAccountNotFound = errors.New("credit account not found")

// CreditsRepository handles database operations for user credit balances.
type CreditsRepository struct {
	db *sqlx.DB
}

// NewCreditsRepository creates a new credits repository.
func NewCreditsRepository(db *sqlx.DB) *CreditsRepository {
	return &CreditsRepository{db: db}
}

// EnsureAccount creates a credit account with the given starting balance if
// one does not already exist. Existing balances are never touched.
func (r *CreditsRepository) EnsureAccount(ctx context.Context, userID string, initialCredits int) error {
	query := `
		INSERT INTO user_credits (user_id, credits)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID, initialCredits); err != nil {
		return fmt.Errorf("failed to ensure credit account: %w", err)
	}

	return nil
}

// Balance returns the user's current credit balance.
func (r *CreditsRepository) Balance(ctx context.Context, userID string) (int, error) {
	var credits int
	query := `SELECT credits FROM user_credits WHERE user_id = $1`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(&credits)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, userID)
		}
		return 0, fmt.Errorf("failed to get credit balance: %w", err)
	}

	return credits, nil
}

// Deduct atomically subtracts amount from the user's balance. The guard in
// the WHERE clause makes concurrent deductions safe; a balance never goes
// negative.
func (r *CreditsRepository) Deduct(ctx context.Context, userID string, amount int) (int, error) {
	query := `
		UPDATE user_credits
		SET credits = credits - $2, updated_at = NOW()
		WHERE user_id = $1 AND credits >= $2
		RETURNING credits
	`

	var remaining int
	err := r.db.QueryRowContext(ctx, query, userID, amount).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to deduct credits: %w", err)
	}

	// No row matched: either the account is missing or the balance is short.
	if _, balErr := r.Balance(ctx, userID); balErr != nil {
		return 0, balErr
	}
	return 0, fmt.Errorf("%w: user %s", ErrInsufficientCredits, userID)
}
