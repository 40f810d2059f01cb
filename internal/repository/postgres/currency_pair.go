package postgres

import (
	"context"
	"database/sql"

	"tradejournal/internal/domain/currencypair"
	"tradejournal/pkg/errors"
)

// Compile-time check that we implement the interface
var _ currencypair.Repository = (*CurrencyPairRepository)(nil)

// CurrencyPairRepository implements currencypair.Repository using sqlx
type CurrencyPairRepository struct {
	db DBTX
}

// NewCurrencyPairRepository creates a new currency pair repository
func NewCurrencyPairRepository(db DBTX) *CurrencyPairRepository {
	return &CurrencyPairRepository{db: instrument("currency_pairs", db)}
}

// Create inserts a new currency pair and fills in the generated ID
func (r *CurrencyPairRepository) Create(ctx context.Context, p *currencypair.CurrencyPair) error {
	query := `
		INSERT INTO currency_pairs (user_id, from_currency, to_currency)
		VALUES ($1, $2, $3) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, p.UserID, p.From, p.To).Scan(&p.ID)
	if isUniqueViolation(err) {
		return errors.Wrap(errors.ErrAlreadyExists, "currency pair already exists")
	}
	return err
}

// GetByID retrieves a currency pair by ID
func (r *CurrencyPairRepository) GetByID(ctx context.Context, id int64) (*currencypair.CurrencyPair, error) {
	var p currencypair.CurrencyPair
	query := `SELECT id, user_id, from_currency, to_currency FROM currency_pairs WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "currency pair not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByUser retrieves all currency pairs for a user
func (r *CurrencyPairRepository) GetByUser(ctx context.Context, userID int64) ([]*currencypair.CurrencyPair, error) {
	var pairs []*currencypair.CurrencyPair
	query := `SELECT id, user_id, from_currency, to_currency FROM currency_pairs
		WHERE user_id = $1 ORDER BY from_currency, to_currency`

	if err := r.db.SelectContext(ctx, &pairs, query, userID); err != nil {
		return nil, err
	}
	return pairs, nil
}

// Exists reports whether the user already recorded this pair
func (r *CurrencyPairRepository) Exists(ctx context.Context, userID int64, from, to string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM currency_pairs WHERE user_id = $1 AND from_currency = $2 AND to_currency = $3
	)`
	err := r.db.GetContext(ctx, &exists, query, userID, from, to)
	return exists, err
}

// CountByUser counts the user's currency pairs
func (r *CurrencyPairRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM currency_pairs WHERE user_id = $1`, userID)
	return count, err
}

// Delete removes a currency pair
func (r *CurrencyPairRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM currency_pairs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "currency pair not found")
}
