package postgres

import (
	"context"
	"database/sql"

	"tradejournal/internal/domain/strategy"
	"tradejournal/pkg/errors"
)

// Compile-time check that we implement the interface
var _ strategy.Repository = (*StrategyRepository)(nil)

// StrategyRepository implements strategy.Repository using sqlx
type StrategyRepository struct {
	db DBTX
}

// NewStrategyRepository creates a new strategy repository
func NewStrategyRepository(db DBTX) *StrategyRepository {
	return &StrategyRepository{db: instrument("strategies", db)}
}

// strategyRow carries the comma-delimited market columns alongside the
// domain entity
type strategyRow struct {
	strategy.Strategy
	RawMarketType      string `db:"market_type"`
	RawMarketCondition string `db:"market_condition"`
}

const strategyColumns = `
	id, user_id, name, type, comment, description, market_type,
	market_condition, risk_level, time_frame, win_rate, total_trades,
	star_rate, created_at, last_modified_date`

func (row *strategyRow) toEntity() *strategy.Strategy {
	s := row.Strategy
	s.MarketType = splitList(row.RawMarketType)
	s.MarketCondition = splitList(row.RawMarketCondition)
	return &s
}

// Create inserts a new strategy and fills in the generated ID
func (r *StrategyRepository) Create(ctx context.Context, s *strategy.Strategy) error {
	query := `
		INSERT INTO strategies (
			user_id, name, type, comment, description, market_type,
			market_condition, risk_level, time_frame, win_rate, total_trades,
			star_rate, created_at, last_modified_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		s.UserID, s.Name, s.Type, s.Comment, s.Description, joinList(s.MarketType),
		joinList(s.MarketCondition), s.RiskLevel, s.TimeFrame, s.WinRate, s.TotalTrades,
		s.StarRate, s.CreatedAt, s.LastModifiedDate,
	).Scan(&s.ID)
}

// GetByID retrieves a strategy by ID
func (r *StrategyRepository) GetByID(ctx context.Context, id int64) (*strategy.Strategy, error) {
	var row strategyRow
	query := `SELECT ` + strategyColumns + ` FROM strategies WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "strategy not found")
	}
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// GetByUser retrieves all strategies for a user, newest first
func (r *StrategyRepository) GetByUser(ctx context.Context, userID int64) ([]*strategy.Strategy, error) {
	var rows []strategyRow
	query := `SELECT ` + strategyColumns + ` FROM strategies
		WHERE user_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	strategies := make([]*strategy.Strategy, 0, len(rows))
	for i := range rows {
		strategies = append(strategies, rows[i].toEntity())
	}
	return strategies, nil
}

// FindByNameAndType resolves the duplicate-name check on create
func (r *StrategyRepository) FindByNameAndType(ctx context.Context, userID int64, name string, typ strategy.Type) (*strategy.Strategy, error) {
	var row strategyRow
	query := `SELECT ` + strategyColumns + ` FROM strategies
		WHERE user_id = $1 AND name = $2 AND type = $3`

	err := r.db.GetContext(ctx, &row, query, userID, name, typ)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "strategy not found")
	}
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// CountByUser counts the user's strategies
func (r *StrategyRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM strategies WHERE user_id = $1`, userID)
	return count, err
}

// Update persists all mutable strategy fields
func (r *StrategyRepository) Update(ctx context.Context, s *strategy.Strategy) error {
	query := `
		UPDATE strategies SET
			name = $1, type = $2, comment = $3, description = $4,
			market_type = $5, market_condition = $6, risk_level = $7,
			time_frame = $8, win_rate = $9, total_trades = $10, star_rate = $11,
			last_modified_date = NOW()
		WHERE id = $12`

	result, err := r.db.ExecContext(ctx, query,
		s.Name, s.Type, s.Comment, s.Description,
		joinList(s.MarketType), joinList(s.MarketCondition), s.RiskLevel,
		s.TimeFrame, s.WinRate, s.TotalTrades, s.StarRate, s.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result, "strategy not found")
}

// Delete removes a strategy. Trades referencing it keep their rows with
// strategy_id set NULL by the schema's ON DELETE SET NULL.
func (r *StrategyRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM strategies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "strategy not found")
}
