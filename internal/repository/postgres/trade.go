package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"tradejournal/internal/domain/trade"
	"tradejournal/pkg/errors"
)

// Compile-time check that we implement the interface
var _ trade.Repository = (*TradeRepository)(nil)

// TradeRepository implements trade.Repository using sqlx
type TradeRepository struct {
	db DBTX
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db DBTX) *TradeRepository {
	return &TradeRepository{db: instrument("trades", db)}
}

// tradeRow carries the comma-delimited categories column alongside the
// domain entity
type tradeRow struct {
	trade.Trade
	RawCategories string `db:"categories"`
}

const tradeColumns = `
	id, user_id, strategy_id, currency_pair_id, open_date, close_date,
	status, type, entry_price, exit_price, position_size, profit,
	stop_loss_price, take_profit_price, transaction_cost,
	market_trend, reason, comment, categories, created_at, updated_at`

func (row *tradeRow) toEntity() *trade.Trade {
	t := row.Trade
	t.Categories = splitList(row.RawCategories)
	return &t
}

// Create inserts a new trade and fills in the generated ID
func (r *TradeRepository) Create(ctx context.Context, t *trade.Trade) error {
	query := `
		INSERT INTO trades (
			user_id, strategy_id, currency_pair_id, open_date, close_date,
			status, type, entry_price, exit_price, position_size, profit,
			stop_loss_price, take_profit_price, transaction_cost,
			market_trend, reason, comment, categories, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20
		) RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		t.UserID, t.StrategyID, t.CurrencyPairID, t.OpenDate, t.CloseDate,
		t.Status, t.Type, t.EntryPrice, t.ExitPrice, t.PositionSize, t.Profit,
		t.StopLossPrice, t.TakeProfitPrice, t.TransactionCost,
		t.MarketTrend, t.Reason, t.Comment, joinList(t.Categories), t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
}

// GetByID retrieves a trade by ID
func (r *TradeRepository) GetByID(ctx context.Context, id int64) (*trade.Trade, error) {
	var row tradeRow
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "trade not found")
	}
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// GetByUser retrieves all trades for a user ordered by open date ascending
func (r *TradeRepository) GetByUser(ctx context.Context, userID int64) ([]*trade.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE user_id = $1 ORDER BY open_date ASC`
	return r.selectTrades(ctx, query, userID)
}

// GetByUserAndStrategy retrieves the user's trades scoped to one strategy
func (r *TradeRepository) GetByUserAndStrategy(ctx context.Context, userID, strategyID int64) ([]*trade.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades
		WHERE user_id = $1 AND strategy_id = $2 ORDER BY open_date ASC`
	return r.selectTrades(ctx, query, userID, strategyID)
}

// GetByUserAndDateRange retrieves the user's trades opened within [from, to]
func (r *TradeRepository) GetByUserAndDateRange(ctx context.Context, userID int64, from, to time.Time) ([]*trade.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades
		WHERE user_id = $1 AND open_date >= $2 AND open_date <= $3 ORDER BY open_date ASC`
	return r.selectTrades(ctx, query, userID, from, to)
}

// GetByStrategy retrieves all trades recorded against a strategy
func (r *TradeRepository) GetByStrategy(ctx context.Context, strategyID int64) ([]*trade.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE strategy_id = $1 ORDER BY open_date ASC`
	return r.selectTrades(ctx, query, strategyID)
}

// Update persists all mutable trade fields
func (r *TradeRepository) Update(ctx context.Context, t *trade.Trade) error {
	query := `
		UPDATE trades SET
			strategy_id = $1, currency_pair_id = $2, open_date = $3, close_date = $4,
			status = $5, type = $6, entry_price = $7, exit_price = $8,
			position_size = $9, profit = $10, stop_loss_price = $11,
			take_profit_price = $12, transaction_cost = $13, market_trend = $14,
			reason = $15, comment = $16, categories = $17, updated_at = NOW()
		WHERE id = $18`

	result, err := r.db.ExecContext(ctx, query,
		t.StrategyID, t.CurrencyPairID, t.OpenDate, t.CloseDate,
		t.Status, t.Type, t.EntryPrice, t.ExitPrice,
		t.PositionSize, t.Profit, t.StopLossPrice,
		t.TakeProfitPrice, t.TransactionCost, t.MarketTrend,
		t.Reason, t.Comment, joinList(t.Categories), t.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result, "trade not found")
}

// Delete removes a trade
func (r *TradeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "trade not found")
}

func (r *TradeRepository) selectTrades(ctx context.Context, query string, args ...interface{}) ([]*trade.Trade, error) {
	var rows []tradeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	trades := make([]*trade.Trade, 0, len(rows))
	for i := range rows {
		trades = append(trades, rows[i].toEntity())
	}
	return trades, nil
}

// joinList stores a string slice as one comma-delimited column
func joinList(items []string) string {
	return strings.Join(items, ",")
}

// splitList is the inverse of joinList; an empty column yields an empty
// slice, never nil
func splitList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}
