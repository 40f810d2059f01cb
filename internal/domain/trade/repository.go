package trade

import (
	"context"
	"time"
)

// Repository defines the interface for trade data access
// Implementation lives in internal/repository/postgres/trade.go
type Repository interface {
	Create(ctx context.Context, t *Trade) error
	GetByID(ctx context.Context, id int64) (*Trade, error)

	// GetByUser returns all trades for a user ordered by open date ascending
	GetByUser(ctx context.Context, userID int64) ([]*Trade, error)

	// GetByUserAndStrategy returns the user's trades scoped to one strategy,
	// ordered by open date ascending
	GetByUserAndStrategy(ctx context.Context, userID, strategyID int64) ([]*Trade, error)

	// GetByUserAndDateRange returns the user's trades opened within [from, to]
	GetByUserAndDateRange(ctx context.Context, userID int64, from, to time.Time) ([]*Trade, error)

	// GetByStrategy returns all trades recorded against a strategy
	GetByStrategy(ctx context.Context, strategyID int64) ([]*Trade, error)

	Update(ctx context.Context, t *Trade) error
	Delete(ctx context.Context, id int64) error
}
