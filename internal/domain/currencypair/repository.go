package currencypair

import (
	"context"
)

// Repository defines the interface for currency pair data access
// Implementation lives in internal/repository/postgres/currency_pair.go
type Repository interface {
	Create(ctx context.Context, p *CurrencyPair) error
	GetByID(ctx context.Context, id int64) (*CurrencyPair, error)
	GetByUser(ctx context.Context, userID int64) ([]*CurrencyPair, error)
	Exists(ctx context.Context, userID int64, from, to string) (bool, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}
