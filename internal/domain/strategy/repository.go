package strategy

import (
	"context"
)

// Repository defines the interface for strategy data access
// Implementation lives in internal/repository/postgres/strategy.go
type Repository interface {
	Create(ctx context.Context, s *Strategy) error
	GetByID(ctx context.Context, id int64) (*Strategy, error)
	GetByUser(ctx context.Context, userID int64) ([]*Strategy, error)

	// FindByNameAndType resolves the duplicate-name check on create.
	// Returns errors.ErrNotFound when no such strategy exists.
	FindByNameAndType(ctx context.Context, userID int64, name string, typ Type) (*Strategy, error)

	CountByUser(ctx context.Context, userID int64) (int, error)
	Update(ctx context.Context, s *Strategy) error
	Delete(ctx context.Context, id int64) error
}
