package currencypair

import (
	"context"

	"tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

// Service provides business logic for currency pair operations.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a currency pair service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get()}
}

// Create registers a pair for a user; the same from/to combination may
// only exist once per user.
func (s *Service) Create(ctx context.Context, p *CurrencyPair) error {
	if p == nil || p.UserID == 0 {
		return errors.ErrInvalidInput
	}
	if p.From == "" || p.To == "" {
		return errors.NewValidationError("from", "both currencies are required", p)
	}

	exists, err := s.repo.Exists(ctx, p.UserID, p.From, p.To)
	if err != nil {
		return errors.Wrap(err, "check currency pair")
	}
	if exists {
		return errors.ErrAlreadyExists
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return errors.Wrap(err, "create currency pair")
	}
	return nil
}

// GetByID fetches a pair by id.
func (s *Service) GetByID(ctx context.Context, id int64) (*CurrencyPair, error) {
	if id == 0 {
		return nil, errors.ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get currency pair")
	}
	return p, nil
}

// GetByUser returns all pairs for a user.
func (s *Service) GetByUser(ctx context.Context, userID int64) ([]*CurrencyPair, error) {
	if userID == 0 {
		return nil, errors.ErrInvalidInput
	}
	pairs, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list currency pairs")
	}
	return pairs, nil
}

// Delete removes a pair by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return errors.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete currency pair")
	}
	return nil
}
