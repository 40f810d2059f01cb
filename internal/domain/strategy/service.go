package strategy

import (
	"context"
	"time"

	"tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

// Service provides business logic for strategy operations.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a strategy service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get()}
}

// Create registers a new strategy. A user may not have two strategies
// with the same name and type.
func (s *Service) Create(ctx context.Context, st *Strategy) error {
	if st == nil || st.UserID == 0 {
		return errors.ErrInvalidInput
	}
	if st.Name == "" {
		return errors.NewValidationError("name", "name is required", st.Name)
	}
	if !st.Type.Valid() {
		return errors.NewValidationError("type", "unknown strategy type", st.Type)
	}
	if !st.RiskLevel.Valid() {
		return errors.NewValidationError("riskLevel", "unknown risk level", st.RiskLevel)
	}

	existing, err := s.repo.FindByNameAndType(ctx, st.UserID, st.Name, st.Type)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return errors.Wrap(err, "check strategy name")
	}
	if existing != nil {
		return errors.ErrAlreadyExists
	}

	now := time.Now().UTC()
	st.CreatedAt = now
	st.LastModifiedDate = now

	if err := s.repo.Create(ctx, st); err != nil {
		return errors.Wrap(err, "create strategy")
	}

	s.log.Debugw("Strategy created", "user_id", st.UserID, "strategy_id", st.ID)
	return nil
}

// GetByID fetches a strategy by id.
func (s *Service) GetByID(ctx context.Context, id int64) (*Strategy, error) {
	if id == 0 {
		return nil, errors.ErrInvalidInput
	}
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get strategy")
	}
	return st, nil
}

// GetByUser returns all strategies owned by a user.
func (s *Service) GetByUser(ctx context.Context, userID int64) ([]*Strategy, error) {
	if userID == 0 {
		return nil, errors.ErrInvalidInput
	}
	strategies, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list strategies")
	}
	return strategies, nil
}

// Update persists strategy changes after an ownership check.
func (s *Service) Update(ctx context.Context, userID int64, st *Strategy) error {
	if st == nil || st.ID == 0 {
		return errors.ErrInvalidInput
	}

	existing, err := s.repo.GetByID(ctx, st.ID)
	if err != nil {
		return errors.Wrap(err, "update strategy")
	}
	if existing.UserID != userID {
		return errors.ErrStrategyNotOwned
	}

	st.UserID = existing.UserID
	st.CreatedAt = existing.CreatedAt
	st.LastModifiedDate = time.Now().UTC()

	if err := s.repo.Update(ctx, st); err != nil {
		return errors.Wrap(err, "update strategy")
	}
	return nil
}

// Delete removes a strategy after an ownership check. Trades that
// reference it keep their history with the strategy link cleared.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if id == 0 {
		return errors.ErrInvalidInput
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "delete strategy")
	}
	if existing.UserID != userID {
		return errors.ErrStrategyNotOwned
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete strategy")
	}
	return nil
}
