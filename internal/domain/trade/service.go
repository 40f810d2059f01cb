package trade

import (
	"context"
	"time"

	"tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

// Service provides business logic for trade operations.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a trade service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get()}
}

func validate(t *Trade) error {
	if t == nil {
		return errors.ErrInvalidInput
	}
	if t.UserID == 0 {
		return errors.NewValidationError("userId", "user id is required", t.UserID)
	}
	if t.CurrencyPairID == 0 {
		return errors.NewValidationError("currencyPairId", "currency pair is required", t.CurrencyPairID)
	}
	if t.OpenDate.IsZero() || t.CloseDate.IsZero() {
		return errors.NewValidationError("openDate", "open and close dates are required", nil)
	}
	if t.CloseDate.Before(t.OpenDate) {
		return errors.ErrInvalidDateRange
	}
	if !t.Status.Valid() {
		return errors.ErrInvalidTradeStatus
	}
	if !t.Type.Valid() {
		return errors.ErrInvalidTradeType
	}
	if t.EntryPrice <= 0 {
		return errors.NewValidationError("entryPrice", "must be positive", t.EntryPrice)
	}
	if t.ExitPrice <= 0 {
		return errors.NewValidationError("exitPrice", "must be positive", t.ExitPrice)
	}
	if t.PositionSize <= 0 {
		return errors.NewValidationError("positionSize", "must be positive", t.PositionSize)
	}
	return nil
}

// Create records a new trade, deriving its profit from the prices.
func (s *Service) Create(ctx context.Context, t *Trade) error {
	if err := validate(t); err != nil {
		return err
	}

	t.Profit = ComputeProfit(t.EntryPrice, t.ExitPrice, t.PositionSize, t.Status, t.Type)

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.repo.Create(ctx, t); err != nil {
		return errors.Wrap(err, "create trade")
	}

	s.log.Debugw("Trade recorded",
		"user_id", t.UserID,
		"trade_id", t.ID,
		"status", t.Status,
	)
	return nil
}

// GetByID fetches a single trade.
func (s *Service) GetByID(ctx context.Context, id int64) (*Trade, error) {
	if id == 0 {
		return nil, errors.ErrInvalidInput
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get trade")
	}
	return t, nil
}

// GetByUser returns all trades for a user ordered by open date.
func (s *Service) GetByUser(ctx context.Context, userID int64) ([]*Trade, error) {
	if userID == 0 {
		return nil, errors.ErrInvalidInput
	}
	trades, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get trades by user")
	}
	return trades, nil
}

// GetByStrategy returns all trades recorded against a strategy.
func (s *Service) GetByStrategy(ctx context.Context, strategyID int64) ([]*Trade, error) {
	if strategyID == 0 {
		return nil, errors.ErrInvalidInput
	}
	trades, err := s.repo.GetByStrategy(ctx, strategyID)
	if err != nil {
		return nil, errors.Wrap(err, "get trades by strategy")
	}
	return trades, nil
}

// Update applies changes to an existing trade owned by userID and
// recomputes the stored profit.
func (s *Service) Update(ctx context.Context, userID int64, t *Trade) error {
	if t == nil || t.ID == 0 {
		return errors.ErrInvalidInput
	}

	existing, err := s.repo.GetByID(ctx, t.ID)
	if err != nil {
		return errors.Wrap(err, "update trade")
	}
	if existing.UserID != userID {
		return errors.ErrTradeNotOwned
	}

	t.UserID = existing.UserID
	t.CreatedAt = existing.CreatedAt
	if err := validate(t); err != nil {
		return err
	}

	t.Profit = ComputeProfit(t.EntryPrice, t.ExitPrice, t.PositionSize, t.Status, t.Type)
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return errors.Wrap(err, "update trade")
	}
	return nil
}

// Delete removes a trade after checking ownership.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if id == 0 {
		return errors.ErrInvalidInput
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "delete trade")
	}
	if existing.UserID != userID {
		return errors.ErrTradeNotOwned
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete trade")
	}
	return nil
}
