package strategy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain/strategy"
	"tradejournal/pkg/errors"
)

// mockRepository is a mock implementation of strategy.Repository
type mockRepository struct {
	createFunc func(ctx context.Context, s *strategy.Strategy) error
	getFunc    func(ctx context.Context, id int64) (*strategy.Strategy, error)
	findFunc   func(ctx context.Context, userID int64, name string, typ strategy.Type) (*strategy.Strategy, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockRepository) Create(ctx context.Context, s *strategy.Strategy) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*strategy.Strategy, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.ErrNotFound
}

func (m *mockRepository) GetByUser(ctx context.Context, userID int64) ([]*strategy.Strategy, error) {
	return nil, nil
}

func (m *mockRepository) FindByNameAndType(ctx context.Context, userID int64, name string, typ strategy.Type) (*strategy.Strategy, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, userID, name, typ)
	}
	return nil, errors.ErrNotFound
}

func (m *mockRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	return 0, nil
}

func (m *mockRepository) Update(ctx context.Context, s *strategy.Strategy) error {
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func validStrategy() *strategy.Strategy {
	return &strategy.Strategy{
		UserID:    1,
		Name:      "London Breakout",
		Type:      strategy.TypeDayTrading,
		RiskLevel: strategy.RiskMedium,
		TimeFrame: "1 Hour",
	}
}

func TestCreateStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("sets timestamps and persists", func(t *testing.T) {
		var captured *strategy.Strategy
		repo := &mockRepository{
			createFunc: func(ctx context.Context, s *strategy.Strategy) error {
				captured = s
				return nil
			},
		}

		service := strategy.NewService(repo)
		err := service.Create(ctx, validStrategy())

		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.False(t, captured.CreatedAt.IsZero())
		assert.Equal(t, captured.CreatedAt, captured.LastModifiedDate)
	})

	t.Run("rejects duplicate name and type", func(t *testing.T) {
		repo := &mockRepository{
			findFunc: func(ctx context.Context, userID int64, name string, typ strategy.Type) (*strategy.Strategy, error) {
				return &strategy.Strategy{ID: 5, Name: name, Type: typ}, nil
			},
		}

		service := strategy.NewService(repo)
		err := service.Create(ctx, validStrategy())

		assert.ErrorIs(t, err, errors.ErrAlreadyExists)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		service := strategy.NewService(&mockRepository{})

		st := validStrategy()
		st.Type = "HODL"
		err := service.Create(ctx, st)

		var vErr *errors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "type", vErr.Field)
	})
}

func TestDeleteStrategy_Ownership(t *testing.T) {
	ctx := context.Background()

	deleted := false
	repo := &mockRepository{
		getFunc: func(ctx context.Context, id int64) (*strategy.Strategy, error) {
			return &strategy.Strategy{ID: id, UserID: 1}, nil
		},
		deleteFunc: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	service := strategy.NewService(repo)

	err := service.Delete(ctx, 2, 10)
	assert.ErrorIs(t, err, errors.ErrStrategyNotOwned)
	assert.False(t, deleted)

	err = service.Delete(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, deleted)
}
