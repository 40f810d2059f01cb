package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradejournal/internal/domain/currencypair"
	"tradejournal/internal/domain/strategy"
	"tradejournal/internal/domain/trade"
	"tradejournal/internal/domain/user"
	pkgerrors "tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) Create(ctx context.Context, t *trade.Trade) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTradeRepository) GetByID(ctx context.Context, id int64) (*trade.Trade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Trade), args.Error(1)
}

func (m *MockTradeRepository) GetByUser(ctx context.Context, userID int64) ([]*trade.Trade, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Trade), args.Error(1)
}

func (m *MockTradeRepository) GetByUserAndStrategy(ctx context.Context, userID, strategyID int64) ([]*trade.Trade, error) {
	args := m.Called(ctx, userID, strategyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Trade), args.Error(1)
}

func (m *MockTradeRepository) GetByUserAndDateRange(ctx context.Context, userID int64, from, to time.Time) ([]*trade.Trade, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Trade), args.Error(1)
}

func (m *MockTradeRepository) GetByStrategy(ctx context.Context, strategyID int64) ([]*trade.Trade, error) {
	args := m.Called(ctx, strategyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Trade), args.Error(1)
}

func (m *MockTradeRepository) Update(ctx context.Context, t *trade.Trade) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTradeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStrategyRepository struct {
	mock.Mock
}

func (m *MockStrategyRepository) Create(ctx context.Context, s *strategy.Strategy) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStrategyRepository) GetByID(ctx context.Context, id int64) (*strategy.Strategy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*strategy.Strategy), args.Error(1)
}

func (m *MockStrategyRepository) GetByUser(ctx context.Context, userID int64) ([]*strategy.Strategy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*strategy.Strategy), args.Error(1)
}

func (m *MockStrategyRepository) FindByNameAndType(ctx context.Context, userID int64, name string, typ strategy.Type) (*strategy.Strategy, error) {
	args := m.Called(ctx, userID, name, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*strategy.Strategy), args.Error(1)
}

func (m *MockStrategyRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStrategyRepository) Update(ctx context.Context, s *strategy.Strategy) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStrategyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPairRepository struct {
	mock.Mock
}

func (m *MockPairRepository) Create(ctx context.Context, p *currencypair.CurrencyPair) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPairRepository) GetByID(ctx context.Context, id int64) (*currencypair.CurrencyPair, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*currencypair.CurrencyPair), args.Error(1)
}

func (m *MockPairRepository) GetByUser(ctx context.Context, userID int64) ([]*currencypair.CurrencyPair, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*currencypair.CurrencyPair), args.Error(1)
}

func (m *MockPairRepository) Exists(ctx context.Context, userID int64, from, to string) (bool, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockPairRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPairRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testLogger() *logger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return &logger.Logger{SugaredLogger: zapLogger.Sugar()}
}

func newTestService(tr *MockTradeRepository, ur *MockUserRepository, sr *MockStrategyRepository, pr *MockPairRepository) *Service {
	svc := NewService(tr, ur, sr, pr, testLogger())
	svc.now = func() time.Time { return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func strategyID(id int64) *int64 { return &id }

func testTrade(status trade.Status, profit float64, opened time.Time, stratID *int64) *trade.Trade {
	return &trade.Trade{
		UserID:     1,
		StrategyID: stratID,
		Status:     status,
		Profit:     profit,
		OpenDate:   opened,
		CloseDate:  opened.Add(time.Hour),
	}
}

func TestService_UserStats(t *testing.T) {
	tradeRepo := new(MockTradeRepository)
	userRepo := new(MockUserRepository)
	strategyRepo := new(MockStrategyRepository)
	pairRepo := new(MockPairRepository)
	svc := newTestService(tradeRepo, userRepo, strategyRepo, pairRepo)

	trades := []*trade.Trade{
		testTrade(trade.StatusWin, 500, time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC), strategyID(3)),
		testTrade(trade.StatusLoss, -200, time.Date(2026, 7, 10, 10, 0, 0, 0, time.UTC), strategyID(3)),
		testTrade(trade.StatusBreakeven, 0, time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC), nil),
	}

	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&user.User{ID: 1, InitialCapital: 1000}, nil)
	tradeRepo.On("GetByUser", mock.Anything, int64(1)).Return(trades, nil)
	strategyRepo.On("CountByUser", mock.Anything, int64(1)).Return(2, nil)
	pairRepo.On("CountByUser", mock.Anything, int64(1)).Return(4, nil)

	report, err := svc.UserStats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalTrades)
	assert.Equal(t, 1, report.WinTrades)
	assert.Equal(t, 1, report.LossTrades)
	assert.Equal(t, 1, report.BreakevenTrades)
	assert.Equal(t, "33.33", report.WinRate)
	assert.Equal(t, "300.00", report.TotalProfit)
	assert.Equal(t, "1300.00", report.CurrentBalance)
	assert.Equal(t, "0.40:1", report.RiskToReward)
	require.NotNil(t, report.DrawDown)
	assert.Equal(t, "40.00", *report.DrawDown)
	assert.Equal(t, 2, report.TotalStrategies)
	assert.Equal(t, 4, report.TotalCurrencyPairs)

	require.Len(t, report.MonthlyProfitLoss, 2)
	assert.Equal(t, "2026-07", report.MonthlyProfitLoss[0].Month)
	assert.Equal(t, "500.00", report.MonthlyProfitLoss[0].Profit)
	assert.Equal(t, "200.00", report.MonthlyProfitLoss[0].Loss)

	require.NotNil(t, report.MostProfitableStrategy)
	assert.Equal(t, int64(3), report.MostProfitableStrategy.StrategyID)
	assert.Equal(t, "300.00", report.MostProfitableStrategy.TotalProfit)

	// the breakeven trade in August has no strategy
	assert.Equal(t, 1, report.Alerts.FOMOTrades)

	// single trade fetch serving the whole report
	tradeRepo.AssertNumberOfCalls(t, "GetByUser", 1)
}

func TestService_UserStats_UserNotFound(t *testing.T) {
	tradeRepo := new(MockTradeRepository)
	userRepo := new(MockUserRepository)
	strategyRepo := new(MockStrategyRepository)
	pairRepo := new(MockPairRepository)
	svc := newTestService(tradeRepo, userRepo, strategyRepo, pairRepo)

	userRepo.On("GetByID", mock.Anything, int64(9)).Return(nil, pkgerrors.ErrNotFound)

	_, err := svc.UserStats(context.Background(), 9)
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestService_StrategyStats(t *testing.T) {
	tradeRepo := new(MockTradeRepository)
	userRepo := new(MockUserRepository)
	strategyRepo := new(MockStrategyRepository)
	pairRepo := new(MockPairRepository)
	svc := newTestService(tradeRepo, userRepo, strategyRepo, pairRepo)

	strategyRepo.On("GetByID", mock.Anything, int64(3)).Return(&strategy.Strategy{ID: 3, UserID: 1}, nil)
	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&user.User{ID: 1, InitialCapital: 1000}, nil)

	trades := []*trade.Trade{
		testTrade(trade.StatusWin, 100, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), strategyID(3)),
		testTrade(trade.StatusLoss, -50, time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC), strategyID(3)),
	}
	tradeRepo.On("GetByUserAndStrategy", mock.Anything, int64(1), int64(3)).Return(trades, nil)

	report, err := svc.StrategyStats(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalTrades)
	assert.Equal(t, "0.50:1", report.RiskToReward)
	assert.Equal(t, "50.00", report.WinLossPercentage)
	assert.Equal(t, "25.00", report.AverageProfitLoss)
	require.NotNil(t, report.DrawDown)
	assert.Equal(t, "50.00", *report.DrawDown)
}

func TestService_StrategyStats_NotOwned(t *testing.T) {
	tradeRepo := new(MockTradeRepository)
	userRepo := new(MockUserRepository)
	strategyRepo := new(MockStrategyRepository)
	pairRepo := new(MockPairRepository)
	svc := newTestService(tradeRepo, userRepo, strategyRepo, pairRepo)

	strategyRepo.On("GetByID", mock.Anything, int64(3)).Return(&strategy.Strategy{ID: 3, UserID: 2}, nil)

	_, err := svc.StrategyStats(context.Background(), 1, 3)
	assert.ErrorIs(t, err, pkgerrors.ErrStrategyNotOwned)
}

func TestService_EquityCurve(t *testing.T) {
	tradeRepo := new(MockTradeRepository)
	userRepo := new(MockUserRepository)
	strategyRepo := new(MockStrategyRepository)
	pairRepo := new(MockPairRepository)
	svc := newTestService(tradeRepo, userRepo, strategyRepo, pairRepo)

	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&user.User{ID: 1, InitialCapital: 1000}, nil)
	trades := []*trade.Trade{
		testTrade(trade.StatusWin, 100, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), strategyID(3)),
		testTrade(trade.StatusWin, 50, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), strategyID(3)),
	}
	tradeRepo.On("GetByUser", mock.Anything, int64(1)).Return(trades, nil)

	t.Run("monthly", func(t *testing.T) {
		curve, err := svc.EquityCurve(context.Background(), 1, PeriodMonthly)
		require.NoError(t, err)
		require.Len(t, curve, 2)
		assert.Equal(t, "2026-07", curve[0].Date)
		assert.Equal(t, "1100.00", curve[0].Equity)
		assert.Equal(t, "2026-08", curve[1].Date)
		assert.Equal(t, "1150.00", curve[1].Equity)
	})

	t.Run("daily limited to current month", func(t *testing.T) {
		curve, err := svc.EquityCurve(context.Background(), 1, PeriodDaily)
		require.NoError(t, err)
		require.Len(t, curve, 1)
		assert.Equal(t, "2026-08-03", curve[0].Date)
		assert.Equal(t, "1150.00", curve[0].Equity)
	})

	t.Run("unknown period", func(t *testing.T) {
		_, err := svc.EquityCurve(context.Background(), 1, Period("weekly"))
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidPeriod)
	})
}
