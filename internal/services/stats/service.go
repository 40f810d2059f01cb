// Package stats is the read-side facade over the aggregation engine: it
// fetches a user's trade history once per request, runs the pure
// builders over it, and shapes the numbers into API payloads.
package stats

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/domain/currencypair"
	"tradejournal/internal/domain/strategy"
	"tradejournal/internal/domain/trade"
	"tradejournal/internal/domain/user"
	"tradejournal/internal/stats"
	"tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

// Period selects the equity curve resolution
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
)

// Service assembles statistics reports from repositories and the
// aggregation engine. It holds no state between requests.
type Service struct {
	tradeRepo    trade.Repository
	userRepo     user.Repository
	strategyRepo strategy.Repository
	pairRepo     currencypair.Repository
	log          *logger.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewService creates a new statistics service
func NewService(
	tradeRepo trade.Repository,
	userRepo user.Repository,
	strategyRepo strategy.Repository,
	pairRepo currencypair.Repository,
	log *logger.Logger,
) *Service {
	return &Service{
		tradeRepo:    tradeRepo,
		userRepo:     userRepo,
		strategyRepo: strategyRepo,
		pairRepo:     pairRepo,
		log:          log.With("service", "stats"),
		now:          time.Now,
	}
}

// UserStats builds the full statistics report for a user. The trade
// history is fetched exactly once and every builder runs over that one
// snapshot.
func (s *Service) UserStats(ctx context.Context, userID int64) (*UserStatsReport, error) {
	usr, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	trades, err := s.tradeRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trades")
	}

	strategyCount, err := s.strategyRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count strategies")
	}

	pairCount, err := s.pairRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count currency pairs")
	}

	now := s.now().UTC()
	general := stats.ComputeGeneralStats(trades)

	report := &UserStatsReport{
		TotalTrades:     general.TotalTrades,
		WinTrades:       general.WinTrades,
		LossTrades:      general.LossTrades,
		BreakevenTrades: general.BreakevenTrades,
		WinRate:         money(general.WinRate),
		TotalProfit:     money(general.TotalProfit),
		CurrentBalance:  money(usr.InitialCapital + general.TotalProfit),

		RiskToReward:      stats.ComputeRiskToReward(trades),
		DrawDown:          moneyPtr(stats.ComputeDrawDown(trades, usr.InitialCapital)),
		AverageProfitLoss: money(stats.ComputeAverageProfitLoss(trades)),
		AverageHoldingMin: money(stats.ComputeAverageHoldingPeriod(trades)),
		HighestWinProfit:  money(stats.ComputeHighestWinProfit(trades)),
		HighestLossProfit: money(stats.ComputeHighestLossProfit(trades)),
		NetDailyPL:        money(stats.ComputeNetDailyPL(trades, now)),

		TotalStrategies:    strategyCount,
		TotalCurrencyPairs: pairCount,

		MonthlyProfitLoss:    monthlyProfitLossViews(stats.ComputeMonthlyProfitLoss(trades)),
		MonthlyWinLossRatio:  monthlyWinLossViews(stats.ComputeMonthlyWinLossRatio(trades)),
		MonthlyNetProfitLoss: monthlyNetViews(stats.ComputeMonthlyNetProfitLoss(trades)),
		MonthlyTradeDuration: monthlyDurationViews(stats.ComputeMonthlyTradeDuration(trades)),

		Alerts: stats.ComputeBehavioralAlerts(trades, now),
	}

	if best, ok := stats.ComputeMostProfitableStrategy(trades); ok {
		report.MostProfitableStrategy = &StrategyProfitView{
			StrategyID:  best.StrategyID,
			TotalProfit: money(best.TotalProfit),
		}
	}

	s.log.Debugw("Built user stats report", "user_id", userID, "trades", len(trades))
	return report, nil
}

// StrategyStats builds the per-strategy report over the user's trades
// scoped to one strategy.
func (s *Service) StrategyStats(ctx context.Context, userID, strategyID int64) (*StrategyStatsReport, error) {
	st, err := s.strategyRepo.GetByID(ctx, strategyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get strategy")
	}
	if st.UserID != userID {
		return nil, errors.ErrStrategyNotOwned
	}

	usr, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	trades, err := s.tradeRepo.GetByUserAndStrategy(ctx, userID, strategyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trades")
	}

	return &StrategyStatsReport{
		StrategyID:        strategyID,
		TotalTrades:       len(trades),
		RiskToReward:      stats.ComputeRiskToReward(trades),
		DrawDown:          moneyPtr(stats.ComputeDrawDown(trades, usr.InitialCapital)),
		WinLossPercentage: money(stats.ComputeWinLossPercentage(trades)),
		AverageProfitLoss: money(stats.ComputeAverageProfitLoss(trades)),
	}, nil
}

// EquityCurve builds the bucketed running-balance curve for the given
// period selector.
func (s *Service) EquityCurve(ctx context.Context, userID int64, period Period) ([]EquityPointView, error) {
	if period != PeriodDaily && period != PeriodMonthly {
		return nil, errors.ErrInvalidPeriod
	}

	usr, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	trades, err := s.tradeRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trades")
	}

	var curve []stats.BucketedEquity
	if period == PeriodDaily {
		curve = stats.ComputeDailyEquityCurve(trades, usr.InitialCapital, s.now().UTC())
	} else {
		curve = stats.ComputeMonthlyEquityCurve(trades, usr.InitialCapital)
	}

	out := make([]EquityPointView, 0, len(curve))
	for _, p := range curve {
		out = append(out, EquityPointView{Date: p.Date, Equity: money(p.Equity)})
	}
	return out, nil
}

// money renders a float as a fixed two-decimal string
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func moneyPtr(v *float64) *string {
	if v == nil {
		return nil
	}
	s := money(*v)
	return &s
}
