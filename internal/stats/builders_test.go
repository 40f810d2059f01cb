package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain/trade"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func mkTrade(status trade.Status, profit float64, opened time.Time) *trade.Trade {
	return &trade.Trade{
		Status:    status,
		Profit:    profit,
		OpenDate:  opened,
		CloseDate: opened.Add(2 * time.Hour),
	}
}

func withStrategy(t *trade.Trade, id int64) *trade.Trade {
	t.StrategyID = &id
	return t
}

func TestComputeGeneralStats(t *testing.T) {
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 100, day(2026, 1, 5)),
		mkTrade(trade.StatusWin, 50, day(2026, 1, 6)),
		mkTrade(trade.StatusLoss, -30, day(2026, 1, 7)),
		mkTrade(trade.StatusBreakeven, 0, day(2026, 1, 8)),
	}

	gs := ComputeGeneralStats(trades)

	assert.Equal(t, 4, gs.TotalTrades)
	assert.Equal(t, 2, gs.WinTrades)
	assert.Equal(t, 1, gs.LossTrades)
	assert.Equal(t, 1, gs.BreakevenTrades)
	assert.Equal(t, gs.TotalTrades, gs.WinTrades+gs.LossTrades+gs.BreakevenTrades)
	assert.InDelta(t, 50.0, gs.WinRate, 1e-9)
	assert.InDelta(t, 120.0, gs.TotalProfit, 1e-9)
}

func TestComputeGeneralStats_Empty(t *testing.T) {
	gs := ComputeGeneralStats(nil)

	assert.Equal(t, 0, gs.TotalTrades)
	assert.Zero(t, gs.WinRate)
	assert.Zero(t, gs.TotalProfit)
}

func TestComputeGeneralStats_LossSignClamped(t *testing.T) {
	// A loss recorded with a positive profit value still subtracts.
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 100, day(2026, 1, 5)),
		mkTrade(trade.StatusLoss, 40, day(2026, 1, 6)),
	}

	gs := ComputeGeneralStats(trades)
	assert.InDelta(t, 60.0, gs.TotalProfit, 1e-9)
}

func TestComputeMonthlyProfitLoss(t *testing.T) {
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 100, day(2026, 1, 10)),
		mkTrade(trade.StatusLoss, -40, day(2026, 1, 20)),
		mkTrade(trade.StatusWin, 70, day(2026, 3, 2)),
		mkTrade(trade.StatusBreakeven, 0, day(2026, 3, 3)),
	}

	months := ComputeMonthlyProfitLoss(trades)

	require.Len(t, months, 2)
	assert.Equal(t, "2026-01", months[0].Month)
	assert.InDelta(t, 100.0, months[0].Profit, 1e-9)
	assert.InDelta(t, 40.0, months[0].Loss, 1e-9)
	assert.Equal(t, "2026-03", months[1].Month)
	assert.InDelta(t, 70.0, months[1].Profit, 1e-9)
	assert.Zero(t, months[1].Loss)
}

func TestComputeMonthlyWinLossRatio(t *testing.T) {
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 10, day(2026, 2, 1)),
		mkTrade(trade.StatusWin, 10, day(2026, 2, 2)),
		mkTrade(trade.StatusWin, 10, day(2026, 2, 3)),
		mkTrade(trade.StatusLoss, -5, day(2026, 2, 4)),
		// month with wins only: denominator floors to one
		mkTrade(trade.StatusWin, 10, day(2026, 4, 1)),
		mkTrade(trade.StatusWin, 10, day(2026, 4, 2)),
	}

	months := ComputeMonthlyWinLossRatio(trades)

	require.Len(t, months, 2)
	assert.Equal(t, "2026-02", months[0].Month)
	assert.Equal(t, 3, months[0].Wins)
	assert.Equal(t, 1, months[0].Losses)
	assert.InDelta(t, 3.0, months[0].Ratio, 1e-9)
	assert.Equal(t, "2026-04", months[1].Month)
	assert.InDelta(t, 2.0, months[1].Ratio, 1e-9)
}

func TestComputeWinLossPercentage(t *testing.T) {
	tests := []struct {
		name   string
		trades []*trade.Trade
		want   float64
	}{
		{name: "empty", want: 0},
		{
			name: "breakeven excluded from both sides",
			trades: []*trade.Trade{
				mkTrade(trade.StatusWin, 10, day(2026, 1, 1)),
				mkTrade(trade.StatusLoss, -10, day(2026, 1, 2)),
				mkTrade(trade.StatusLoss, -10, day(2026, 1, 3)),
				mkTrade(trade.StatusBreakeven, 0, day(2026, 1, 4)),
			},
			want: 100.0 / 3.0,
		},
		{
			name: "only breakevens",
			trades: []*trade.Trade{
				mkTrade(trade.StatusBreakeven, 0, day(2026, 1, 1)),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeWinLossPercentage(tt.trades), 1e-9)
		})
	}
}

func TestComputeRiskToReward(t *testing.T) {
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 150, day(2026, 1, 1)),
		mkTrade(trade.StatusWin, 50, day(2026, 1, 2)),
		mkTrade(trade.StatusLoss, -50, day(2026, 1, 3)),
	}

	// avg win 100, avg loss 50
	assert.Equal(t, "0.50:1", ComputeRiskToReward(trades))
	assert.Equal(t, "0:0", ComputeRiskToReward(nil))
}

func TestComputeAverageProfitLoss(t *testing.T) {
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 30, day(2026, 1, 1)),
		mkTrade(trade.StatusLoss, -10, day(2026, 1, 2)),
	}

	assert.InDelta(t, 10.0, ComputeAverageProfitLoss(trades), 1e-9)
	assert.Zero(t, ComputeAverageProfitLoss(nil))
}

func TestComputeDrawDown(t *testing.T) {
	t.Run("worst loss over balance before it", func(t *testing.T) {
		trades := []*trade.Trade{
			mkTrade(trade.StatusWin, 1000, day(2026, 1, 1)),
			mkTrade(trade.StatusLoss, -50, day(2026, 1, 10)),
		}

		dd := ComputeDrawDown(trades, 500)
		require.NotNil(t, dd)
		assert.InDelta(t, 5.0, *dd, 1e-9)
	})

	t.Run("falls back to initial capital", func(t *testing.T) {
		trades := []*trade.Trade{
			mkTrade(trade.StatusLoss, -100, day(2026, 1, 1)),
		}

		dd := ComputeDrawDown(trades, 2000)
		require.NotNil(t, dd)
		assert.InDelta(t, 5.0, *dd, 1e-9)
	})

	t.Run("undefined without losses", func(t *testing.T) {
		trades := []*trade.Trade{
			mkTrade(trade.StatusWin, 100, day(2026, 1, 1)),
		}
		assert.Nil(t, ComputeDrawDown(trades, 1000))
	})

	t.Run("undefined without baseline", func(t *testing.T) {
		trades := []*trade.Trade{
			mkTrade(trade.StatusLoss, -100, day(2026, 1, 1)),
		}
		assert.Nil(t, ComputeDrawDown(trades, 0))
	})
}

func TestComputeMonthlyNetProfitLoss(t *testing.T) {
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 100, day(2026, 1, 1)),
		mkTrade(trade.StatusLoss, -30, day(2026, 1, 2)),
		mkTrade(trade.StatusLoss, -10, day(2026, 2, 1)),
	}

	months := ComputeMonthlyNetProfitLoss(trades)

	require.Len(t, months, 2)
	assert.InDelta(t, 70.0, months[0].Net, 1e-9)
	assert.InDelta(t, -10.0, months[1].Net, 1e-9)
}

func TestComputeMonthlyTradeDuration(t *testing.T) {
	open := day(2026, 1, 5)
	short := mkTrade(trade.StatusWin, 10, open)
	short.CloseDate = open.Add(24 * time.Hour)
	long := mkTrade(trade.StatusLoss, -10, day(2026, 1, 6))
	long.CloseDate = long.OpenDate.Add(72 * time.Hour)

	months := ComputeMonthlyTradeDuration([]*trade.Trade{short, long})

	require.Len(t, months, 1)
	assert.Equal(t, "2026-01", months[0].Month)
	assert.InDelta(t, 2.0, months[0].AverageDays, 1e-9)
}

func TestComputeAverageHoldingPeriod(t *testing.T) {
	one := mkTrade(trade.StatusWin, 10, day(2026, 1, 1))
	one.CloseDate = one.OpenDate.Add(30 * time.Minute)
	two := mkTrade(trade.StatusLoss, -5, day(2026, 1, 2))
	two.CloseDate = two.OpenDate.Add(90 * time.Minute)

	assert.InDelta(t, 60.0, ComputeAverageHoldingPeriod([]*trade.Trade{one, two}), 1e-9)
	assert.Zero(t, ComputeAverageHoldingPeriod(nil))
}

func TestComputeNetDailyPL(t *testing.T) {
	target := day(2026, 5, 12)
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 80, target),
		mkTrade(trade.StatusLoss, -20, target.Add(3*time.Hour)),
		mkTrade(trade.StatusWin, 500, day(2026, 5, 13)),
	}

	assert.InDelta(t, 60.0, ComputeNetDailyPL(trades, target), 1e-9)
	assert.Zero(t, ComputeNetDailyPL(trades, day(2026, 5, 14)))
}

func TestComputeHighestWinAndLossProfit(t *testing.T) {
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 120, day(2026, 1, 1)),
		mkTrade(trade.StatusWin, 300, day(2026, 1, 2)),
		mkTrade(trade.StatusLoss, -90, day(2026, 1, 3)),
		mkTrade(trade.StatusLoss, -15, day(2026, 1, 4)),
	}

	assert.InDelta(t, 300.0, ComputeHighestWinProfit(trades), 1e-9)
	assert.InDelta(t, -90.0, ComputeHighestLossProfit(trades), 1e-9)

	onlyWins := []*trade.Trade{mkTrade(trade.StatusWin, 10, day(2026, 1, 1))}
	assert.Zero(t, ComputeHighestLossProfit(onlyWins))
	onlyLosses := []*trade.Trade{mkTrade(trade.StatusLoss, -10, day(2026, 1, 1))}
	assert.Zero(t, ComputeHighestWinProfit(onlyLosses))
}

func TestComputeMostProfitableStrategy(t *testing.T) {
	trades := []*trade.Trade{
		withStrategy(mkTrade(trade.StatusWin, 100, day(2026, 1, 1)), 1),
		withStrategy(mkTrade(trade.StatusLoss, -200, day(2026, 1, 2)), 1),
		withStrategy(mkTrade(trade.StatusWin, 50, day(2026, 1, 3)), 2),
		mkTrade(trade.StatusWin, 9999, day(2026, 1, 4)), // no strategy, ignored
	}

	best, ok := ComputeMostProfitableStrategy(trades)
	require.True(t, ok)
	assert.Equal(t, int64(2), best.StrategyID)
	assert.InDelta(t, 50.0, best.TotalProfit, 1e-9)

	_, ok = ComputeMostProfitableStrategy([]*trade.Trade{mkTrade(trade.StatusWin, 1, day(2026, 1, 1))})
	assert.False(t, ok)
}
