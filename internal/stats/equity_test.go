package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain/trade"
)

func TestComputeEquityCurve(t *testing.T) {
	trades := []*trade.Trade{
		mkTrade(trade.StatusLoss, -200, day(2026, 1, 15)),
		mkTrade(trade.StatusWin, 500, day(2026, 1, 5)),
		mkTrade(trade.StatusWin, 100, day(2026, 2, 1)),
	}

	curve := ComputeEquityCurve(trades, 1000)

	require.Len(t, curve, 4)
	// seed point at the earliest open date
	assert.Equal(t, day(2026, 1, 5), curve[0].Date)
	assert.InDelta(t, 1000.0, curve[0].Equity, 1e-9)
	assert.InDelta(t, 1500.0, curve[1].Equity, 1e-9)
	assert.InDelta(t, 1300.0, curve[2].Equity, 1e-9)
	// final value is initial capital plus the net of all profits
	assert.InDelta(t, 1400.0, curve[3].Equity, 1e-9)
}

func TestComputeEquityCurve_Empty(t *testing.T) {
	curve := ComputeEquityCurve(nil, 1000)
	assert.NotNil(t, curve)
	assert.Empty(t, curve)
}

func TestComputeEquityCurve_InputUntouched(t *testing.T) {
	first := mkTrade(trade.StatusWin, 10, day(2026, 3, 20))
	second := mkTrade(trade.StatusWin, 10, day(2026, 3, 1))
	trades := []*trade.Trade{first, second}

	one := ComputeEquityCurve(trades, 100)
	two := ComputeEquityCurve(trades, 100)

	assert.Same(t, first, trades[0])
	assert.Same(t, second, trades[1])
	assert.Equal(t, one, two)
}

func TestComputeMonthlyEquityCurve(t *testing.T) {
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 100, day(2026, 1, 5)),
		mkTrade(trade.StatusWin, 50, day(2026, 1, 20)),
		mkTrade(trade.StatusLoss, -30, day(2026, 3, 2)),
	}

	curve := ComputeMonthlyEquityCurve(trades, 1000)

	require.Len(t, curve, 2)
	assert.Equal(t, "2026-01", curve[0].Date)
	assert.InDelta(t, 1150.0, curve[0].Equity, 1e-9)
	// February has no trades and gets no entry
	assert.Equal(t, "2026-03", curve[1].Date)
	assert.InDelta(t, 1120.0, curve[1].Equity, 1e-9)
}

func TestComputeDailyEquityCurve(t *testing.T) {
	now := day(2026, 6, 15)
	trades := []*trade.Trade{
		mkTrade(trade.StatusWin, 100, day(2026, 5, 30)), // outside the month, excluded
		mkTrade(trade.StatusWin, 40, day(2026, 6, 2)),
		mkTrade(trade.StatusLoss, -10, time.Date(2026, 6, 2, 18, 0, 0, 0, time.UTC)),
		mkTrade(trade.StatusWin, 25, day(2026, 6, 10)),
	}

	curve := ComputeDailyEquityCurve(trades, 1000, now)

	require.Len(t, curve, 2)
	assert.Equal(t, "2026-06-02", curve[0].Date)
	// last equity value of the day wins
	assert.InDelta(t, 1130.0, curve[0].Equity, 1e-9)
	assert.Equal(t, "2026-06-10", curve[1].Date)
	assert.InDelta(t, 1155.0, curve[1].Equity, 1e-9)
}
