package stats

import (
	"math"
	"time"

	"tradejournal/internal/domain/trade"
)

// GeneralStats is the headline summary of a trade set
type GeneralStats struct {
	TotalTrades     int     `json:"totalTrades"`
	WinTrades       int     `json:"winTrades"`
	LossTrades      int     `json:"lossTrades"`
	BreakevenTrades int     `json:"breakevenTrades"`
	WinRate         float64 `json:"winRate"`
	TotalProfit     float64 `json:"totalProfit"`
}

// ComputeGeneralStats counts outcomes and nets the signed profit.
// Win rate is 0 when there are no trades.
func ComputeGeneralStats(trades []*trade.Trade) GeneralStats {
	var gs GeneralStats
	gs.TotalTrades = len(trades)

	for _, t := range trades {
		switch t.Status {
		case trade.StatusWin:
			gs.WinTrades++
		case trade.StatusLoss:
			gs.LossTrades++
		case trade.StatusBreakeven:
			gs.BreakevenTrades++
		}
		gs.TotalProfit += signedProfit(t)
	}

	rate, _ := Ratio(float64(gs.WinTrades), float64(gs.TotalTrades), ZeroIsZero)
	gs.WinRate = rate * 100
	return gs
}

// MonthlyProfitLoss is one month's gross profit and gross loss
type MonthlyProfitLoss struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
	Loss   float64 `json:"loss"`
}

// ComputeMonthlyProfitLoss buckets trades by the month they were closed
// in. Winning trades accumulate into Profit, losing trades into Loss as
// a magnitude. Months without trades are omitted, not zero-filled.
func ComputeMonthlyProfitLoss(trades []*trade.Trade) []MonthlyProfitLoss {
	buckets := GroupBy(trades, CloseMonthKey)

	folded := FoldBuckets(buckets, func(trades []*trade.Trade) MonthlyProfitLoss {
		var m MonthlyProfitLoss
		for _, t := range trades {
			if isWin(t) {
				m.Profit += t.Profit
			} else if isLoss(t) {
				m.Loss += math.Abs(t.Profit)
			}
		}
		return m
	})

	out := make([]MonthlyProfitLoss, 0, len(folded))
	for _, f := range folded {
		f.Value.Month = f.Key
		out = append(out, f.Value)
	}
	return out
}

// MonthlyWinLoss is one month's win and loss counts with their ratio
type MonthlyWinLoss struct {
	Month  string  `json:"month"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Ratio  float64 `json:"winLossRatio"`
}

// ComputeMonthlyWinLossRatio buckets trades by open month and divides
// wins by losses with the denominator floored at one.
func ComputeMonthlyWinLossRatio(trades []*trade.Trade) []MonthlyWinLoss {
	buckets := GroupBy(trades, OpenMonthKey)

	folded := FoldBuckets(buckets, func(trades []*trade.Trade) MonthlyWinLoss {
		var m MonthlyWinLoss
		for _, t := range trades {
			if isWin(t) {
				m.Wins++
			} else if isLoss(t) {
				m.Losses++
			}
		}
		m.Ratio, _ = Ratio(float64(m.Wins), float64(m.Losses), ZeroFloorsToOne)
		return m
	})

	out := make([]MonthlyWinLoss, 0, len(folded))
	for _, f := range folded {
		f.Value.Month = f.Key
		out = append(out, f.Value)
	}
	return out
}

// ComputeWinLossPercentage is the single-aggregate form used for
// per-strategy views: wins over decided trades as a percentage, 0 when
// no trade has a decided outcome.
func ComputeWinLossPercentage(trades []*trade.Trade) float64 {
	var wins, losses int
	for _, t := range trades {
		if isWin(t) {
			wins++
		} else if isLoss(t) {
			losses++
		}
	}
	pct, _ := Ratio(float64(wins), float64(wins+losses), ZeroIsZero)
	return pct * 100
}

// ComputeRiskToReward sums win and loss profit across the trade set and
// renders the loss:win ratio string.
func ComputeRiskToReward(trades []*trade.Trade) string {
	var totalWin, totalLoss float64
	var winCount, lossCount int

	for _, t := range trades {
		if isWin(t) {
			totalWin += t.Profit
			winCount++
		} else if isLoss(t) {
			totalLoss += t.Profit
			lossCount++
		}
	}

	return RiskRewardRatio(totalWin, winCount, totalLoss, lossCount)
}

// ComputeAverageProfitLoss is the mean of the profit field, 0 when the
// trade set is empty.
func ComputeAverageProfitLoss(trades []*trade.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	var sum float64
	for _, t := range trades {
		sum += t.Profit
	}
	return sum / float64(len(trades))
}

// ComputeDrawDown returns the worst single-trade loss as a percentage
// of the account balance immediately before it: cumulative profit over
// trades opened strictly before the loss, falling back to the user's
// initial capital when that sum is zero. The result is nil — undefined,
// never a fabricated zero — when there is no losing trade or no baseline
// to divide by.
func ComputeDrawDown(trades []*trade.Trade, initialCapital float64) *float64 {
	var worst *trade.Trade
	for _, t := range trades {
		if !isLoss(t) {
			continue
		}
		if worst == nil || t.Profit < worst.Profit {
			worst = t
		}
	}
	if worst == nil {
		return nil
	}

	var balanceBefore float64
	for _, t := range trades {
		if t.OpenDate.Before(worst.OpenDate) {
			balanceBefore += t.Profit
		}
	}
	if balanceBefore == 0 {
		balanceBefore = initialCapital
	}

	ratio, ok := Ratio(math.Abs(worst.Profit), balanceBefore, ZeroIsUndefined)
	if !ok {
		return nil
	}

	pct := ratio * 100
	return &pct
}

// MonthlyNet is one month's signed profit total
type MonthlyNet struct {
	Month string  `json:"month"`
	Net   float64 `json:"totalProfitLoss"`
}

// ComputeMonthlyNetProfitLoss sums signed profit per open month.
func ComputeMonthlyNetProfitLoss(trades []*trade.Trade) []MonthlyNet {
	buckets := GroupBy(trades, OpenMonthKey)

	folded := FoldBuckets(buckets, func(trades []*trade.Trade) float64 {
		var sum float64
		for _, t := range trades {
			sum += t.Profit
		}
		return sum
	})

	out := make([]MonthlyNet, 0, len(folded))
	for _, f := range folded {
		out = append(out, MonthlyNet{Month: f.Key, Net: f.Value})
	}
	return out
}

// MonthlyDuration is one month's average holding time in days
type MonthlyDuration struct {
	Month       string  `json:"month"`
	AverageDays float64 `json:"averageTradeDuration"`
}

// ComputeMonthlyTradeDuration averages holding time per open month,
// expressed in days.
func ComputeMonthlyTradeDuration(trades []*trade.Trade) []MonthlyDuration {
	buckets := GroupBy(trades, OpenMonthKey)

	folded := FoldBuckets(buckets, func(trades []*trade.Trade) float64 {
		var totalDays float64
		for _, t := range trades {
			totalDays += t.HoldingPeriod().Hours() / 24
		}
		return totalDays / float64(len(trades))
	})

	out := make([]MonthlyDuration, 0, len(folded))
	for _, f := range folded {
		out = append(out, MonthlyDuration{Month: f.Key, AverageDays: f.Value})
	}
	return out
}

// ComputeAverageHoldingPeriod is the mean holding time across all
// trades, in minutes. 0 when there are no trades.
func ComputeAverageHoldingPeriod(trades []*trade.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	var total time.Duration
	for _, t := range trades {
		total += t.HoldingPeriod()
	}
	return total.Minutes() / float64(len(trades))
}

// ComputeNetDailyPL nets win profit against loss magnitude for trades
// opened on the given UTC calendar day.
func ComputeNetDailyPL(trades []*trade.Trade, day time.Time) float64 {
	key := BucketKey(day, GranularityDay)

	var net float64
	for _, t := range trades {
		if OpenDayKey(t) != key {
			continue
		}
		if isWin(t) {
			net += t.Profit
		} else if isLoss(t) {
			net -= math.Abs(t.Profit)
		}
	}
	return net
}

// ComputeHighestWinProfit is the largest single-trade profit, 0 when no
// trade ended positive.
func ComputeHighestWinProfit(trades []*trade.Trade) float64 {
	var highest float64
	for _, t := range trades {
		if t.Profit > highest {
			highest = t.Profit
		}
	}
	return highest
}

// ComputeHighestLossProfit is the most negative single-trade profit, 0
// when no trade ended negative.
func ComputeHighestLossProfit(trades []*trade.Trade) float64 {
	var lowest float64
	for _, t := range trades {
		if t.Profit < lowest {
			lowest = t.Profit
		}
	}
	return lowest
}

// StrategyProfit is a strategy's signed profit total over a trade set
type StrategyProfit struct {
	StrategyID  int64   `json:"strategyId"`
	TotalProfit float64 `json:"totalProfit"`
}

// ComputeMostProfitableStrategy sums signed profit per strategy and
// returns the best one. Trades without a strategy are ignored. The
// boolean is false when no trade carries a strategy.
func ComputeMostProfitableStrategy(trades []*trade.Trade) (StrategyProfit, bool) {
	totals := make(map[int64]float64)
	order := make([]int64, 0)

	for _, t := range trades {
		if t.StrategyID == nil {
			continue
		}
		id := *t.StrategyID
		if _, seen := totals[id]; !seen {
			order = append(order, id)
		}
		totals[id] += signedProfit(t)
	}
	if len(order) == 0 {
		return StrategyProfit{}, false
	}

	best := StrategyProfit{StrategyID: order[0], TotalProfit: totals[order[0]]}
	for _, id := range order[1:] {
		if totals[id] > best.TotalProfit {
			best = StrategyProfit{StrategyID: id, TotalProfit: totals[id]}
		}
	}
	return best, true
}
