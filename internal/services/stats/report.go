package stats

import (
	"tradejournal/internal/stats"
)

// UserStatsReport is the full per-user statistics payload. Money and
// percentage values carry two decimals as strings.
type UserStatsReport struct {
	TotalTrades     int    `json:"totalTrades"`
	WinTrades       int    `json:"winTrades"`
	LossTrades      int    `json:"lossTrades"`
	BreakevenTrades int    `json:"breakevenTrades"`
	WinRate         string `json:"winRate"`
	TotalProfit     string `json:"totalProfit"`
	CurrentBalance  string `json:"currentBalance"`

	RiskToReward      string  `json:"riskToReward"`
	DrawDown          *string `json:"drawDown"`
	AverageProfitLoss string  `json:"averageProfitLoss"`
	AverageHoldingMin string  `json:"averageHoldingPeriodMinutes"`
	HighestWinProfit  string  `json:"highestWinProfit"`
	HighestLossProfit string  `json:"highestLossProfit"`
	NetDailyPL        string  `json:"netDailyProfitLoss"`

	TotalStrategies    int `json:"totalStrategies"`
	TotalCurrencyPairs int `json:"totalCurrencyPairs"`

	MonthlyProfitLoss    []MonthlyProfitLossView `json:"monthlyProfitLoss"`
	MonthlyWinLossRatio  []MonthlyWinLossView    `json:"monthlyWinLossRatio"`
	MonthlyNetProfitLoss []MonthlyNetView        `json:"monthlyNetProfitLoss"`
	MonthlyTradeDuration []MonthlyDurationView   `json:"monthlyTradeDuration"`

	MostProfitableStrategy *StrategyProfitView    `json:"mostProfitableStrategy"`
	Alerts                 stats.BehavioralAlerts `json:"alerts"`
}

// StrategyStatsReport is the per-strategy statistics payload
type StrategyStatsReport struct {
	StrategyID        int64   `json:"strategyId"`
	TotalTrades       int     `json:"totalTrades"`
	RiskToReward      string  `json:"riskToReward"`
	DrawDown          *string `json:"drawDown"`
	WinLossPercentage string  `json:"winLossPercentage"`
	AverageProfitLoss string  `json:"averageProfitLoss"`
}

// EquityPointView is one bucketed equity curve point
type EquityPointView struct {
	Date   string `json:"date"`
	Equity string `json:"equity"`
}

// MonthlyProfitLossView is one month's gross profit and loss
type MonthlyProfitLossView struct {
	Month  string `json:"month"`
	Profit string `json:"profit"`
	Loss   string `json:"loss"`
}

// MonthlyWinLossView is one month's win/loss counts and ratio
type MonthlyWinLossView struct {
	Month  string `json:"month"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Ratio  string `json:"winLossRatio"`
}

// MonthlyNetView is one month's signed net profit
type MonthlyNetView struct {
	Month string `json:"month"`
	Net   string `json:"totalProfitLoss"`
}

// MonthlyDurationView is one month's average holding time in days
type MonthlyDurationView struct {
	Month       string `json:"month"`
	AverageDays string `json:"averageTradeDuration"`
}

// StrategyProfitView is the most-profitable-strategy payload entry
type StrategyProfitView struct {
	StrategyID  int64  `json:"strategyId"`
	TotalProfit string `json:"totalProfit"`
}

func monthlyProfitLossViews(in []stats.MonthlyProfitLoss) []MonthlyProfitLossView {
	out := make([]MonthlyProfitLossView, 0, len(in))
	for _, m := range in {
		out = append(out, MonthlyProfitLossView{
			Month:  m.Month,
			Profit: money(m.Profit),
			Loss:   money(m.Loss),
		})
	}
	return out
}

func monthlyWinLossViews(in []stats.MonthlyWinLoss) []MonthlyWinLossView {
	out := make([]MonthlyWinLossView, 0, len(in))
	for _, m := range in {
		out = append(out, MonthlyWinLossView{
			Month:  m.Month,
			Wins:   m.Wins,
			Losses: m.Losses,
			Ratio:  money(m.Ratio),
		})
	}
	return out
}

func monthlyNetViews(in []stats.MonthlyNet) []MonthlyNetView {
	out := make([]MonthlyNetView, 0, len(in))
	for _, m := range in {
		out = append(out, MonthlyNetView{Month: m.Month, Net: money(m.Net)})
	}
	return out
}

func monthlyDurationViews(in []stats.MonthlyDuration) []MonthlyDurationView {
	out := make([]MonthlyDurationView, 0, len(in))
	for _, m := range in {
		out = append(out, MonthlyDurationView{Month: m.Month, AverageDays: money(m.AverageDays)})
	}
	return out
}
