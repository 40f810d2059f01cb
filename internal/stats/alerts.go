package stats

import (
	"time"

	"tradejournal/internal/domain/trade"
)

// OverTradeThreshold is the fixed per-day trade count above which a day
// is flagged. Applies to both over-trading and revenge-trading.
const OverTradeThreshold = 3

// BehavioralAlerts flags undisciplined trading patterns within the
// current calendar month
type BehavioralAlerts struct {
	// FOMOTrades counts trades recorded without any strategy
	FOMOTrades int `json:"fomo"`
	// OverTradeDays counts days with more than OverTradeThreshold trades
	OverTradeDays int `json:"overTradeDays"`
	// RevengeTradeDays counts days with more than OverTradeThreshold losses
	RevengeTradeDays int `json:"revengeTradeDays"`
}

// ComputeBehavioralAlerts scans trades opened in the UTC calendar month
// containing now. A day is counted only when its trade (or loss) count
// strictly exceeds the threshold.
func ComputeBehavioralAlerts(trades []*trade.Trade, now time.Time) BehavioralAlerts {
	monthKey := BucketKey(now, GranularityMonth)

	var alerts BehavioralAlerts
	tradesPerDay := make(map[string]int)
	lossesPerDay := make(map[string]int)

	for _, t := range trades {
		if OpenMonthKey(t) != monthKey {
			continue
		}
		if t.StrategyID == nil {
			alerts.FOMOTrades++
		}
		day := OpenDayKey(t)
		tradesPerDay[day]++
		if isLoss(t) {
			lossesPerDay[day]++
		}
	}

	for _, n := range tradesPerDay {
		if n > OverTradeThreshold {
			alerts.OverTradeDays++
		}
	}
	for _, n := range lossesPerDay {
		if n > OverTradeThreshold {
			alerts.RevengeTradeDays++
		}
	}
	return alerts
}
