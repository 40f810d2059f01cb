package stats

import (
	"sort"
	"time"

	"tradejournal/internal/domain/trade"
)

// EquityPoint is one point on the running-balance curve
type EquityPoint struct {
	Date   time.Time `json:"date"`
	Equity float64   `json:"equity"`
}

// BucketedEquity is the last known equity value within one calendar
// bucket
type BucketedEquity struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// ComputeEquityCurve builds the running account balance in open-date
// order: a seed point at the first trade's date holding the initial
// capital, then one point per trade. It is always recomputed from the
// full history and never resumes mid-sequence. The input slice is left
// untouched.
func ComputeEquityCurve(trades []*trade.Trade, initialCapital float64) []EquityPoint {
	if len(trades) == 0 {
		return []EquityPoint{}
	}

	ordered := make([]*trade.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OpenDate.Before(ordered[j].OpenDate)
	})

	equity := initialCapital
	curve := make([]EquityPoint, 0, len(ordered)+1)
	curve = append(curve, EquityPoint{Date: ordered[0].OpenDate, Equity: equity})

	for _, t := range ordered {
		equity += t.Profit
		curve = append(curve, EquityPoint{Date: t.OpenDate, Equity: equity})
	}
	return curve
}

// ComputeMonthlyEquityCurve re-buckets the equity curve by month,
// keeping the last known equity value per month. Months without trades
// get no entry; values are not forward-filled.
func ComputeMonthlyEquityCurve(trades []*trade.Trade, initialCapital float64) []BucketedEquity {
	return bucketEquity(ComputeEquityCurve(trades, initialCapital), GranularityMonth, nil)
}

// ComputeDailyEquityCurve re-buckets the equity curve by day,
// restricted to the calendar month containing now.
func ComputeDailyEquityCurve(trades []*trade.Trade, initialCapital float64, now time.Time) []BucketedEquity {
	monthKey := BucketKey(now, GranularityMonth)
	return bucketEquity(ComputeEquityCurve(trades, initialCapital), GranularityDay, &monthKey)
}

func bucketEquity(curve []EquityPoint, g Granularity, monthFilter *string) []BucketedEquity {
	last := make(map[string]float64)
	order := make([]string, 0)

	for _, p := range curve {
		if monthFilter != nil && BucketKey(p.Date, GranularityMonth) != *monthFilter {
			continue
		}
		key := BucketKey(p.Date, g)
		if _, seen := last[key]; !seen {
			order = append(order, key)
		}
		last[key] = p.Equity
	}
	sort.Strings(order)

	out := make([]BucketedEquity, 0, len(order))
	for _, key := range order {
		out = append(out, BucketedEquity{Date: key, Equity: last[key]})
	}
	return out
}
