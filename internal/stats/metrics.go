package stats

import (
	"fmt"
	"math"

	"tradejournal/internal/domain/trade"
)

// ZeroPolicy states what Ratio does when the denominator is zero.
// The choice is metric-specific: a win rate over zero trades is a
// genuine zero, while a drawdown over zero capital has no answer and
// must never be coerced into one.
type ZeroPolicy int

const (
	// ZeroIsZero treats division by zero as the empty-state answer 0
	ZeroIsZero ZeroPolicy = iota
	// ZeroIsUndefined surfaces division by zero as "no value"
	ZeroIsUndefined
	// ZeroFloorsToOne substitutes a denominator of 1
	ZeroFloorsToOne
)

// Ratio divides num by den under the given zero-denominator policy.
// The boolean is false only for ZeroIsUndefined with a zero denominator;
// Ratio never returns NaN.
func Ratio(num, den float64, policy ZeroPolicy) (float64, bool) {
	if den == 0 {
		switch policy {
		case ZeroFloorsToOne:
			return num, true
		case ZeroIsUndefined:
			return 0, false
		default:
			return 0, true
		}
	}
	return num / den, true
}

// Outcome classification reads the recorded status directly; the engine
// never re-derives win/loss from prices. Breakeven trades are excluded
// from every win/loss numerator and denominator, uniformly across all
// builders.

func isWin(t *trade.Trade) bool {
	return t.Status == trade.StatusWin
}

func isLoss(t *trade.Trade) bool {
	return t.Status == trade.StatusLoss
}

// signedProfit returns the stored profit with the journal's sign
// convention enforced: wins keep their sign, losses are clamped
// negative, breakevens contribute nothing.
func signedProfit(t *trade.Trade) float64 {
	switch t.Status {
	case trade.StatusWin:
		return t.Profit
	case trade.StatusLoss:
		return -math.Abs(t.Profit)
	default:
		return 0
	}
}

// RiskRewardRatio expresses average loss magnitude against average win
// as a "loss:win" ratio string. The degenerate cases are fixed
// sentinels: no wins and no losses is "0:0", no wins is "1:0", no
// losses is "0:1".
func RiskRewardRatio(totalWinProfit float64, winCount int, totalLossProfit float64, lossCount int) string {
	switch {
	case winCount == 0 && lossCount == 0:
		return "0:0"
	case winCount == 0:
		return "1:0"
	case lossCount == 0:
		return "0:1"
	}

	avgWin := totalWinProfit / float64(winCount)
	avgLoss := math.Abs(totalLossProfit) / float64(lossCount)
	if avgWin == 0 {
		return "1:0"
	}

	return fmt.Sprintf("%.2f:1", avgLoss/avgWin)
}
