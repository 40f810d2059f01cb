package trade

import (
	"time"
)

// Status is the recorded outcome of a closed trade
type Status string

const (
	StatusWin       Status = "win"
	StatusLoss      Status = "loss"
	StatusBreakeven Status = "breakeven"
)

// Valid reports whether the status is one of the known outcomes
func (s Status) Valid() bool {
	switch s {
	case StatusWin, StatusLoss, StatusBreakeven:
		return true
	}
	return false
}

// Side is the direction of a trade
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Valid reports whether the side is a known direction
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Trade represents a single closed, journaled trade.
// Records are immutable from the analytics engine's point of view:
// the engine only ever reads them.
type Trade struct {
	ID             int64  `db:"id" json:"id"`
	UserID         int64  `db:"user_id" json:"userId"`
	StrategyID     *int64 `db:"strategy_id" json:"strategyId"`
	CurrencyPairID int64  `db:"currency_pair_id" json:"currencyPairId"`

	OpenDate  time.Time `db:"open_date" json:"openDate"`
	CloseDate time.Time `db:"close_date" json:"closeDate"`

	Status Status `db:"status" json:"status"`
	Type   Side   `db:"type" json:"type"`

	EntryPrice   float64 `db:"entry_price" json:"entryPrice"`
	ExitPrice    float64 `db:"exit_price" json:"exitPrice"`
	PositionSize float64 `db:"position_size" json:"positionSize"`
	Profit       float64 `db:"profit" json:"profit"`

	StopLossPrice   float64 `db:"stop_loss_price" json:"stopLossPrice"`
	TakeProfitPrice float64 `db:"take_profit_price" json:"takeProfitPrice"`
	TransactionCost float64 `db:"transaction_cost" json:"transactionCost"`

	MarketTrend string   `db:"market_trend" json:"marketTrend"`
	Reason      string   `db:"reason" json:"reason"`
	Comment     string   `db:"comment" json:"comment"`
	Categories  []string `db:"-" json:"categories"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// HoldingPeriod returns how long the position was held
func (t *Trade) HoldingPeriod() time.Duration {
	return t.CloseDate.Sub(t.OpenDate)
}

// ComputeProfit derives the signed profit of a trade from its prices.
// Breakeven trades always yield 0 regardless of the price delta; for a
// sell the price delta is inverted so that a favorable move stays positive.
func ComputeProfit(entryPrice, exitPrice, positionSize float64, status Status, side Side) float64 {
	if status == StatusBreakeven || entryPrice == 0 {
		return 0
	}

	delta := exitPrice - entryPrice
	if side == SideSell {
		delta = entryPrice - exitPrice
	}

	return delta * (positionSize / entryPrice)
}
