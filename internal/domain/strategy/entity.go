package strategy

import (
	"time"
)

// Type classifies the trading style a strategy belongs to
type Type string

const (
	TypeScalping        Type = "Scalping"
	TypeSwingTrading    Type = "Swing Trading"
	TypeDayTrading      Type = "Day Trading"
	TypeRangeTrading    Type = "Range Trading"
	TypePositionTrading Type = "Position Trading"
)

// Valid reports whether the type is one of the known styles
func (t Type) Valid() bool {
	switch t {
	case TypeScalping, TypeSwingTrading, TypeDayTrading, TypeRangeTrading, TypePositionTrading:
		return true
	}
	return false
}

// RiskLevel is the user's own risk classification of a strategy
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Valid reports whether the risk level is known
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// Strategy represents a user-defined trading strategy. MarketType and
// MarketCondition are free-text tag lists; their comma-delimited storage
// encoding is a persistence concern and never leaks out of the repository.
type Strategy struct {
	ID     int64 `db:"id" json:"id"`
	UserID int64 `db:"user_id" json:"userId"`

	Name        string `db:"name" json:"name"`
	Type        Type   `db:"type" json:"type"`
	Comment     string `db:"comment" json:"comment"`
	Description string `db:"description" json:"description"`

	MarketType      []string  `db:"-" json:"marketType"`
	MarketCondition []string  `db:"-" json:"marketCondition"`
	RiskLevel       RiskLevel `db:"risk_level" json:"riskLevel"`
	TimeFrame       string    `db:"time_frame" json:"timeFrame"`

	// WinRate and TotalTrades are derived from the trade history on read;
	// the stored values are only a snapshot.
	WinRate     float64 `db:"win_rate" json:"winRate"`
	TotalTrades int     `db:"total_trades" json:"totalTrades"`
	StarRate    int     `db:"star_rate" json:"starRate"`

	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	LastModifiedDate time.Time `db:"last_modified_date" json:"lastModifiedDate"`
}
