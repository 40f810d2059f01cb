package currencypair

// CurrencyPair represents a user's tracked instrument, e.g. EUR → USD
type CurrencyPair struct {
	ID     int64  `db:"id" json:"id"`
	UserID int64  `db:"user_id" json:"userId"`
	From   string `db:"from_currency" json:"from"`
	To     string `db:"to_currency" json:"to"`
}
