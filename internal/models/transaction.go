package models

// ActivityType is the kind of ledger event a transaction records.
type ActivityType string

const (
	ActivityBuy        ActivityType = "BUY"
	ActivitySell       ActivityType = "SELL"
	ActivityDividend   ActivityType = "DIVIDEND"
	ActivityDeposit    ActivityType = "DEPOSIT"
	ActivityWithdrawal ActivityType = "WITHDRAWAL"
	ActivityFee        ActivityType = "FEE"
	ActivityAssignment ActivityType = "ASSIGNMENT"
	ActivityExpiry     ActivityType = "EXPIRY"
)

// Transaction is an immutable ledger event against an account. Amount is the
// signed cash effect: negative for outflows (buys, fees, withdrawals).
type Transaction struct {
	Base
	AccountID  string       `gorm:"type:uuid;not null;index" json:"account_id"`
	Date       string       `gorm:"not null" json:"date"` // YYYY-MM-DD
	Type       ActivityType `gorm:"not null" json:"type"`
	AssetType  AssetType    `gorm:"not null;default:'STOCK'" json:"asset_type"`
	Symbol     string       `gorm:"not null" json:"symbol"`
	Qty        float64      `json:"qty"`
	Price      float64      `json:"price"`
	Fees       float64      `json:"fees"`
	Multiplier float64      `gorm:"not null;default:1" json:"multiplier"`
	Amount     float64      `json:"amount"`

	Underlying string     `json:"underlying,omitempty"`
	OptionType OptionType `json:"option_type,omitempty"`
	Strike     float64    `json:"strike,omitempty"`
	Expiry     string     `json:"expiry,omitempty"`

	// AccountName is attached by the scope aggregator for display; it is
	// never persisted.
	AccountName string `gorm:"-" json:"account_name,omitempty"`
}

// MovesHoldings reports whether this transaction type mutates holdings via
// reconciliation. Every other type only affects cash and realized P&L.
func (t *Transaction) MovesHoldings() bool {
	return t.Type == ActivityBuy || t.Type == ActivitySell
}
