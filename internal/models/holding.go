package models

// AssetType classifies a holding or transaction instrument.
type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeOption AssetType = "OPTION"
	AssetTypeCash   AssetType = "CASH"
)

// OptionType is the option contract direction.
type OptionType string

const (
	OptionTypeCall OptionType = "CALL"
	OptionTypePut  OptionType = "PUT"
)

// Holding is an open position within an account. Quantity is always
// positive: a position reconciled down to zero or below is deleted, never
// stored.
type Holding struct {
	Base
	AccountID  string    `gorm:"type:uuid;not null;index" json:"account_id"`
	Symbol     string    `gorm:"not null" json:"symbol"`
	AssetType  AssetType `gorm:"not null;default:'STOCK'" json:"asset_type"`
	Sector     string    `json:"sector"`
	Qty        float64   `gorm:"not null" json:"qty"`
	AvgCost    float64   `gorm:"not null" json:"avg_cost"`
	Last       float64   `json:"last"`
	PrevClose  float64   `json:"prev_close"`
	Beta       float64   `json:"beta"`
	Multiplier float64   `gorm:"not null;default:1" json:"multiplier"`

	// Option contract fields; empty for stock and cash positions.
	Underlying string     `json:"underlying,omitempty"`
	OptionType OptionType `json:"option_type,omitempty"`
	Strike     float64    `json:"strike,omitempty"`
	Expiry     string     `json:"expiry,omitempty"`
}

// IsOption reports whether the holding is an option contract.
func (h *Holding) IsOption() bool { return h.AssetType == AssetTypeOption }
