package models

// TaxLot is a closed (bought-then-sold) quantity of a security with its own
// cost basis, used for realized P&L attribution.
type TaxLot struct {
	Base
	AccountID   string  `gorm:"type:uuid;index" json:"account_id"`
	LotID       string  `gorm:"not null" json:"lot_id"`
	Symbol      string  `gorm:"not null" json:"symbol"`
	OpenDate    string  `json:"open_date"`
	CloseDate   string  `json:"close_date"`
	Qty         float64 `json:"qty"`
	BuyPrice    float64 `json:"buy_price"`
	SellPrice   float64 `json:"sell_price"`
	BuyFees     float64 `json:"buy_fees"`
	SellFees    float64 `json:"sell_fees"`
	BasisMethod string  `json:"basis_method"`
	WashSaleAdj float64 `json:"wash_sale_adj"`
}

// Realized returns the lot's realized P&L: sale proceeds net of fees, less
// basis including fees, plus any wash-sale adjustment.
func (l *TaxLot) Realized() float64 {
	proceeds := l.SellPrice*l.Qty - l.SellFees
	basis := l.BuyPrice*l.Qty + l.BuyFees
	return proceeds - basis + l.WashSaleAdj
}
