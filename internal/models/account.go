package models

// Account represents a portfolio scope, e.g. a brokerage or IRA account.
// Holdings and transactions reference it by ID.
type Account struct {
	Base
	Name string `gorm:"not null" json:"name"`
}
