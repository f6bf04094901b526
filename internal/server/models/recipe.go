package models

import "github.com/shopspring/decimal"

// Recipe is a cooking recipe owned by exactly one user. UserID is set from
// the authenticated caller on creation and never changes afterwards.
type Recipe struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	Price       decimal.Decimal
	TimeMinute  int
	Link        string
}
