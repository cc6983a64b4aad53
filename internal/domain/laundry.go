package domain

import "github.com/shopspring/decimal"

// LaundryAccount is the single shop revenue account. Its balance only
// ever grows: by the price of each transaction that completes.
type LaundryAccount struct {
	Name     string
	Location string
	Balance  decimal.Decimal
}
