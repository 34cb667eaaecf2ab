package domain

import "github.com/shopspring/decimal"

// RatePoint is one year of the historical average mortgage rate series (percent).
type RatePoint struct {
	Year int             `json:"year"`
	Rate decimal.Decimal `json:"rate"`
}
