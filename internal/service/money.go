package service

import "github.com/shopspring/decimal"

// round2 rounds a monetary figure to cents through a decimal so float
// accumulation noise never leaks into API responses.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
