package fiscal

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to the cent, half up. Every derived monetary
// figure in this package goes through it at the point of computation so that
// repeated runs are bit-for-bit reproducible.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
