// Package pricing maps (paper format, quantity) to a total price through a
// base-price table and quantity-tier multipliers.
package pricing

import (
	"errors"
	"math"
)

var ErrUnknownFormat = errors.New("unknown print format")

// Multiplier returns the quantity-tier factor. Tiers are checked in order and
// the first match wins; the 10..99 range pays the plain base price.
func Multiplier(quantity int) float64 {
	switch {
	case quantity < 5:
		return 2.0
	case quantity < 10:
		return 1.5
	case quantity >= 100:
		return 0.5
	default:
		return 1.0
	}
}

// Price computes the total for quantity prints of the given format, rounded
// half-up to 2 decimal places. Unknown formats price at 0.
func (c *Catalog) Price(format string, quantity int) float64 {
	return Round2(c.BasePrice(format) * Multiplier(quantity) * float64(quantity))
}

func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
