package stock

import (
	"math"
	"regexp"
	"strconv"
)

var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Quantity bounds of products.stock_quantity, a Postgres integer column. They
// apply to every catalog backend.
const (
	maxQuantity = math.MaxInt32
	minQuantity = math.MinInt32
)

// parseQuantity accepts plain decimal numbers, optionally signed or in
// exponent form, and truncates them toward zero. Hex, infinities and values
// outside the stock_quantity column range are rejected.
func parseQuantity(raw string) (int, bool) {
	if raw == "" || !numericPattern.MatchString(raw) {
		return 0, false
	}

	if n, err := strconv.Atoi(raw); err == nil {
		if n > maxQuantity || n < minQuantity {
			return 0, false
		}
		return n, true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	f = math.Trunc(f)
	if f > maxQuantity || f < minQuantity {
		return 0, false
	}
	return int(f), true
}
