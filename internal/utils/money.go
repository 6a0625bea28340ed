package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var centsPerUnit = decimal.NewFromInt(100)

// ToCents converts a decimal currency amount to integer cents, rounding
// half-up at the cent. Negative amounts are rejected. The stored integer
// must match what the UI formats, so binary floats never enter the path.
func ToCents(amount decimal.Decimal) (int64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative: %s", amount.String())
	}
	return amount.Mul(centsPerUnit).Round(0).IntPart(), nil
}

// ToDecimal converts integer cents back to a decimal currency amount.
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(centsPerUnit)
}
