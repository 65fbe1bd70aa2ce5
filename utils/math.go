package utils

import "github.com/shopspring/decimal"

// ApproximateAmount floors an amount to the display precision conventional
// for the currency. Fiat keeps 2 decimal places, crypto assets more.
func ApproximateAmount(currency string, amount decimal.Decimal) decimal.Decimal {
	switch currency {
	case "btc":
		return amount.RoundFloor(8)
	case "eth", "sol", "usdc", "usdt":
		return amount.RoundFloor(6)
	default:
		return amount.RoundFloor(2)
	}
}

// Percentage returns part/whole × 100, or zero when whole is zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}
