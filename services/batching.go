package services

import "github.com/shopspring/decimal"

// Batching tiers. Larger transfers share more of the fixed on-chain cost,
// so the effective rate improves with size.
var (
	batchMediumThreshold = decimal.NewFromInt(1000)
	batchLargeThreshold  = decimal.NewFromInt(10000)

	batchMediumBonus = decimal.RequireFromString("1.001")
	batchLargeBonus  = decimal.RequireFromString("1.002")
)

// ApplyBatchingSavings projects the rate a transfer would clear at once it
// is batched with other flow in the same corridor.
func ApplyBatchingSavings(rate, sendAmount decimal.Decimal) decimal.Decimal {
	switch {
	case sendAmount.LessThan(batchMediumThreshold):
		return rate
	case sendAmount.LessThan(batchLargeThreshold):
		return rate.Mul(batchMediumBonus)
	default:
		return rate.Mul(batchLargeBonus)
	}
}
