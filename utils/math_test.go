package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestApproximateAmount(t *testing.T) {
	cases := []struct {
		currency string
		in       string
		want     string
	}{
		{"eur", "90.5905", "90.59"},
		{"usd", "10.999", "10.99"},
		{"usdc", "999.12345678", "999.123456"},
		{"btc", "0.123456789", "0.12345678"},
		{"jpy", "100.005", "100"},
	}
	for _, tc := range cases {
		got := ApproximateAmount(tc.currency, decimal.RequireFromString(tc.in))
		require.Equal(t, tc.want, got.String(), "currency %s", tc.currency)
	}
}

func TestPercentage(t *testing.T) {
	got := Percentage(decimal.NewFromInt(5), decimal.NewFromInt(905))
	want := decimal.RequireFromString("0.5524861878")
	require.True(t, got.Sub(want).Abs().LessThan(decimal.RequireFromString("0.0000000001")), "got %s", got)

	require.True(t, Percentage(decimal.NewFromInt(5), decimal.Zero).IsZero())
}
