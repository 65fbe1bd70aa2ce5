package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestApplyBatchingSavings(t *testing.T) {
	rate := decimal.RequireFromString("0.905")

	cases := []struct {
		name   string
		amount string
		want   string
	}{
		{"below medium threshold", "999.99", "0.905"},
		{"at medium threshold", "1000", "0.905905"},
		{"inside medium tier", "9999.99", "0.905905"},
		{"at large threshold", "10000", "0.90681"},
		{"above large threshold", "250000", "0.90681"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyBatchingSavings(rate, decimal.RequireFromString(tc.amount))
			require.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestApplyBatchingSavingsIsExact(t *testing.T) {
	rate := decimal.RequireFromString("0.33")
	got := ApplyBatchingSavings(rate, decimal.NewFromInt(5000))
	require.Equal(t, "0.33033", got.String())
}
