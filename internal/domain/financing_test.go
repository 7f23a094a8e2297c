package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_InterestAccrual(t *testing.T) {
	// 1000 at 2% monthly over 3 installments: 6% total interest
	quote := Quote(decimal.NewFromInt(1000), decimal.NewFromInt(2), 3)

	assert.True(t, quote.TotalAmount.Equal(decimal.NewFromInt(1060)),
		"expected total 1060, got %s", quote.TotalAmount)
	assert.True(t, quote.PerInstallmentAmount.Round(2).Equal(decimal.RequireFromString("353.33")),
		"expected per-installment 353.33, got %s", quote.PerInstallmentAmount)
	assert.True(t, quote.HasInterest)
	assert.Equal(t, 3, quote.Count)
}

func TestQuote_ZeroRate(t *testing.T) {
	quote := Quote(decimal.NewFromInt(600), decimal.Zero, 6)

	assert.False(t, quote.HasInterest)
	assert.True(t, quote.TotalAmount.Equal(decimal.NewFromInt(600)), "zero rate must not change the total")
	assert.True(t, quote.PerInstallmentAmount.Equal(decimal.NewFromInt(100)))
}

func TestQuote_PerInstallmentTimesCountEqualsTotal(t *testing.T) {
	epsilon := decimal.RequireFromString("0.01")

	testCases := []struct {
		base  string
		rate  string
		count int
	}{
		{"1000", "2", 3},
		{"600", "0", 6},
		{"99.99", "1.5", 12},
		{"0.01", "10", 7},
		{"123456.78", "3.25", 24},
	}

	for _, tc := range testCases {
		quote := Quote(decimal.RequireFromString(tc.base), decimal.RequireFromString(tc.rate), tc.count)

		product := quote.PerInstallmentAmount.Mul(decimal.NewFromInt(int64(tc.count)))
		diff := product.Sub(quote.TotalAmount).Abs()
		assert.True(t, diff.LessThanOrEqual(epsilon),
			"base=%s rate=%s count=%d: per*count=%s total=%s", tc.base, tc.rate, tc.count, product, quote.TotalAmount)
	}
}

func TestInstallmentQuote_Label(t *testing.T) {
	testCases := []struct {
		name     string
		base     string
		rate     string
		count    int
		expected string
	}{
		{
			name:     "singular with interest",
			base:     "100",
			rate:     "10",
			count:    1,
			expected: "1 installment of $ 110,00 ($ 110,00)",
		},
		{
			name:     "plural with interest",
			base:     "100",
			rate:     "10",
			count:    2,
			expected: "2 installments of $ 60,00 ($ 120,00)",
		},
		{
			name:     "singular no interest",
			base:     "600",
			rate:     "0",
			count:    1,
			expected: "1 installment of $ 600,00 (no interest)",
		},
		{
			name:     "plural no interest",
			base:     "600",
			rate:     "0",
			count:    6,
			expected: "6 installments of $ 100,00 (no interest)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quote := Quote(decimal.RequireFromString(tc.base), decimal.RequireFromString(tc.rate), tc.count)
			assert.Equal(t, tc.expected, quote.Label())
		})
	}
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"0", "0,00"},
		{"100", "100,00"},
		{"1060", "1 060,00"},
		{"353.333", "353,33"},
		{"1234567.5", "1 234 567,50"},
		{"-1234.5", "-1 234,50"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatAmount(decimal.RequireFromString(tc.in)), "input %s", tc.in)
	}
}

func TestBillingDayOfMonth(t *testing.T) {
	testCases := []struct {
		day      int
		expected int
	}{
		{1, 1},
		{15, 15},
		{28, 28},
		{29, 1},
		{30, 1},
		{31, 1},
	}

	for _, tc := range testCases {
		now := time.Date(2026, time.January, tc.day, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.expected, BillingDayOfMonth(now), "day %d", tc.day)
	}
}

func TestBillingDayOfMonth_UsesUTCDay(t *testing.T) {
	// Local Jan 29 01:00 at UTC+3 is still Jan 28 in UTC
	zone := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, time.January, 29, 1, 0, 0, 0, zone)

	assert.Equal(t, 28, BillingDayOfMonth(now))
}

func TestInstallmentOptions(t *testing.T) {
	terms := FinancingTerms{
		MonthlyInterestPercentage: decimal.NewFromInt(1),
		MaxInstallments:           3,
	}

	options := InstallmentOptions(decimal.NewFromInt(100), terms)

	require.Len(t, options, 3)
	for i, opt := range options {
		assert.Equal(t, i+1, opt.Count)
		assert.True(t, opt.HasInterest)
	}
	// 3 installments at 1% monthly: 3% total interest
	assert.True(t, options[2].TotalAmount.Equal(decimal.NewFromInt(103)))
}

func TestInstallmentOptions_DefaultsWhenUnconfigured(t *testing.T) {
	options := InstallmentOptions(decimal.NewFromInt(50), FinancingTerms{})

	require.Len(t, options, DefaultMaxInstallments)
	for _, opt := range options {
		assert.False(t, opt.HasInterest)
	}
}

func TestFinancingTerms_Normalize(t *testing.T) {
	terms := FinancingTerms{
		MonthlyInterestPercentage: decimal.NewFromInt(-5),
		MaxInstallments:           0,
	}.Normalize()

	assert.True(t, terms.MonthlyInterestPercentage.IsZero())
	assert.Equal(t, DefaultMaxInstallments, terms.MaxInstallments)
}
