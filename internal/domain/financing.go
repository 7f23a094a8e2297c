package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMaxInstallments is used when a product carries no financing
// configuration.
const DefaultMaxInstallments = 12

var oneHundred = decimal.NewFromInt(100)

// FinancingTerms is the per-product financing configuration: the monthly
// interest percentage applied per installment and the maximum number of
// installments offered at checkout.
type FinancingTerms struct {
	MonthlyInterestPercentage decimal.Decimal
	MaxInstallments           int
}

// Normalize applies the defaults {0, 12} for missing or nonsensical values.
// Terms are read once per calculation and treated as immutable afterwards.
func (t FinancingTerms) Normalize() FinancingTerms {
	if t.MonthlyInterestPercentage.IsNegative() {
		t.MonthlyInterestPercentage = decimal.Zero
	}
	if t.MaxInstallments < 1 {
		t.MaxInstallments = DefaultMaxInstallments
	}
	return t
}

// InstallmentQuote is one financing option: pay the total in Count monthly
// charges of PerInstallmentAmount each. Derived, never persisted.
type InstallmentQuote struct {
	TotalAmount          decimal.Decimal `json:"total_amount"`
	PerInstallmentAmount decimal.Decimal `json:"per_installment_amount"`
	Count                int             `json:"count"`
	HasInterest          bool            `json:"has_interest"`
}

// Quote computes the financing quote for a base amount at the given monthly
// interest percentage over count installments:
//
//	total = base + base * (rate * count) / 100
//	perInstallment = total / count
//
// count must be >= 1; the checkout validator enforces that before quoting.
func Quote(baseAmount, monthlyInterestPercentage decimal.Decimal, count int) InstallmentQuote {
	n := decimal.NewFromInt(int64(count))
	totalInterest := monthlyInterestPercentage.Mul(n)
	total := baseAmount.Add(baseAmount.Mul(totalInterest).Div(oneHundred))

	return InstallmentQuote{
		TotalAmount:          total,
		PerInstallmentAmount: total.Div(n),
		Count:                count,
		HasInterest:          !monthlyInterestPercentage.IsZero(),
	}
}

// InstallmentOptions returns one quote per offered installment count,
// 1 through terms.MaxInstallments.
func InstallmentOptions(baseAmount decimal.Decimal, terms FinancingTerms) []InstallmentQuote {
	terms = terms.Normalize()

	options := make([]InstallmentQuote, 0, terms.MaxInstallments)
	for i := 1; i <= terms.MaxInstallments; i++ {
		options = append(options, Quote(baseAmount, terms.MonthlyInterestPercentage, i))
	}
	return options
}

// Label renders the customer-facing text for this quote. Phrasing branches on
// count (singular vs plural) and on whether interest applies.
func (q InstallmentQuote) Label() string {
	per := FormatAmount(q.PerInstallmentAmount)

	if !q.HasInterest {
		if q.Count == 1 {
			return fmt.Sprintf("1 installment of $ %s (no interest)", per)
		}
		return fmt.Sprintf("%d installments of $ %s (no interest)", q.Count, per)
	}

	total := FormatAmount(q.TotalAmount)
	if q.Count == 1 {
		return fmt.Sprintf("1 installment of $ %s ($ %s)", per, total)
	}
	return fmt.Sprintf("%d installments of $ %s ($ %s)", q.Count, per, total)
}

// FormatAmount renders an amount with two fraction digits, a comma decimal
// separator and space-grouped thousands, e.g. 1234567.5 -> "1 234 567,50".
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// BillingDayOfMonth returns the recurring charge anchor day for a subscription
// created at now. Days 29-31 are clamped to 1 so the schedule never lands on a
// day that shorter months do not have.
func BillingDayOfMonth(now time.Time) int {
	day := now.UTC().Day()
	if day >= 29 {
		return 1
	}
	return day
}
