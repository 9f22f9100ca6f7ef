package service

import (
	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// FinanceCalculator computes repayment figures. Pure arithmetic, no state.
type FinanceCalculator struct{}

func NewFinanceCalculator() *FinanceCalculator {
	return &FinanceCalculator{}
}

// ComputeEMI returns the equated monthly installment for a principal,
// an annual interest rate in percent, and a tenure in months, rounded
// half-up to two decimal places.
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)   with r = rate/12/100
//
// A zero rate degenerates to straight division of principal over tenure.
func (c *FinanceCalculator) ComputeEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePercent.IsZero() {
		return principal.Div(n).Round(2)
	}
	r := annualRatePercent.Div(twelve).Div(hundred)
	pow := r.Add(decimal.NewFromInt(1)).Pow(n)
	emi := principal.Mul(r).Mul(pow).Div(pow.Sub(decimal.NewFromInt(1)))
	return emi.Round(2)
}

// ComputeTotalPayable returns EMI * tenure, rounded half-up to two places.
func (c *FinanceCalculator) ComputeTotalPayable(emi decimal.Decimal, tenureMonths int) decimal.Decimal {
	return emi.Mul(decimal.NewFromInt(int64(tenureMonths))).Round(2)
}

// ComputeProcessingFee returns the fee at the given percentage of principal,
// rounded half-up to two places.
func (c *FinanceCalculator) ComputeProcessingFee(principal, feePercent decimal.Decimal) decimal.Decimal {
	return principal.Mul(feePercent).Div(hundred).Round(2)
}
