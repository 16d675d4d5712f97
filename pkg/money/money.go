// Package money holds the shared financial helpers: tax, display formatting
// and the savings-rate calculation.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidIncome = errors.New("income must be greater than zero")

var (
	taxRate = decimal.RequireFromString("0.18")
	hundred = decimal.NewFromInt(100)
)

func CalculateTax(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(taxRate)
}

// FormatCurrency renders the fixed display line for a balance, always with
// two decimals.
func FormatCurrency(balance decimal.Decimal) string {
	return fmt.Sprintf("Your available balance is ₹%s", balance.StringFixed(2))
}

// SavingsRate returns (income-expenses)/income as a percentage.
func SavingsRate(income, expenses decimal.Decimal) (decimal.Decimal, error) {
	if income.Sign() <= 0 {
		return decimal.Zero, ErrInvalidIncome
	}
	return income.Sub(expenses).Div(income).Mul(hundred), nil
}
