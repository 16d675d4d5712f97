package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateTax(t *testing.T) {
	tax := CalculateTax(decimal.NewFromInt(100))

	if !tax.Equal(decimal.NewFromInt(18)) {
		t.Errorf("expected tax 18, got %s", tax)
	}
}

func TestFormatCurrency(t *testing.T) {
	got := FormatCurrency(decimal.NewFromInt(6500))
	want := "Your available balance is ₹6500.00"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatCurrency_TwoDecimals(t *testing.T) {
	got := FormatCurrency(decimal.RequireFromString("99.5"))
	want := "Your available balance is ₹99.50"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSavingsRate(t *testing.T) {
	rate, err := SavingsRate(decimal.NewFromInt(10000), decimal.NewFromInt(2500))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected savings rate 75, got %s", rate)
	}
}

func TestSavingsRate_InvalidIncome(t *testing.T) {
	for _, income := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		_, err := SavingsRate(income, decimal.NewFromInt(10))
		if !errors.Is(err, ErrInvalidIncome) {
			t.Errorf("SavingsRate(%s): expected ErrInvalidIncome, got %v", income, err)
		}
	}
}

func TestSavingsRate_ExpensesAboveIncome(t *testing.T) {
	rate, err := SavingsRate(decimal.NewFromInt(100), decimal.NewFromInt(150))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("expected savings rate -50, got %s", rate)
	}
}
