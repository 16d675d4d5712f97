package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestAccount_DepositWithdrawInverse(t *testing.T) {
	acc := NewAccount("a1", "Ane", "pass1", dec(5000), Unrestricted())

	if err := acc.Deposit(dec(700)); err != nil {
		t.Fatalf("unexpected error on Deposit: %v", err)
	}
	if err := acc.Withdraw(dec(700)); err != nil {
		t.Fatalf("unexpected error on Withdraw: %v", err)
	}
	if !acc.Balance().Equal(dec(5000)) {
		t.Errorf("expected balance 5000, got %s", acc.Balance())
	}
}

func TestAccount_DepositInvalidAmount(t *testing.T) {
	acc := NewAccount("a1", "Ane", "pass1", dec(100), Unrestricted())

	for _, amount := range []decimal.Decimal{dec(0), dec(-50)} {
		if err := acc.Deposit(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%s): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if !acc.Balance().Equal(dec(100)) {
		t.Errorf("expected balance unchanged at 100, got %s", acc.Balance())
	}
}

func TestAccount_WithdrawInvalidAmount(t *testing.T) {
	acc := NewAccount("a1", "Ane", "pass1", dec(100), Unrestricted())

	for _, amount := range []decimal.Decimal{dec(0), dec(-50)} {
		if err := acc.Withdraw(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Withdraw(%s): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if !acc.Balance().Equal(dec(100)) {
		t.Errorf("expected balance unchanged at 100, got %s", acc.Balance())
	}
}

func TestAccount_WithdrawInsufficientBalance(t *testing.T) {
	acc := NewAccount("a1", "Ane", "pass1", dec(100), Unrestricted())

	if err := acc.Withdraw(dec(200)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if !acc.Balance().Equal(dec(100)) {
		t.Errorf("expected balance unchanged at 100, got %s", acc.Balance())
	}
}

func TestAccount_MinimumBalancePolicy(t *testing.T) {
	acc := NewAccount("a1", "Ane", "pass1", dec(5000), MinimumBalance(dec(1000)))

	if err := acc.Withdraw(dec(4500)); !errors.Is(err, ErrMinimumBalance) {
		t.Fatalf("expected ErrMinimumBalance, got %v", err)
	}
	if !acc.Balance().Equal(dec(5000)) {
		t.Errorf("expected balance unchanged at 5000, got %s", acc.Balance())
	}

	// Withdrawing down to exactly the floor is allowed.
	if err := acc.Withdraw(dec(4000)); err != nil {
		t.Fatalf("unexpected error withdrawing to the floor: %v", err)
	}
	if !acc.Balance().Equal(dec(1000)) {
		t.Errorf("expected balance 1000, got %s", acc.Balance())
	}
}

func TestAccount_MinimumBalancePolicy_InvalidAmountStillFails(t *testing.T) {
	acc := NewAccount("a1", "Ane", "pass1", dec(5000), MinimumBalance(dec(1000)))

	if err := acc.Withdraw(dec(-10)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAccount_MonthlyLimitPolicy(t *testing.T) {
	acc := NewAccount("a2", "Esther", "pass2", dec(3000), MonthlyLimit(dec(2000)))

	if err := acc.Withdraw(dec(1500)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := acc.Withdraw(dec(500)); err != nil {
		t.Fatalf("unexpected error reaching the cap exactly: %v", err)
	}
	if !acc.MonthlyWithdrawn().Equal(dec(2000)) {
		t.Errorf("expected monthly counter 2000, got %s", acc.MonthlyWithdrawn())
	}

	if err := acc.Withdraw(dec(1)); !errors.Is(err, ErrMonthlyLimit) {
		t.Fatalf("expected ErrMonthlyLimit, got %v", err)
	}
	if !acc.Balance().Equal(dec(1000)) {
		t.Errorf("expected balance unchanged at 1000, got %s", acc.Balance())
	}
	if !acc.MonthlyWithdrawn().Equal(dec(2000)) {
		t.Errorf("expected monthly counter unchanged at 2000, got %s", acc.MonthlyWithdrawn())
	}
}

func TestAccount_ResetMonthlyWithdrawals(t *testing.T) {
	acc := NewAccount("a2", "Esther", "pass2", dec(3000), MonthlyLimit(dec(2000)))

	_ = acc.Withdraw(dec(2000))
	if err := acc.Withdraw(dec(100)); !errors.Is(err, ErrMonthlyLimit) {
		t.Fatalf("expected ErrMonthlyLimit before reset, got %v", err)
	}

	acc.ResetMonthlyWithdrawals()
	if err := acc.Withdraw(dec(100)); err != nil {
		t.Fatalf("unexpected error after reset: %v", err)
	}
}

func TestAccount_FailedWithdrawDoesNotCountMonthly(t *testing.T) {
	acc := NewAccount("a2", "Esther", "pass2", dec(100), MonthlyLimit(dec(2000)))

	if err := acc.Withdraw(dec(500)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if !acc.MonthlyWithdrawn().IsZero() {
		t.Errorf("expected monthly counter zero after failed withdraw, got %s", acc.MonthlyWithdrawn())
	}
}

func TestAccount_Password(t *testing.T) {
	acc := NewAccount("a1", "Ane", "pass1", dec(100), Unrestricted())

	if !acc.CheckPassword("pass1") {
		t.Error("expected original password to match")
	}
	if acc.CheckPassword("wrong") {
		t.Error("expected wrong password to be rejected")
	}

	acc.SetPassword("newpass")
	if acc.CheckPassword("pass1") {
		t.Error("expected old password to be rejected after SetPassword")
	}
	if !acc.CheckPassword("newpass") {
		t.Error("expected new password to match")
	}
}

func TestAccount_TransactionsDefensiveCopy(t *testing.T) {
	acc := NewAccount("a1", "Ane", "pass1", dec(100), Unrestricted())
	acc.RecordTransaction(NewIncome("a1", dec(10)))
	acc.RecordTransaction(NewExpense("a1", dec(5)))

	history := acc.Transactions()
	if len(history) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(history))
	}
	if history[0].Type != TypeIncome || history[1].Type != TypeExpense {
		t.Errorf("expected history in insertion order, got %s then %s", history[0].Type, history[1].Type)
	}

	history[0] = nil
	if acc.Transactions()[0] == nil {
		t.Error("mutating the returned slice must not affect the account history")
	}
}

func TestNewTransaction_Lifecycle(t *testing.T) {
	tx := NewTransfer("a1", "a2", dec(50))

	if tx.ID == "" {
		t.Error("expected generated transaction ID")
	}
	if tx.Status != StatusCreated {
		t.Errorf("expected status created, got %s", tx.Status)
	}
	if tx.FromAccountID != "a1" || tx.ToAccountID != "a2" {
		t.Errorf("unexpected account references: %s -> %s", tx.FromAccountID, tx.ToAccountID)
	}

	other := NewIncome("a1", dec(50))
	if other.ID == tx.ID {
		t.Error("expected unique transaction IDs")
	}
}
