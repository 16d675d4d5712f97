package validator

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bookkeeper/internal/domain"
)

func TestTransactionValidator_ValidIncome(t *testing.T) {
	v := NewTransactionValidator()
	tx := domain.NewIncome("a1", decimal.NewFromInt(100))

	if err := v.ValidateTransaction(tx); err != nil {
		t.Fatalf("expected valid transaction, got err=%v", err)
	}
}

func TestTransactionValidator_InvalidAmount(t *testing.T) {
	v := NewTransactionValidator()
	tx := domain.NewIncome("a1", decimal.Zero)

	err := v.ValidateTransaction(tx)

	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestTransactionValidator_MissingAccount(t *testing.T) {
	v := NewTransactionValidator()
	tx := domain.NewExpense("", decimal.NewFromInt(50))

	err := v.ValidateTransaction(tx)

	if !errors.Is(err, ErrInvalidAccount) {
		t.Fatalf("expected ErrInvalidAccount, got %v", err)
	}
}

func TestTransactionValidator_TransferToSameAccount(t *testing.T) {
	v := NewTransactionValidator()
	tx := domain.NewTransfer("a1", "a1", decimal.NewFromInt(50))

	if err := v.ValidateTransaction(tx); err == nil {
		t.Fatal("expected error for transfer to same account, got nil")
	}
}

func TestTransactionValidator_FutureTimestamp(t *testing.T) {
	v := NewTransactionValidator()
	tx := domain.NewIncome("a1", decimal.NewFromInt(10))
	tx.CreatedAt = time.Now().Add(48 * time.Hour)

	if err := v.ValidateTransaction(tx); err == nil {
		t.Fatal("expected error for future timestamp, got nil")
	}
}

func TestTransactionValidator_DuplicateTransaction(t *testing.T) {
	v := NewTransactionValidator()
	tx := domain.NewIncome("a1", decimal.NewFromInt(10))

	if err := v.ValidateTransaction(tx); err != nil {
		t.Fatalf("first validation should succeed, got %v", err)
	}
	if err := v.ValidateTransaction(tx); !errors.Is(err, ErrDuplicateTransaction) {
		t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
	}
}
