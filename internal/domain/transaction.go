package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string
type TransactionStatus string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"

	StatusCreated   TransactionStatus = "created"
	StatusValidated TransactionStatus = "validated"
	StatusApplied   TransactionStatus = "applied"
)

// Transaction is a one-shot mutation of one or two accounts. The payload is
// fixed at construction; only Status advances, created → validated → applied.
// Applied is terminal and there is no undo.
type Transaction struct {
	ID            string            `json:"id"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	FromAccountID string            `json:"from_account_id,omitempty"`
	ToAccountID   string            `json:"to_account_id,omitempty"`
	Description   string            `json:"description,omitempty"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

// NewIncome books amount into the given account.
func NewIncome(accountID string, amount decimal.Decimal) *Transaction {
	return newTransaction(TypeIncome, amount, "", accountID)
}

// NewExpense books amount out of the given account.
func NewExpense(accountID string, amount decimal.Decimal) *Transaction {
	return newTransaction(TypeExpense, amount, accountID, "")
}

// NewTransfer moves amount between two accounts.
func NewTransfer(fromAccountID, toAccountID string, amount decimal.Decimal) *Transaction {
	return newTransaction(TypeTransfer, amount, fromAccountID, toAccountID)
}

func newTransaction(t TransactionType, amount decimal.Decimal, fromID, toID string) *Transaction {
	return &Transaction{
		ID:            uuid.NewString(),
		Type:          t,
		Amount:        amount,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Status:        StatusCreated,
		CreatedAt:     time.Now(),
	}
}

func (tx *Transaction) WithDescription(desc string) *Transaction {
	tx.Description = desc
	return tx
}
