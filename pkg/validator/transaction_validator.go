package validator

import (
	"errors"
	"fmt"
	"time"

	"bookkeeper/internal/domain"
)

var (
	ErrInvalidAccount       = errors.New("invalid account reference")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
)

type TransactionValidator struct {
	seen map[string]struct{}
}

func NewTransactionValidator() *TransactionValidator {
	return &TransactionValidator{
		seen: make(map[string]struct{}),
	}
}

// ValidateTransaction checks a transaction before it is applied. Each
// transaction ID is accepted once; a second validation of the same ID fails.
func (v *TransactionValidator) ValidateTransaction(tx *domain.Transaction) error {
	var errs []error

	if tx.Amount.Sign() <= 0 {
		errs = append(errs, domain.ErrInvalidAmount)
	}

	switch tx.Type {
	case domain.TypeIncome:
		if tx.ToAccountID == "" {
			errs = append(errs, fmt.Errorf("%w: income requires a destination account", ErrInvalidAccount))
		}
	case domain.TypeExpense:
		if tx.FromAccountID == "" {
			errs = append(errs, fmt.Errorf("%w: expense requires a source account", ErrInvalidAccount))
		}
	case domain.TypeTransfer:
		if tx.FromAccountID == "" || tx.ToAccountID == "" {
			errs = append(errs, fmt.Errorf("%w: transfer requires both accounts", ErrInvalidAccount))
		}
		if tx.FromAccountID != "" && tx.FromAccountID == tx.ToAccountID {
			errs = append(errs, errors.New("cannot transfer to same account"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown transaction type: %s", tx.Type))
	}

	if tx.CreatedAt.After(time.Now().Add(5 * time.Minute)) {
		errs = append(errs, errors.New("transaction date cannot be in the future"))
	}

	if _, ok := v.seen[tx.ID]; ok {
		return ErrDuplicateTransaction
	}
	v.seen[tx.ID] = struct{}{}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
