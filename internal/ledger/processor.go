// Package ledger applies transactions to accounts: validate, mutate the
// balances, record the transaction into the account histories.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bookkeeper/internal/domain"
	"bookkeeper/internal/repository"
	"bookkeeper/pkg/metrics"
	"bookkeeper/pkg/validator"
)

type Processor struct {
	txRepo      repository.TransactionRepository
	accountRepo repository.AccountRepository
	validator   *validator.TransactionValidator
	collector   *metrics.Collector
	logger      *slog.Logger
}

func NewProcessor(
	txRepo repository.TransactionRepository,
	accountRepo repository.AccountRepository,
	collector *metrics.Collector,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		txRepo:      txRepo,
		accountRepo: accountRepo,
		validator:   validator.NewTransactionValidator(),
		collector:   collector,
		logger:      logger,
	}
}

// Process runs a transaction through its lifecycle: created → validated →
// applied. A failure at any step surfaces to the caller and leaves every
// involved account untouched.
func (p *Processor) Process(ctx context.Context, tx *domain.Transaction) error {
	start := time.Now()

	if err := p.validator.ValidateTransaction(tx); err != nil {
		p.observe(start, false)
		return fmt.Errorf("validation failed: %w", err)
	}
	tx.Status = domain.StatusValidated

	var err error
	switch tx.Type {
	case domain.TypeIncome:
		err = p.applyIncome(ctx, tx)
	case domain.TypeExpense:
		err = p.applyExpense(ctx, tx)
	case domain.TypeTransfer:
		err = p.applyTransfer(ctx, tx)
	default:
		err = fmt.Errorf("unknown transaction type: %s", tx.Type)
	}
	if err != nil {
		p.observe(start, false)
		return err
	}
	tx.Status = domain.StatusApplied

	if err := p.txRepo.Save(ctx, tx); err != nil {
		p.observe(start, false)
		return err
	}

	p.observe(start, true)
	return nil
}

func (p *Processor) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return p.txRepo.GetByID(ctx, transactionID)
}

func (p *Processor) applyIncome(ctx context.Context, tx *domain.Transaction) error {
	p.logger.InfoContext(ctx, "Processing income",
		slog.String("transaction_id", tx.ID),
		slog.String("to_account", tx.ToAccountID),
		slog.String("amount", tx.Amount.String()))

	account, err := p.accountRepo.GetByID(ctx, tx.ToAccountID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	if err := account.Deposit(tx.Amount); err != nil {
		return err
	}
	account.RecordTransaction(tx)

	p.updateBalanceMetric(account)
	return nil
}

func (p *Processor) applyExpense(ctx context.Context, tx *domain.Transaction) error {
	p.logger.InfoContext(ctx, "Processing expense",
		slog.String("transaction_id", tx.ID),
		slog.String("from_account", tx.FromAccountID),
		slog.String("amount", tx.Amount.String()))

	account, err := p.accountRepo.GetByID(ctx, tx.FromAccountID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	if err := account.Withdraw(tx.Amount); err != nil {
		return err
	}
	account.RecordTransaction(tx)

	p.updateBalanceMetric(account)
	return nil
}

func (p *Processor) applyTransfer(ctx context.Context, tx *domain.Transaction) error {
	p.logger.InfoContext(ctx, "Processing transfer",
		slog.String("transaction_id", tx.ID),
		slog.String("from_account", tx.FromAccountID),
		slog.String("to_account", tx.ToAccountID),
		slog.String("amount", tx.Amount.String()))

	// Both legs are resolved before the first mutation, so a missing
	// destination can never strand funds mid-transfer.
	fromAccount, err := p.accountRepo.GetByID(ctx, tx.FromAccountID)
	if err != nil {
		return fmt.Errorf("failed to get source account: %w", err)
	}

	toAccount, err := p.accountRepo.GetByID(ctx, tx.ToAccountID)
	if err != nil {
		return fmt.Errorf("failed to get destination account: %w", err)
	}

	if err := fromAccount.Withdraw(tx.Amount); err != nil {
		return err
	}

	if err := toAccount.Deposit(tx.Amount); err != nil {
		// Unreachable for a validated amount, but restore the source
		// rather than lose the funds.
		_ = fromAccount.Deposit(tx.Amount)
		return err
	}

	fromAccount.RecordTransaction(tx)
	toAccount.RecordTransaction(tx)

	p.updateBalanceMetric(fromAccount)
	p.updateBalanceMetric(toAccount)
	return nil
}

func (p *Processor) observe(start time.Time, success bool) {
	if p.collector != nil {
		p.collector.RecordTransaction(time.Since(start), success)
	}
}

func (p *Processor) updateBalanceMetric(account *domain.Account) {
	if p.collector != nil {
		p.collector.UpdateAccountBalance(account.ID(), account.Holder(), account.Balance())
	}
}
