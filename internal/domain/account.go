package domain

import (
	"errors"

	"github.com/shopspring/decimal"

	"bookkeeper/pkg/crypto"
)

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrMinimumBalance      = errors.New("minimum balance rule violated")
	ErrMonthlyLimit        = errors.New("monthly withdrawal limit exceeded")
)

type PolicyKind string

const (
	PolicyUnrestricted   PolicyKind = "unrestricted"
	PolicyMinimumBalance PolicyKind = "minimum_balance"
	PolicyMonthlyLimit   PolicyKind = "monthly_limit"
)

// WithdrawalPolicy is the extra constraint an account applies before the
// common amount and balance checks on a withdrawal. The policy check always
// runs first, matching the precedence of the account variants it replaces.
type WithdrawalPolicy struct {
	Kind       PolicyKind
	MinBalance decimal.Decimal
	MonthLimit decimal.Decimal

	monthlyWithdrawn decimal.Decimal
}

func Unrestricted() WithdrawalPolicy {
	return WithdrawalPolicy{Kind: PolicyUnrestricted}
}

func MinimumBalance(floor decimal.Decimal) WithdrawalPolicy {
	return WithdrawalPolicy{Kind: PolicyMinimumBalance, MinBalance: floor}
}

func MonthlyLimit(cap decimal.Decimal) WithdrawalPolicy {
	return WithdrawalPolicy{Kind: PolicyMonthlyLimit, MonthLimit: cap}
}

func (p *WithdrawalPolicy) check(balance, amount decimal.Decimal) error {
	switch p.Kind {
	case PolicyMinimumBalance:
		if balance.Sub(amount).LessThan(p.MinBalance) {
			return ErrMinimumBalance
		}
	case PolicyMonthlyLimit:
		if p.monthlyWithdrawn.Add(amount).GreaterThan(p.MonthLimit) {
			return ErrMonthlyLimit
		}
	}
	return nil
}

func (p *WithdrawalPolicy) recordWithdrawal(amount decimal.Decimal) {
	if p.Kind == PolicyMonthlyLimit {
		p.monthlyWithdrawn = p.monthlyWithdrawn.Add(amount)
	}
}

// Account holds a monetary balance, an opaque credential and the ordered
// history of transactions applied to it. The balance is only ever mutated
// through Deposit and Withdraw.
type Account struct {
	id         string
	holder     string
	balance    decimal.Decimal
	credential *crypto.Credential
	policy     WithdrawalPolicy
	history    []*Transaction
}

func NewAccount(id, holder, password string, balance decimal.Decimal, policy WithdrawalPolicy) *Account {
	return &Account{
		id:         id,
		holder:     holder,
		balance:    balance,
		credential: crypto.NewCredential(password),
		policy:     policy,
	}
}

func (a *Account) ID() string               { return a.id }
func (a *Account) Holder() string           { return a.holder }
func (a *Account) Balance() decimal.Decimal { return a.balance }
func (a *Account) Policy() WithdrawalPolicy { return a.policy }

func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// Withdraw decreases the balance by amount. The policy check runs before the
// common checks; a failed withdrawal leaves the balance and the monthly
// counter untouched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := a.policy.check(a.balance, amount); err != nil {
		return err
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientBalance
	}
	a.balance = a.balance.Sub(amount)
	a.policy.recordWithdrawal(amount)
	return nil
}

// MonthlyWithdrawn returns the cumulative amount counted against a
// monthly-limit policy. Zero for the other policy kinds.
func (a *Account) MonthlyWithdrawn() decimal.Decimal {
	return a.policy.monthlyWithdrawn
}

// ResetMonthlyWithdrawals zeroes the monthly counter. The counter never
// resets on its own; a scheduler or an operator has to call this.
func (a *Account) ResetMonthlyWithdrawals() {
	a.policy.monthlyWithdrawn = decimal.Zero
}

func (a *Account) RecordTransaction(tx *Transaction) {
	a.history = append(a.history, tx)
}

// Transactions returns a copy of the history in insertion order.
func (a *Account) Transactions() []*Transaction {
	out := make([]*Transaction, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Account) SetPassword(newPassword string) {
	a.credential.Set(newPassword)
}

func (a *Account) CheckPassword(password string) bool {
	return a.credential.Matches(password)
}
