// Package budget tracks spending against per-category limits. It is
// deliberately independent of accounts and transactions; nothing links a
// transaction to a category automatically.
package budget

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrUnknownCategory = errors.New("unknown budget category")

// AlertSink receives overrun warnings. Delivery is fire-and-forget; a sink
// must not block the caller.
type AlertSink interface {
	BudgetExceeded(category string, spent, limit decimal.Decimal)
}

type Manager struct {
	mu       sync.RWMutex
	limits   map[string]decimal.Decimal
	spending map[string]decimal.Decimal
	sink     AlertSink
	logger   *slog.Logger
}

func NewManager(sink AlertSink, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		limits:   make(map[string]decimal.Decimal),
		spending: make(map[string]decimal.Decimal),
		sink:     sink,
		logger:   logger,
	}
}

// SetLimit inserts or overwrites the limit for a category and resets its
// spend counter to zero.
func (m *Manager) SetLimit(category string, limit decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.limits[category] = limit
	m.spending[category] = decimal.Zero

	m.logger.Info("Budget limit set",
		slog.String("category", category),
		slog.String("limit", limit.String()))
}

// AddExpense adds amount to the category's cumulative spend. Overrunning the
// limit is not an error: every call that leaves the spend above the limit
// emits one warning to the sink and still succeeds.
func (m *Manager) AddExpense(category string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	spent, exists := m.spending[category]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	spent = spent.Add(amount)
	m.spending[category] = spent

	limit := m.limits[category]
	if spent.GreaterThan(limit) {
		m.logger.Warn("Budget exceeded",
			slog.String("category", category),
			slog.String("spent", spent.String()),
			slog.String("limit", limit.String()))
		if m.sink != nil {
			m.sink.BudgetExceeded(category, spent, limit)
		}
	}

	return nil
}

// Spent returns the cumulative spend for a category.
func (m *Manager) Spent(category string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	spent, exists := m.spending[category]
	if !exists {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return spent, nil
}

// Status returns a copy of the category to spend mapping.
func (m *Manager) Status() map[string]decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := make(map[string]decimal.Decimal, len(m.spending))
	for category, spent := range m.spending {
		status[category] = spent
	}
	return status
}
