package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bookkeeper/internal/domain"
	"bookkeeper/internal/repository"
)

type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	index        map[string][]string
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		transactions: make(map[string]*domain.Transaction),
		index:        make(map[string][]string),
	}
}

func (r *TransactionRepository) Save(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transactions[tx.ID]; exists {
		return fmt.Errorf("%w: transaction %s", repository.ErrDuplicate, tx.ID)
	}

	r.transactions[tx.ID] = tx

	if tx.FromAccountID != "" {
		r.index[tx.FromAccountID] = append(r.index[tx.FromAccountID], tx.ID)
	}
	if tx.ToAccountID != "" {
		r.index[tx.ToAccountID] = append(r.index[tx.ToAccountID], tx.ID)
	}

	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, exists := r.transactions[id]
	if !exists {
		return nil, fmt.Errorf("%w: transaction %s", repository.ErrNotFound, id)
	}
	return tx, nil
}

func (r *TransactionRepository) GetByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transactionIDs, exists := r.index[accountID]
	if !exists {
		return nil, fmt.Errorf("%w: account %s", repository.ErrNotFound, accountID)
	}

	sort.Slice(transactionIDs, func(i, j int) bool {
		return r.transactions[transactionIDs[i]].CreatedAt.After(r.transactions[transactionIDs[j]].CreatedAt)
	})

	start := offset
	end := offset + limit
	if end > len(transactionIDs) {
		end = len(transactionIDs)
	}
	if start >= len(transactionIDs) {
		return []*domain.Transaction{}, nil
	}

	var result []*domain.Transaction
	for _, id := range transactionIDs[start:end] {
		result = append(result, r.transactions[id])
	}

	return result, nil
}

func (r *TransactionRepository) GetByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Transaction
	for _, tx := range r.transactions {
		if !tx.CreatedAt.Before(from) && !tx.CreatedAt.After(to) {
			result = append(result, tx)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
