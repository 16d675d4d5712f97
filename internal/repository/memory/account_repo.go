package memory

import (
	"context"
	"fmt"
	"sync"

	"bookkeeper/internal/domain"
	"bookkeeper/internal/repository"
)

type AccountRepository struct {
	mu          sync.RWMutex
	accounts    map[string]*domain.Account
	holderIndex map[string][]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:    make(map[string]*domain.Account),
		holderIndex: make(map[string][]string),
	}
}

func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.ID()]; exists {
		return fmt.Errorf("%w: account %s", repository.ErrDuplicate, account.ID())
	}

	r.accounts[account.ID()] = account
	r.holderIndex[account.Holder()] = append(r.holderIndex[account.Holder()], account.ID())

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[id]
	if !exists {
		return nil, fmt.Errorf("%w: account %s", repository.ErrNotFound, id)
	}
	return account, nil
}

func (r *AccountRepository) GetByHolder(ctx context.Context, holder string) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accountIDs, exists := r.holderIndex[holder]
	if !exists {
		return nil, fmt.Errorf("%w: holder %s", repository.ErrNotFound, holder)
	}

	var result []*domain.Account
	for _, id := range accountIDs {
		if account, exists := r.accounts[id]; exists {
			result = append(result, account)
		}
	}

	return result, nil
}

func (r *AccountRepository) All(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		result = append(result, account)
	}

	return result, nil
}
