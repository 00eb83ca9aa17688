package repository

import (
	"context"
	"time"

	"github.com/eaglebank/account-service/shared/models"
	sharedredis "github.com/eaglebank/account-service/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const (
	accountKeyPrefix       = "account:"
	accountNumberKeyPrefix = "account:number:"
)

// AccountReadRepository treats Redis as the primary read store (the CQRS read
// model) and falls back to PostgreSQL transparently, warming the cache on every
// cold read.
type AccountReadRepository struct {
	store   *AccountWriteRepository
	byID    *sharedredis.ViewCache[models.Account]
	numbers *sharedredis.ViewCache[string]
}

func NewAccountReadRepository(store *AccountWriteRepository, redisClient goredis.Cmdable, ttl time.Duration) *AccountReadRepository {
	return &AccountReadRepository{
		store:   store,
		byID:    sharedredis.NewViewCache[models.Account](redisClient, accountKeyPrefix, ttl),
		numbers: sharedredis.NewViewCache[string](redisClient, accountNumberKeyPrefix, 0),
	}
}

func (r *AccountReadRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if account, ok := r.byID.Get(ctx, id); ok {
		return account, nil
	}
	account, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.CacheAccount(ctx, account)
	return account, nil
}

// GetByAccountNumber resolves the number to an id through Redis when it can.
// Account numbers never change, so the mapping is stored without expiry.
func (r *AccountReadRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	if id, ok := r.numbers.Get(ctx, accountNumber); ok {
		if account, ok := r.byID.Get(ctx, *id); ok {
			return account, nil
		}
	}
	account, err := r.store.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	r.CacheAccount(ctx, account)
	return account, nil
}

// ListByCustomer always reads PostgreSQL; per-customer lists are not cached.
func (r *AccountReadRepository) ListByCustomer(ctx context.Context, customerID string) ([]*models.Account, error) {
	return r.store.ListByCustomer(ctx, customerID)
}

// CacheAccount stores or refreshes the read model for an account. Called by
// the command service after every mutation.
func (r *AccountReadRepository) CacheAccount(ctx context.Context, account *models.Account) {
	r.byID.Set(ctx, account.ID, account)
	id := account.ID
	r.numbers.Set(ctx, account.AccountNumber, &id)
}
