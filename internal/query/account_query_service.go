package query

import (
	"context"
	"errors"

	"github.com/eaglebank/account-service/internal/repository"
	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/models"
	"github.com/eaglebank/account-service/shared/utils"
)

// AccountReader is the Redis-first read model.
type AccountReader interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*models.Account, error)
}

type AccountQueryService struct {
	readRepo AccountReader
}

func NewAccountQueryService(readRepo AccountReader) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	account, err := s.readRepo.GetByID(ctx, q.AccountID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Account not found with id: %s", q.AccountID)
	}
	if err != nil {
		return nil, err
	}
	return models.NewAccountView(account), nil
}

func (s *AccountQueryService) GetAccountByNumber(ctx context.Context, q cqrs.GetAccountByNumberQuery) (*models.AccountView, error) {
	account, err := s.byNumber(ctx, q.AccountNumber)
	if err != nil {
		return nil, err
	}
	return models.NewAccountView(account), nil
}

// ListAccountsByCustomer returns every account of the customer, inactive ones
// included. An unknown customer yields an empty list.
func (s *AccountQueryService) ListAccountsByCustomer(ctx context.Context, q cqrs.ListAccountsQuery) ([]*models.AccountView, error) {
	accounts, err := s.readRepo.ListByCustomer(ctx, q.CustomerID)
	if err != nil {
		return nil, err
	}
	views := make([]*models.AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, models.NewAccountView(account))
	}
	return views, nil
}

func (s *AccountQueryService) GetBalanceByNumber(ctx context.Context, q cqrs.GetAccountByNumberQuery) (*models.BalanceView, error) {
	account, err := s.byNumber(ctx, q.AccountNumber)
	if err != nil {
		return nil, err
	}
	return &models.BalanceView{Balance: account.Balance}, nil
}

// byNumber answers a malformed account number with NotFound without touching
// the stores.
func (s *AccountQueryService) byNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	if !utils.ValidateAccountNumber(accountNumber) {
		return nil, apperr.NotFound("Account not found with account number: %s", accountNumber)
	}
	account, err := s.readRepo.GetByAccountNumber(ctx, accountNumber)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Account not found with account number: %s", accountNumber)
	}
	return account, err
}
