package command

import (
	"context"
	"errors"

	"github.com/eaglebank/account-service/internal/repository"
	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/events"
	"github.com/eaglebank/account-service/shared/logger"
	"github.com/eaglebank/account-service/shared/models"
)

type Eligibility interface {
	Check(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Customer, error)
}

type AccountBuilder interface {
	Build(cmd cqrs.CreateAccountCommand, customerType models.CustomerType) (*models.Account, error)
}

// AccountStore is the PostgreSQL write model.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
}

// AccountCache refreshes the Redis read model after a write.
type AccountCache interface {
	CacheAccount(ctx context.Context, account *models.Account)
}

// AccountCommandService writes account state and keeps the read model in sync.
type AccountCommandService struct {
	eligibility Eligibility
	factory     AccountBuilder
	writeRepo   AccountStore
	readRepo    AccountCache
	publisher   events.EventPublisher
}

func NewAccountCommandService(
	eligibility Eligibility,
	factory AccountBuilder,
	writeRepo AccountStore,
	readRepo AccountCache,
	publisher events.EventPublisher,
) *AccountCommandService {
	return &AccountCommandService{
		eligibility: eligibility,
		factory:     factory,
		writeRepo:   writeRepo,
		readRepo:    readRepo,
		publisher:   publisher,
	}
}

// CreateAccount admits cmd through the eligibility checks, builds the account
// for the resolved customer type and stores it.
func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	customer, err := s.eligibility.Check(ctx, cmd)
	if err != nil {
		return nil, err
	}

	account, err := s.factory.Build(cmd, customer.Type)
	if err != nil {
		return nil, err
	}
	if err := s.writeRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.readRepo.CacheAccount(ctx, account)
	s.publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		AccountType:   string(account.AccountType),
		CustomerID:    account.CustomerID,
		CustomerType:  string(account.CustomerType),
	})
	logger.Info("account created", logger.Fields{
		"accountId":   account.ID,
		"accountType": account.AccountType,
		"customerId":  account.CustomerID,
	})
	return account, nil
}

func (s *AccountCommandService) PatchAccount(ctx context.Context, cmd cqrs.PatchAccountCommand) (*models.Account, error) {
	account, err := s.loadAccount(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	if err := applyPatch(cmd, account); err != nil {
		return nil, err
	}
	if err := s.save(ctx, account); err != nil {
		return nil, err
	}

	s.publish(ctx, events.AccountEventsStream, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID:        account.ID,
		Balance:          account.Balance.String(),
		MonthlyMovements: account.MonthlyMovements,
		Status:           string(account.Status),
	})
	return account, nil
}

// DeleteAccount marks the account INACTIVE. The row is kept.
func (s *AccountCommandService) DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error {
	account, err := s.loadAccount(ctx, cmd.AccountID)
	if err != nil {
		return err
	}
	inactive := models.AccountStatusInactive
	if err := applyPatch(cqrs.PatchAccountCommand{AccountID: cmd.AccountID, Status: &inactive}, account); err != nil {
		return err
	}
	if err := s.save(ctx, account); err != nil {
		return err
	}

	s.publish(ctx, events.AccountEventsStream, events.AccountDeleted, events.AccountDeletedEvent{
		AccountID:  account.ID,
		CustomerID: account.CustomerID,
	})
	logger.Info("account deactivated", logger.Fields{"accountId": account.ID})
	return nil
}

func (s *AccountCommandService) loadAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.writeRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Account not found with id: %s", id)
	}
	return account, err
}

func (s *AccountCommandService) save(ctx context.Context, account *models.Account) error {
	err := s.writeRepo.Update(ctx, account)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("Account not found with id: %s", account.ID)
	case errors.Is(err, repository.ErrStaleVersion):
		return apperr.Conflict("Account %s was modified by another request. Retry the operation", account.ID)
	case err != nil:
		return err
	}
	s.readRepo.CacheAccount(ctx, account)
	return nil
}

func (s *AccountCommandService) publish(ctx context.Context, stream, eventType string, data any) {
	if err := s.publisher.Publish(ctx, stream, eventType, data); err != nil {
		logger.Error("failed to publish event", err, logger.Fields{"type": eventType})
	}
}
