package command

import (
	"context"
	"errors"
	"time"

	"github.com/eaglebank/account-service/internal/eligibility"
	"github.com/eaglebank/account-service/internal/repository"
	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/events"
	"github.com/eaglebank/account-service/shared/logger"
	"github.com/eaglebank/account-service/shared/models"
	"github.com/eaglebank/account-service/shared/utils"
)

// AccountReader is the account read path used to resolve card targets.
type AccountReader interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

type DebitCardStore interface {
	Create(ctx context.Context, card *models.DebitCard) error
	GetByID(ctx context.Context, id string) (*models.DebitCard, error)
	Update(ctx context.Context, card *models.DebitCard) error
}

type DebitCardCommandService struct {
	accounts   AccountReader
	cards      DebitCardStore
	debts      eligibility.DebtLookup
	publisher  events.EventPublisher
	now        func() time.Time
	cardNumber func() (string, error)
}

func NewDebitCardCommandService(
	accounts AccountReader,
	cards DebitCardStore,
	debts eligibility.DebtLookup,
	publisher events.EventPublisher,
) *DebitCardCommandService {
	return &DebitCardCommandService{
		accounts:   accounts,
		cards:      cards,
		debts:      debts,
		publisher:  publisher,
		now:        time.Now,
		cardNumber: utils.GenerateDebitCardNumber,
	}
}

// CreateDebitCard issues a card for the account's owner with the account as
// its primary association.
func (s *DebitCardCommandService) CreateDebitCard(ctx context.Context, cmd cqrs.CreateDebitCardCommand) (*models.DebitCard, error) {
	account, err := s.resolveAccount(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}

	number, err := s.cardNumber()
	if err != nil {
		return nil, err
	}

	card := &models.DebitCard{
		ID:           utils.GenerateID(),
		CardNumber:   number,
		CustomerID:   account.CustomerID,
		Associations: []models.DebitCardAssociation{{AccountID: account.ID, Position: 1}},
		CreatedAt:    s.now().UTC(),
	}

	if err := eligibility.CheckDebts(ctx, s.debts, card.CustomerID); err != nil {
		return nil, err
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}

	s.publish(ctx, events.DebitCardCreated, events.DebitCardCreatedEvent{
		DebitCardID: card.ID,
		CustomerID:  card.CustomerID,
		AccountID:   account.ID,
	})
	logger.Info("debit card created", logger.Fields{"debitCardId": card.ID, "accountId": account.ID})
	return card, nil
}

// AssociateAccount appends the account to the card after the highest position.
func (s *DebitCardCommandService) AssociateAccount(ctx context.Context, cmd cqrs.AssociateDebitCardCommand) (*models.DebitCard, error) {
	card, err := s.cards.GetByID(ctx, cmd.DebitCardID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Debit card not found with id: %s", cmd.DebitCardID)
	}
	if err != nil {
		return nil, err
	}

	account, err := s.resolveAccount(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	if account.CustomerID != "" && account.CustomerID != card.CustomerID {
		return nil, apperr.BadRequest("Cannot associate. Provided ACCOUNT does not belong to the CUSTOMER who owns the debit card")
	}
	if card.IsAssociated(account.ID) {
		return nil, apperr.BadRequest("Account is already associated with the debit card")
	}

	association := models.DebitCardAssociation{AccountID: account.ID, Position: card.NextPosition()}
	card.Associations = append(card.Associations, association)

	err = s.cards.Update(ctx, card)
	if errors.Is(err, repository.ErrStaleVersion) {
		return nil, apperr.Conflict("Debit card %s was modified by another request. Retry the operation", card.ID)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.DebitCardAssociated, events.DebitCardAssociatedEvent{
		DebitCardID: card.ID,
		AccountID:   association.AccountID,
		Position:    association.Position,
	})
	return card, nil
}

func (s *DebitCardCommandService) resolveAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Account not found with id: %s", id)
	}
	return account, err
}

func (s *DebitCardCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.DebitCardEventsStream, eventType, data); err != nil {
		logger.Error("failed to publish event", err, logger.Fields{"type": eventType})
	}
}
