package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/eaglebank/account-service/internal/repository"
	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/models"
)

type DebitCardReader interface {
	GetByID(ctx context.Context, id string) (*models.DebitCard, error)
}

type DebitCardQueryService struct {
	cards    DebitCardReader
	accounts AccountReader
}

func NewDebitCardQueryService(cards DebitCardReader, accounts AccountReader) *DebitCardQueryService {
	return &DebitCardQueryService{cards: cards, accounts: accounts}
}

func (s *DebitCardQueryService) GetDebitCard(ctx context.Context, q cqrs.GetDebitCardQuery) (*models.DebitCardView, error) {
	card, err := s.loadCard(ctx, q.DebitCardID)
	if err != nil {
		return nil, err
	}
	return models.NewDebitCardView(card), nil
}

// GetPrimaryAccountBalance returns the balance of the account at the card's
// lowest position.
func (s *DebitCardQueryService) GetPrimaryAccountBalance(ctx context.Context, q cqrs.GetPrimaryBalanceQuery) (*models.BalanceView, error) {
	card, err := s.loadCard(ctx, q.DebitCardID)
	if err != nil {
		return nil, err
	}
	primary, ok := card.PrimaryAssociation()
	if !ok {
		return nil, fmt.Errorf("debit card %s has no associated accounts", card.ID)
	}

	account, err := s.accounts.GetByID(ctx, primary.AccountID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Account not found with id: %s", primary.AccountID)
	}
	if err != nil {
		return nil, err
	}
	return &models.BalanceView{Balance: account.Balance}, nil
}

func (s *DebitCardQueryService) loadCard(ctx context.Context, id string) (*models.DebitCard, error) {
	card, err := s.cards.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Debit card not found with id: %s", id)
	}
	return card, err
}
