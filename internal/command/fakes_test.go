package command

import (
	"context"
	"fmt"
	"sync"

	"github.com/eaglebank/account-service/internal/repository"
	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/models"
)

// ---- in-memory stores ----

type memAccountStore struct {
	mu       sync.Mutex
	accounts map[string]models.Account
	updateFn func(*models.Account) error
}

func newMemAccountStore(accounts ...*models.Account) *memAccountStore {
	s := &memAccountStore{accounts: map[string]models.Account{}}
	for _, a := range accounts {
		s.accounts[a.ID] = *a
	}
	return s
}

func (s *memAccountStore) Create(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.ID]; exists {
		return fmt.Errorf("duplicate account %s", account.ID)
	}
	account.Version = 1
	s.accounts[account.ID] = *account
	return nil
}

func (s *memAccountStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (s *memAccountStore) Update(ctx context.Context, account *models.Account) error {
	if s.updateFn != nil {
		if err := s.updateFn(account); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.accounts[account.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Version != account.Version {
		return repository.ErrStaleVersion
	}
	account.Version++
	s.accounts[account.ID] = *account
	return nil
}

type memCardStore struct {
	mu    sync.Mutex
	cards map[string]models.DebitCard
}

func newMemCardStore(cards ...*models.DebitCard) *memCardStore {
	s := &memCardStore{cards: map[string]models.DebitCard{}}
	for _, c := range cards {
		s.cards[c.ID] = cloneCard(c)
	}
	return s
}

func cloneCard(c *models.DebitCard) models.DebitCard {
	out := *c
	out.Associations = append([]models.DebitCardAssociation(nil), c.Associations...)
	return out
}

func (s *memCardStore) Create(ctx context.Context, card *models.DebitCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	card.Version = 1
	s.cards[card.ID] = cloneCard(card)
	return nil
}

func (s *memCardStore) GetByID(ctx context.Context, id string) (*models.DebitCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneCard(&c)
	return &out, nil
}

func (s *memCardStore) Update(ctx context.Context, card *models.DebitCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.cards[card.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Version != card.Version {
		return repository.ErrStaleVersion
	}
	card.Version++
	s.cards[card.ID] = cloneCard(card)
	return nil
}

// ---- collaborators ----

type recordingCache struct {
	cached []models.Account
}

func (c *recordingCache) CacheAccount(ctx context.Context, account *models.Account) {
	c.cached = append(c.cached, *account)
}

type publishedEvent struct {
	stream, eventType string
	data              any
}

type recordingPublisher struct {
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	p.events = append(p.events, publishedEvent{stream: stream, eventType: eventType, data: data})
	return p.err
}

type mockEligibility struct {
	checkFn func(cqrs.CreateAccountCommand) (*models.Customer, error)
}

func (m *mockEligibility) Check(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Customer, error) {
	return m.checkFn(cmd)
}

type mockBuilder struct {
	buildFn func(cqrs.CreateAccountCommand, models.CustomerType) (*models.Account, error)
}

func (m *mockBuilder) Build(cmd cqrs.CreateAccountCommand, customerType models.CustomerType) (*models.Account, error) {
	return m.buildFn(cmd, customerType)
}

type stubDebts struct {
	debts *models.CreditDebts
	err   error
}

func (s *stubDebts) GetCreditDebts(ctx context.Context, customerID string) (*models.CreditDebts, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.debts == nil {
		return &models.CreditDebts{Message: "Customer has no debts"}, nil
	}
	return s.debts, nil
}
