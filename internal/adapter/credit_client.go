package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/eaglebank/account-service/shared/models"
)

// CreditClient reads credit cards and debt summaries from the credit service.
type CreditClient struct {
	baseURL    string
	httpClient *http.Client
	guard      *Guard
}

func NewCreditClient(baseURL string, httpClient *http.Client, guard *Guard) *CreditClient {
	return &CreditClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
		guard:      guard,
	}
}

func (c *CreditClient) ListCreditCards(ctx context.Context, customerID string) ([]models.CreditCard, error) {
	endpoint := fmt.Sprintf("%s/credit-card/by-customer/%s", c.baseURL, url.PathEscape(customerID))

	var cards []models.CreditCard
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		return getJSON(ctx, c.httpClient, endpoint, &cards)
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *CreditClient) GetCreditDebts(ctx context.Context, customerID string) (*models.CreditDebts, error) {
	endpoint := fmt.Sprintf("%s/validate-debts/%s", c.baseURL, url.PathEscape(customerID))

	var debts models.CreditDebts
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		return getJSON(ctx, c.httpClient, endpoint, &debts)
	})
	if err != nil {
		return nil, err
	}
	return &debts, nil
}
