package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/eaglebank/account-service/shared/models"
)

// CustomerClient reads customer profiles from the customer service.
type CustomerClient struct {
	baseURL    string
	httpClient *http.Client
	guard      *Guard
}

func NewCustomerClient(baseURL string, httpClient *http.Client, guard *Guard) *CustomerClient {
	return &CustomerClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
		guard:      guard,
	}
}

func (c *CustomerClient) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	endpoint := fmt.Sprintf("%s/customers/%s", c.baseURL, url.PathEscape(customerID))

	var customer models.Customer
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		if err := getJSON(ctx, c.httpClient, endpoint, &customer); err != nil {
			return err
		}
		if customer.Type != models.CustomerTypePersonal && customer.Type != models.CustomerTypeBusiness {
			return fmt.Errorf("customer %s has unknown type %q", customerID, customer.Type)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
