// Package eligibility decides whether an account creation request is admissible
// for the requesting customer. The checks run in a fixed order and stop at the
// first violation, so the order determines which error a caller sees.
package eligibility

import (
	"context"
	"fmt"

	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/models"
)

type CustomerLookup interface {
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)
}

type DebtLookup interface {
	GetCreditDebts(ctx context.Context, customerID string) (*models.CreditDebts, error)
}

type CreditLookup interface {
	DebtLookup
	ListCreditCards(ctx context.Context, customerID string) ([]models.CreditCard, error)
}

type AccountLister interface {
	ListByCustomer(ctx context.Context, customerID string) ([]*models.Account, error)
}

type Pipeline struct {
	customers CustomerLookup
	credits   CreditLookup
	accounts  AccountLister
}

func NewPipeline(customers CustomerLookup, credits CreditLookup, accounts AccountLister) *Pipeline {
	return &Pipeline{customers: customers, credits: credits, accounts: accounts}
}

// Check validates cmd and returns the resolved customer on success.
func (p *Pipeline) Check(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Customer, error) {
	accountType, ok := models.ParseAccountType(cmd.AccountType)
	if !ok {
		return nil, apperr.InvalidAccountType()
	}

	customer, err := p.customers.GetCustomer(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Status == models.CustomerStatusInactive {
		return nil, apperr.BadRequest("Customer has INACTIVE status")
	}

	switch customer.Type {
	case models.CustomerTypePersonal:
		if customer.SubType == models.CustomerSubTypeVIP {
			if err := p.checkVIP(ctx, accountType, cmd.CustomerID); err != nil {
				return nil, err
			}
		}
		if err := p.checkPersonalPortfolio(ctx, accountType, cmd.CustomerID); err != nil {
			return nil, err
		}
	case models.CustomerTypeBusiness:
		if customer.SubType == models.CustomerSubTypePYME {
			if err := p.checkPYME(ctx, accountType, cmd.CustomerID); err != nil {
				return nil, err
			}
		}
		if accountType != models.AccountTypeChecking {
			return nil, apperr.BadRequest("BUSINESS customers cannot have %s account", accountType)
		}
	default:
		return nil, fmt.Errorf("customer %s has unsupported type %q", customer.ID, customer.Type)
	}

	if err := checkMembers(customer.Type, cmd); err != nil {
		return nil, err
	}

	if err := CheckDebts(ctx, p.credits, cmd.CustomerID); err != nil {
		return nil, err
	}

	return customer, nil
}

// CheckDebts fails with the credit service's own message when the customer has
// any outstanding credit or credit card debt.
func CheckDebts(ctx context.Context, credits DebtLookup, customerID string) error {
	debts, err := credits.GetCreditDebts(ctx, customerID)
	if err != nil {
		return err
	}
	if debts.HasDebts() {
		return apperr.BadRequest("%s", debts.Message)
	}
	return nil
}

func (p *Pipeline) checkVIP(ctx context.Context, accountType models.AccountType, customerID string) error {
	if accountType != models.AccountTypeSavings {
		return apperr.BadRequest("PERSONAL VIP customers can just have SAVINGS account")
	}
	return p.requireCreditCard(ctx, customerID, "PERSONAL VIP customers must have at least one CREDIT CARD for SAVINGS account")
}

func (p *Pipeline) checkPYME(ctx context.Context, accountType models.AccountType, customerID string) error {
	if accountType != models.AccountTypeChecking {
		return apperr.BadRequest("BUSINESS PYME customers can just have CHECKING account")
	}
	return p.requireCreditCard(ctx, customerID, "BUSINESS PYME customers must have at least one CREDIT CARD for CHECKING account")
}

func (p *Pipeline) requireCreditCard(ctx context.Context, customerID, message string) error {
	cards, err := p.credits.ListCreditCards(ctx, customerID)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return apperr.BadRequest("%s", message)
	}
	return nil
}

// checkPersonalPortfolio allows one SAVINGS and one CHECKING account per
// personal customer. Inactive accounts still count.
func (p *Pipeline) checkPersonalPortfolio(ctx context.Context, accountType models.AccountType, customerID string) error {
	if accountType == models.AccountTypeFixedTerm {
		return nil
	}
	existing, err := p.accounts.ListByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	for _, account := range existing {
		if account.AccountType == accountType {
			return apperr.BadRequest("PERSONAL customers can only have one %s account", accountType)
		}
	}
	return nil
}

func checkMembers(customerType models.CustomerType, cmd cqrs.CreateAccountCommand) error {
	if customerType == models.CustomerTypeBusiness {
		if len(cmd.Holders) == 0 {
			return apperr.BadRequest("At least one HOLDER is necessary for BUSINESS accounts")
		}
		return nil
	}
	if len(cmd.Holders) > 0 {
		return apperr.BadRequest("HOLDERS are not valid for PERSONAL accounts")
	}
	if len(cmd.Signers) > 0 {
		return apperr.BadRequest("AUTHORIZED SIGNERS are not valid for PERSONAL accounts")
	}
	return nil
}
