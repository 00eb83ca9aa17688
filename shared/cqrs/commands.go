package cqrs

import (
	"github.com/eaglebank/account-service/shared/models"
	"github.com/shopspring/decimal"
)

// CreateAccountCommand carries an account creation request. AccountType stays a
// raw string until the eligibility pipeline has validated it.
type CreateAccountCommand struct {
	AccountType    string
	CustomerID     string
	InitialBalance decimal.Decimal
	Holders        []models.AccountMember
	Signers        []models.AccountMember
	TermInMonths   *int
}

// PatchAccountCommand updates only the fields that are non-nil.
type PatchAccountCommand struct {
	AccountID        string
	Balance          *decimal.Decimal
	MonthlyMovements *int
	Status           *models.AccountStatus
}

type DeleteAccountCommand struct {
	AccountID string
}

type CreateDebitCardCommand struct {
	AccountID string
}

type AssociateDebitCardCommand struct {
	DebitCardID string
	AccountID   string
}
