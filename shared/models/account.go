package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings   AccountType = "SAVINGS"
	AccountTypeChecking  AccountType = "CHECKING"
	AccountTypeFixedTerm AccountType = "FIXED_TERM"
)

// ParseAccountType accepts only the exact upper-case enum names.
func ParseAccountType(s string) (AccountType, bool) {
	switch t := AccountType(s); t {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeFixedTerm:
		return t, true
	}
	return "", false
}

type CustomerType string

const (
	CustomerTypePersonal CustomerType = "PERSONAL"
	CustomerTypeBusiness CustomerType = "BUSINESS"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

func ParseAccountStatus(s string) (AccountStatus, bool) {
	switch st := AccountStatus(s); st {
	case AccountStatusActive, AccountStatusInactive:
		return st, true
	}
	return "", false
}

type AccountMember struct {
	Name     string `json:"name" validate:"required"`
	LastName string `json:"lastName" validate:"required"`
	DNI      string `json:"dni" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// SavingsTerms is the SAVINGS-only part of an account.
type SavingsTerms struct {
	MaxMonthlyMovements int `json:"maxMonthlyMovements"`
}

// FixedTermTerms is the FIXED_TERM-only part of an account.
type FixedTermTerms struct {
	TermInMonths             int       `json:"termInMonths"`
	EndDay                   time.Time `json:"endDay"`
	AvailableDayForMovements int       `json:"availableDayForMovements"`
	MaxMonthlyMovements      int       `json:"maxMonthlyMovements"`
}

// Account is the write model. Exactly one of Savings / FixedTerm is set for the
// matching AccountType; CHECKING accounts carry neither.
type Account struct {
	ID                                 string          `json:"id"`
	AccountNumber                      string          `json:"accountNumber"`
	AccountType                        AccountType     `json:"accountType"`
	CustomerType                       CustomerType    `json:"customerType"`
	Balance                            decimal.Decimal `json:"balance"`
	CustomerID                         string          `json:"customerId"`
	CreatedAt                          time.Time       `json:"creationDate"`
	Status                             AccountStatus   `json:"status"`
	MonthlyMovements                   int             `json:"monthlyMovements"`
	MaintenanceFee                     decimal.Decimal `json:"maintenanceFee"`
	MaxMonthlyMovementsNoFee           int             `json:"maxMonthlyMovementsNoFee"`
	TransactionCommissionFeePercentage decimal.Decimal `json:"transactionCommissionFeePercentage"`
	Holders                            []AccountMember `json:"holders"`
	Signers                            []AccountMember `json:"signers"`
	Savings                            *SavingsTerms   `json:"savings,omitempty"`
	FixedTerm                          *FixedTermTerms `json:"fixedTerm,omitempty"`
	Version                            int             `json:"version"`
}

// MaxMonthlyMovements returns the movement cap of the account type, if it has one.
func (a *Account) MaxMonthlyMovements() (int, bool) {
	switch a.AccountType {
	case AccountTypeSavings:
		if a.Savings != nil {
			return a.Savings.MaxMonthlyMovements, true
		}
	case AccountTypeFixedTerm:
		if a.FixedTerm != nil {
			return a.FixedTerm.MaxMonthlyMovements, true
		}
	}
	return 0, false
}
