package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountView is the API projection of an account. Type-specific fields are
// only populated for the account types that define them.
type AccountView struct {
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
	MaxMonthlyMovements                *int            `json:"maxMonthlyMovements,omitempty"`
	TermInMonths                       *int            `json:"termInMonths,omitempty"`
	EndDay                             *time.Time      `json:"endDay,omitempty"`
	AvailableDayForMovements           *int            `json:"availableDayForMovements,omitempty"`
	Holders                            []AccountMember `json:"holders"`
	Signers                            []AccountMember `json:"signers"`
}

type BalanceView struct {
	Balance decimal.Decimal `json:"balance"`
}

// DebitCardView is the API projection of a debit card including its associations.
type DebitCardView struct {
	ID           string                 `json:"id"`
	CardNumber   string                 `json:"cardNumber"`
	CustomerID   string                 `json:"customerId"`
	Associations []DebitCardAssociation `json:"associations"`
}

func NewAccountView(a *Account) *AccountView {
	view := &AccountView{
		ID:                                 a.ID,
		AccountNumber:                      a.AccountNumber,
		AccountType:                        a.AccountType,
		CustomerType:                       a.CustomerType,
		Balance:                            a.Balance,
		CustomerID:                         a.CustomerID,
		CreatedAt:                          a.CreatedAt,
		Status:                             a.Status,
		MonthlyMovements:                   a.MonthlyMovements,
		MaintenanceFee:                     a.MaintenanceFee,
		MaxMonthlyMovementsNoFee:           a.MaxMonthlyMovementsNoFee,
		TransactionCommissionFeePercentage: a.TransactionCommissionFeePercentage,
		Holders:                            nonNilMembers(a.Holders),
		Signers:                            nonNilMembers(a.Signers),
	}
	if limit, ok := a.MaxMonthlyMovements(); ok {
		view.MaxMonthlyMovements = &limit
	}
	if ft := a.FixedTerm; ft != nil {
		term, day, end := ft.TermInMonths, ft.AvailableDayForMovements, ft.EndDay
		view.TermInMonths = &term
		view.AvailableDayForMovements = &day
		view.EndDay = &end
	}
	return view
}

func NewDebitCardView(d *DebitCard) *DebitCardView {
	associations := make([]DebitCardAssociation, len(d.Associations))
	copy(associations, d.Associations)
	return &DebitCardView{
		ID:           d.ID,
		CardNumber:   d.CardNumber,
		CustomerID:   d.CustomerID,
		Associations: associations,
	}
}

func nonNilMembers(members []AccountMember) []AccountMember {
	if members == nil {
		return []AccountMember{}
	}
	return members
}
