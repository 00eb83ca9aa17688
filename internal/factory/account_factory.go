// Package factory builds new accounts with the defaults configured for their type.
package factory

import (
	"time"

	"github.com/eaglebank/account-service/internal/config"
	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/models"
	"github.com/eaglebank/account-service/shared/utils"
	"github.com/shopspring/decimal"
)

type builder func(f *Factory, account *models.Account, cmd cqrs.CreateAccountCommand) error

var builders = map[models.AccountType]builder{
	models.AccountTypeSavings:   buildSavings,
	models.AccountTypeChecking:  buildChecking,
	models.AccountTypeFixedTerm: buildFixedTerm,
}

type Factory struct {
	rules         config.AccountRules
	now           func() time.Time
	newID         func() string
	accountNumber func() string
}

type Option func(*Factory)

func WithClock(now func() time.Time) Option {
	return func(f *Factory) { f.now = now }
}

func WithIDGenerator(newID, accountNumber func() string) Option {
	return func(f *Factory) {
		f.newID = newID
		f.accountNumber = accountNumber
	}
}

func NewFactory(rules config.AccountRules, opts ...Option) *Factory {
	f := &Factory{
		rules:         rules,
		now:           time.Now,
		newID:         utils.GenerateID,
		accountNumber: utils.GenerateAccountNumber,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Build returns a new ACTIVE account for cmd. It performs no I/O.
func (f *Factory) Build(cmd cqrs.CreateAccountCommand, customerType models.CustomerType) (*models.Account, error) {
	accountType, ok := models.ParseAccountType(cmd.AccountType)
	if !ok {
		return nil, apperr.InvalidAccountType()
	}

	account := &models.Account{
		ID:                                 f.newID(),
		AccountNumber:                      f.accountNumber(),
		AccountType:                        accountType,
		CustomerType:                       customerType,
		Balance:                            cmd.InitialBalance,
		CustomerID:                         cmd.CustomerID,
		CreatedAt:                          f.now().UTC(),
		Status:                             models.AccountStatusActive,
		MonthlyMovements:                   0,
		MaintenanceFee:                     decimal.Zero,
		TransactionCommissionFeePercentage: decimal.Zero,
		Holders:                            copyMembers(cmd.Holders),
		Signers:                            copyMembers(cmd.Signers),
	}

	if err := builders[accountType](f, account, cmd); err != nil {
		return nil, err
	}
	return account, nil
}

func buildSavings(f *Factory, account *models.Account, _ cqrs.CreateAccountCommand) error {
	account.MaxMonthlyMovementsNoFee = f.rules.SavingsMaxMonthlyMovementsNoFee
	account.TransactionCommissionFeePercentage = f.rules.SavingsCommissionPercentage
	account.Savings = &models.SavingsTerms{MaxMonthlyMovements: f.rules.SavingsMaxMonthlyMovements}
	return nil
}

func buildChecking(f *Factory, account *models.Account, _ cqrs.CreateAccountCommand) error {
	account.MaintenanceFee = f.rules.CheckingMaintenanceFee
	account.MaxMonthlyMovementsNoFee = f.rules.CheckingMaxMonthlyMovementsNoFee
	account.TransactionCommissionFeePercentage = f.rules.CheckingCommissionPercentage
	return nil
}

func buildFixedTerm(f *Factory, account *models.Account, cmd cqrs.CreateAccountCommand) error {
	if cmd.TermInMonths == nil || *cmd.TermInMonths <= 0 {
		return apperr.BadRequest("termInMonths is required for FIXED_TERM accounts")
	}
	account.MaxMonthlyMovementsNoFee = f.rules.FixedTermMaxMonthlyMovementsNoFee
	account.TransactionCommissionFeePercentage = f.rules.FixedTermCommissionPercentage
	account.FixedTerm = &models.FixedTermTerms{
		TermInMonths:             *cmd.TermInMonths,
		EndDay:                   addMonths(account.CreatedAt, *cmd.TermInMonths),
		AvailableDayForMovements: f.rules.FixedTermAvailableDayForMovements,
		MaxMonthlyMovements:      f.rules.FixedTermMaxMonthlyMovements,
	}
	return nil
}

// addMonths moves t forward by months, clamping the day to the last day of the
// target month (Jan 31 + 1 month is Feb 28/29, not early March).
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day(); day > last {
		day = last
	}
	hour, minute, sec := t.Clock()
	return time.Date(target.Year(), target.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func copyMembers(members []models.AccountMember) []models.AccountMember {
	out := make([]models.AccountMember, len(members))
	copy(out, members)
	return out
}
