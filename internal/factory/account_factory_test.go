package factory

import (
	"strings"
	"testing"
	"time"

	"github.com/eaglebank/account-service/internal/config"
	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/models"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC)

func testRules() config.AccountRules {
	return config.AccountRules{
		SavingsMaxMonthlyMovements:        5,
		SavingsMaxMonthlyMovementsNoFee:   4,
		SavingsCommissionPercentage:       decimal.RequireFromString("1.5"),
		CheckingMaintenanceFee:            decimal.RequireFromString("12.50"),
		CheckingMaxMonthlyMovementsNoFee:  10,
		CheckingCommissionPercentage:      decimal.RequireFromString("0.5"),
		FixedTermMaxMonthlyMovements:      1,
		FixedTermMaxMonthlyMovementsNoFee: 1,
		FixedTermAvailableDayForMovements: 15,
		FixedTermCommissionPercentage:     decimal.Zero,
	}
}

func newTestFactory() *Factory {
	return NewFactory(testRules(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "acc-id" }, func() string { return "ACC-fixed" }),
	)
}

func TestBuild_Savings(t *testing.T) {
	cmd := cqrs.CreateAccountCommand{
		AccountType:    "SAVINGS",
		CustomerID:     "c-1",
		InitialBalance: decimal.RequireFromString("100.00"),
	}

	account, err := newTestFactory().Build(cmd, models.CustomerTypePersonal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID != "acc-id" || account.AccountNumber != "ACC-fixed" {
		t.Errorf("unexpected identity %s / %s", account.ID, account.AccountNumber)
	}
	if account.Status != models.AccountStatusActive || account.MonthlyMovements != 0 {
		t.Errorf("expected fresh ACTIVE account, got %s with %d movements", account.Status, account.MonthlyMovements)
	}
	if account.CustomerType != models.CustomerTypePersonal {
		t.Errorf("expected PERSONAL, got %s", account.CustomerType)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("unexpected balance %s", account.Balance)
	}
	if !account.MaintenanceFee.IsZero() {
		t.Errorf("expected zero maintenance fee, got %s", account.MaintenanceFee)
	}
	if max, ok := account.MaxMonthlyMovements(); !ok || max != 5 {
		t.Errorf("expected cap 5, got %d (%v)", max, ok)
	}
	if account.MaxMonthlyMovementsNoFee != 4 {
		t.Errorf("expected 4 free movements, got %d", account.MaxMonthlyMovementsNoFee)
	}
	if account.FixedTerm != nil {
		t.Error("savings account must not carry fixed term details")
	}
	if !account.CreatedAt.Equal(fixedNow) {
		t.Errorf("unexpected creation date %s", account.CreatedAt)
	}
}

func TestBuild_Checking(t *testing.T) {
	holders := []models.AccountMember{{Name: "Ana", LastName: "Lopez", DNI: "1", Email: "ana@example.com"}}
	cmd := cqrs.CreateAccountCommand{AccountType: "CHECKING", CustomerID: "c-2", Holders: holders}

	account, err := newTestFactory().Build(cmd, models.CustomerTypeBusiness)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.MaintenanceFee.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("unexpected maintenance fee %s", account.MaintenanceFee)
	}
	if _, ok := account.MaxMonthlyMovements(); ok {
		t.Error("checking accounts have no movement cap")
	}
	if len(account.Holders) != 1 || account.Holders[0].DNI != "1" {
		t.Errorf("unexpected holders %+v", account.Holders)
	}
	holders[0].DNI = "changed"
	if account.Holders[0].DNI != "1" {
		t.Error("holders must be copied")
	}
	if account.Signers == nil {
		t.Error("signers must be an empty list, not nil")
	}
}

func TestBuild_FixedTerm(t *testing.T) {
	term := 6
	cmd := cqrs.CreateAccountCommand{AccountType: "FIXED_TERM", CustomerID: "c-1", TermInMonths: &term}

	account, err := newTestFactory().Build(cmd, models.CustomerTypePersonal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ft := account.FixedTerm
	if ft == nil {
		t.Fatal("expected fixed term details")
	}
	if ft.TermInMonths != 6 || ft.AvailableDayForMovements != 15 || ft.MaxMonthlyMovements != 1 {
		t.Errorf("unexpected fixed term details %+v", ft)
	}
	if want := time.Date(2024, time.July, 31, 10, 0, 0, 0, time.UTC); !ft.EndDay.Equal(want) {
		t.Errorf("expected end day %s, got %s", want, ft.EndDay)
	}
}

func TestBuild_FixedTermEndDayClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name    string
		created time.Time
		term    int
		want    time.Time
	}{
		{"jan 31 into leap february", fixedNow, 1, time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC)},
		{"jan 31 into february", time.Date(2023, time.January, 31, 8, 30, 0, 0, time.UTC), 1, time.Date(2023, time.February, 28, 8, 30, 0, 0, time.UTC)},
		{"aug 31 into november", time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC), 3, time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC)},
		{"oct 31 across year end", time.Date(2024, time.October, 31, 12, 0, 0, 0, time.UTC), 4, time.Date(2025, time.February, 28, 12, 0, 0, 0, time.UTC)},
		{"mid month unchanged", time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC), 12, time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := tt.created
			f := NewFactory(testRules(), WithClock(func() time.Time { return created }))
			term := tt.term
			account, err := f.Build(cqrs.CreateAccountCommand{AccountType: "FIXED_TERM", CustomerID: "c-1", TermInMonths: &term}, models.CustomerTypePersonal)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !account.FixedTerm.EndDay.Equal(tt.want) {
				t.Errorf("expected end day %s, got %s", tt.want, account.FixedTerm.EndDay)
			}
		})
	}
}

func TestBuild_FixedTermRequiresTerm(t *testing.T) {
	zero := 0
	for _, term := range []*int{nil, &zero} {
		_, err := newTestFactory().Build(cqrs.CreateAccountCommand{AccountType: "FIXED_TERM", TermInMonths: term}, models.CustomerTypePersonal)
		if !apperr.Is(err, apperr.KindBadRequest) || !strings.Contains(err.Error(), "termInMonths") {
			t.Errorf("expected termInMonths BadRequest, got %v", err)
		}
	}
}

func TestBuild_UnknownType(t *testing.T) {
	_, err := newTestFactory().Build(cqrs.CreateAccountCommand{AccountType: "CREDIT"}, models.CustomerTypePersonal)
	if !apperr.Is(err, apperr.KindInvalidAccountType) {
		t.Fatalf("expected InvalidAccountType, got %v", err)
	}
}

func TestNewFactory_DefaultGenerators(t *testing.T) {
	account, err := NewFactory(testRules()).Build(cqrs.CreateAccountCommand{AccountType: "SAVINGS"}, models.CustomerTypePersonal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(account.AccountNumber, "ACC-") {
		t.Errorf("expected ACC- prefix, got %s", account.AccountNumber)
	}
	if account.ID == "" {
		t.Error("expected generated id")
	}
}
