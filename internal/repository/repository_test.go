package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/eaglebank/account-service/shared/models"
	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pq.Error{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"foreign key violation", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccountDocuments_FixedTermSurvivesStorage(t *testing.T) {
	end := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	account := &models.Account{
		ID:          "acc-1",
		AccountType: models.AccountTypeFixedTerm,
		FixedTerm: &models.FixedTermTerms{
			TermInMonths: 12, EndDay: end, AvailableDayForMovements: 15, MaxMonthlyMovements: 1,
		},
	}

	holders, signers, details, err := encodeAccountDocuments(account)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(holders) != "[]" || string(signers) != "[]" {
		t.Errorf("expected empty member lists, got %s and %s", holders, signers)
	}

	var decoded models.Account
	decoded.ID = "acc-1"
	if err := decodeAccountDocuments(&decoded, holders, signers, details); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Savings != nil {
		t.Error("fixed term account must not decode savings terms")
	}
	if decoded.FixedTerm == nil || !decoded.FixedTerm.EndDay.Equal(end) || decoded.FixedTerm.TermInMonths != 12 {
		t.Errorf("unexpected fixed term details %+v", decoded.FixedTerm)
	}
	if max, ok := decoded.MaxMonthlyMovements(); !ok || max != 1 {
		t.Errorf("expected cap 1, got %d (%v)", max, ok)
	}
}

func TestDecodeAccountDocuments_RejectsCorruptPayload(t *testing.T) {
	var account models.Account
	err := decodeAccountDocuments(&account, []byte(`[]`), []byte(`{`), []byte(`{}`))
	if err == nil {
		t.Fatal("expected decode error")
	}
}
