package utils

import (
	"errors"
	"testing"
	"testing/iotest"
)

func TestGenerateAccountNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		n := GenerateAccountNumber()
		if !ValidateAccountNumber(n) {
			t.Fatalf("generated account number %q is not valid", n)
		}
		if seen[n] {
			t.Fatalf("duplicate account number %q", n)
		}
		seen[n] = true
	}
}

func TestGenerateDebitCardNumber(t *testing.T) {
	for i := 0; i < 50; i++ {
		n, err := GenerateDebitCardNumber()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ValidateDebitCardNumber(n) {
			t.Fatalf("generated card number %q is not valid", n)
		}
	}
}

func TestGenerateDebitCardNumber_EntropyFailure(t *testing.T) {
	entropyErr := errors.New("entropy exhausted")
	n, err := debitCardNumber(iotest.ErrReader(entropyErr))
	if !errors.Is(err, entropyErr) {
		t.Fatalf("expected entropy error, got %v", err)
	}
	if n != "" {
		t.Errorf("expected no card number, got %q", n)
	}
}

func TestValidateAccountNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "ACC-3b241101-e2bb-4255-8caf-4136c566a962", true},
		{"missing prefix", "3b241101-e2bb-4255-8caf-4136c566a962", false},
		{"not a uuid", "ACC-12345678", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateAccountNumber(tt.input); got != tt.want {
				t.Errorf("ValidateAccountNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateDebitCardNumber(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"4000000000000000", true},
		{"5000000000000000", false},
		{"400000000000000", false},
		{"40000000000000a0", false},
	}
	for _, tt := range tests {
		if got := ValidateDebitCardNumber(tt.input); got != tt.want {
			t.Errorf("ValidateDebitCardNumber(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
