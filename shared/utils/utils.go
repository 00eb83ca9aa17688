package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const accountNumberPrefix = "ACC-"

// GenerateID returns a random UUID used as the primary key of stored records.
func GenerateID() string {
	return uuid.NewString()
}

// GenerateAccountNumber returns "ACC-" followed by a random UUID.
func GenerateAccountNumber() string {
	return accountNumberPrefix + uuid.NewString()
}

// GenerateDebitCardNumber returns a 16 digit card number starting with 4.
func GenerateDebitCardNumber() (string, error) {
	return debitCardNumber(rand.Reader)
}

func debitCardNumber(entropy io.Reader) (string, error) {
	var sb strings.Builder
	sb.Grow(16)
	sb.WriteByte('4')
	for i := 0; i < 15; i++ {
		num, err := rand.Int(entropy, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate card number: %w", err)
		}
		sb.WriteByte(byte('0' + num.Int64()))
	}
	return sb.String(), nil
}

// ValidateAccountNumber validates the account number format
func ValidateAccountNumber(accountNumber string) bool {
	if !strings.HasPrefix(accountNumber, accountNumberPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(accountNumber, accountNumberPrefix))
	return err == nil
}

// ValidateDebitCardNumber validates the debit card number format
func ValidateDebitCardNumber(cardNumber string) bool {
	if len(cardNumber) != 16 || cardNumber[0] != '4' {
		return false
	}
	for _, r := range cardNumber {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
