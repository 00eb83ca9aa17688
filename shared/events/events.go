package events

import "time"

// Event types
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"

	DebitCardCreated    = "debitcard.created"
	DebitCardAssociated = "debitcard.associated"
)

// Stream names
const (
	AccountEventsStream   = "account.events"
	DebitCardEventsStream = "debitcard.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	CustomerID    string `json:"customerId"`
	CustomerType  string `json:"customerType"`
}

type AccountUpdatedEvent struct {
	AccountID        string `json:"accountId"`
	Balance          string `json:"balance"`
	MonthlyMovements int    `json:"monthlyMovements"`
	Status           string `json:"status"`
}

type AccountDeletedEvent struct {
	AccountID  string `json:"accountId"`
	CustomerID string `json:"customerId"`
}

// Debit card events
type DebitCardCreatedEvent struct {
	DebitCardID string `json:"debitCardId"`
	CustomerID  string `json:"customerId"`
	AccountID   string `json:"accountId"`
}

type DebitCardAssociatedEvent struct {
	DebitCardID string `json:"debitCardId"`
	AccountID   string `json:"accountId"`
	Position    int    `json:"position"`
}
