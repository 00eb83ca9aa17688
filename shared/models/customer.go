package models

// Customer is the profile owned by the customer service; read-only here.
type Customer struct {
	ID      string       `json:"id"`
	Type    CustomerType `json:"type"`
	SubType string       `json:"subType"`
	Status  string       `json:"status"`
}

const (
	CustomerSubTypeVIP  = "VIP"
	CustomerSubTypePYME = "PYME"

	CustomerStatusActive   = "ACTIVE"
	CustomerStatusInactive = "INACTIVE"
)

type CreditCard struct {
	ID         string `json:"id"`
	CardNumber string `json:"cardNumber"`
	CustomerID string `json:"customerId"`
}

type CreditDebtsDetail struct {
	Credits     []string `json:"credits"`
	CreditCards []string `json:"creditCards"`
}

// CreditDebts is the debt summary returned by the credit service.
type CreditDebts struct {
	Message string            `json:"message"`
	Debts   CreditDebtsDetail `json:"debts"`
}

func (d *CreditDebts) HasDebts() bool {
	return len(d.Debts.Credits) > 0 || len(d.Debts.CreditCards) > 0
}
