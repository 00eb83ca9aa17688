package models

import "time"

type DebitCardAssociation struct {
	AccountID string `json:"accountId"`
	Position  int    `json:"position"`
}

// DebitCard links one customer's card to an ordered set of accounts.
// The association with the lowest position is the primary account.
type DebitCard struct {
	ID           string                 `json:"id"`
	CardNumber   string                 `json:"cardNumber"`
	CustomerID   string                 `json:"customerId"`
	Associations []DebitCardAssociation `json:"associations"`
	CreatedAt    time.Time              `json:"createdAt"`
	Version      int                    `json:"version"`
}

func (d *DebitCard) IsAssociated(accountID string) bool {
	for _, a := range d.Associations {
		if a.AccountID == accountID {
			return true
		}
	}
	return false
}

// NextPosition is one past the highest position currently held.
func (d *DebitCard) NextPosition() int {
	highest := 0
	for _, a := range d.Associations {
		if a.Position > highest {
			highest = a.Position
		}
	}
	return highest + 1
}

// PrimaryAssociation returns the association with the numerically smallest position.
func (d *DebitCard) PrimaryAssociation() (DebitCardAssociation, bool) {
	if len(d.Associations) == 0 {
		return DebitCardAssociation{}, false
	}
	primary := d.Associations[0]
	for _, a := range d.Associations[1:] {
		if a.Position < primary.Position {
			primary = a
		}
	}
	return primary, true
}
