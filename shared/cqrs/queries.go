package cqrs

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by its id.
type GetAccountQuery struct {
	AccountID string
}

// GetAccountByNumberQuery fetches a single account by its ACC- number.
type GetAccountByNumberQuery struct {
	AccountNumber string
}

// ListAccountsQuery fetches all accounts belonging to a customer.
type ListAccountsQuery struct {
	CustomerID string
}

// ---------- Debit card queries ----------

type GetDebitCardQuery struct {
	DebitCardID string
}

// GetPrimaryBalanceQuery resolves the balance of a card's primary account.
type GetPrimaryBalanceQuery struct {
	DebitCardID string
}
