package types

import "github.com/shopspring/decimal"

// CashCard represents a single cash card balance owned by a user.
type CashCard struct {
	// ID is the unique identifier of the card, assigned by the
	// store on creation and immutable afterwards.
	ID int64 `json:"id" db:"id"`

	// Amount is the current monetary value of the card, kept as an
	// exact decimal so arithmetic and storage never lose cents.
	Amount decimal.Decimal `json:"amount" db:"amount"`

	// Owner is the username of the authenticated user the card
	// belongs to. Every read and write is scoped by this field.
	Owner string `json:"owner" db:"owner"`
}
