package models

// Settlement represents a payment between users to clear debt, made
// outside the ledger and recorded after the fact. Unlike an expense it
// has no share breakdown, only a single payer→payee amount.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID scopes the settlement to a group. Empty for ungrouped.
	GroupID string

	// FromUserID is the debtor who paid.
	FromUserID string

	// ToUserID is the creditor who received the payment.
	ToUserID string

	// AmountPaisa is the payment amount in paisa.
	AmountPaisa int64

	// Note is an optional description.
	Note string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the user who recorded this settlement.
	CreatedBy string
}
