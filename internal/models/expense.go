package models

// ParticipantShare is one participant's exact portion of an expense.
type ParticipantShare struct {
	// UserID identifies the participant.
	UserID string

	// AmountPaisa is the participant's share in paisa. The shares of an
	// expense sum to exactly the expense's AmountPaisa.
	AmountPaisa int64
}

// Expense represents a shared expense fronted by one payer.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID scopes the expense to a group. Empty for ungrouped expenses.
	GroupID string

	// Description is a short human-readable label (max 200 characters).
	Description string

	// PayerID is the user who paid the full amount up front.
	PayerID string

	// AmountPaisa is the total expense amount in paisa.
	AmountPaisa int64

	// Participants lists everyone splitting the expense, payer included.
	Participants []string

	// Shares holds the exact paisa share per participant, computed by
	// money.SplitEqually at creation time.
	Shares []ParticipantShare

	// Currency is the ISO code of the amount. Only INR for now.
	Currency string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
