// Package calculator turns ledger history into net balances and a minimal
// transfer plan. It is pure: no I/O, no shared state, integer paisa only.
// Callers pass a consistent snapshot of records; safe for concurrent use.
package calculator

import (
	"errors"
	"fmt"
)

var ErrMalformedRecord = errors.New("malformed ledger record")

// Share is one participant's portion of an expense, in paisa.
type Share struct {
	UserID      string
	AmountPaisa int64
}

// Expense carries the minimal expense fields needed for balance calculation.
// The shares sum to AmountPaisa; that invariant is established at expense
// creation time by money.SplitEqually.
type Expense struct {
	PayerID     string
	AmountPaisa int64
	Shares      []Share
}

// Settlement records money actually paid outside the ledger,
// from a debtor to a creditor.
type Settlement struct {
	FromUserID  string
	ToUserID    string
	AmountPaisa int64
}

// Transfer is one suggested payment in the optimized plan.
type Transfer struct {
	FromUserID  string
	ToUserID    string
	AmountPaisa int64
}

// NetBalances folds expenses and settlements into a net paisa balance per
// user. Positive means the user is owed money, negative means they owe.
//
// Each expense credits the payer with the full amount and debits every
// participant by their share; a payer who is also a participant gets both.
// Each settlement credits the payer and debits the recipient.
//
// Users that appear in no record are absent from the result, and the sum of
// all returned balances is zero for any self-consistent history. Records
// with missing users or non-positive amounts are a data-integrity defect
// and return an error rather than being silently dropped.
func NetBalances(expenses []Expense, settlements []Settlement) (map[string]int64, error) {
	balances := make(map[string]int64)

	for i, expense := range expenses {
		if expense.PayerID == "" {
			return nil, fmt.Errorf("%w: expense %d has no payer", ErrMalformedRecord, i)
		}
		if len(expense.Shares) == 0 {
			return nil, fmt.Errorf("%w: expense %d has no participant shares", ErrMalformedRecord, i)
		}
		if expense.AmountPaisa <= 0 {
			return nil, fmt.Errorf("%w: expense %d has non-positive amount %d", ErrMalformedRecord, i, expense.AmountPaisa)
		}

		balances[expense.PayerID] += expense.AmountPaisa
		for _, share := range expense.Shares {
			if share.UserID == "" {
				return nil, fmt.Errorf("%w: expense %d has a share with no user", ErrMalformedRecord, i)
			}
			balances[share.UserID] -= share.AmountPaisa
		}
	}

	for i, s := range settlements {
		if s.FromUserID == "" || s.ToUserID == "" {
			return nil, fmt.Errorf("%w: settlement %d missing from/to user", ErrMalformedRecord, i)
		}
		if s.AmountPaisa <= 0 {
			return nil, fmt.Errorf("%w: settlement %d has non-positive amount %d", ErrMalformedRecord, i, s.AmountPaisa)
		}

		// s.From already paid s.To outside the ledger.
		balances[s.FromUserID] += s.AmountPaisa
		balances[s.ToUserID] -= s.AmountPaisa
	}

	return balances, nil
}
