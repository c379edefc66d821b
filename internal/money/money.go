// Package money implements fixed-point monetary arithmetic in integer paisa
// (1 rupee = 100 paisa). All ledger math happens on integers; decimals exist
// only at the request/response boundary.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrAmountNotPositive       = errors.New("amount must be positive")
	ErrAmountTooLarge          = errors.New("amount too large")
	ErrInvalidParticipantCount = errors.New("participant count must be positive")
)

// DefaultMaxPaisa is the default ceiling for a single amount:
// 100,000,000 paisa = 10,00,000 INR.
const DefaultMaxPaisa int64 = 100_000_000

var paisaPerRupee = decimal.NewFromInt(100)

// ParseRupees converts a decimal rupee string (e.g. "123.45") to integer
// paisa, rounding half away from zero.
func ParseRupees(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromRupees(d), nil
}

// FromRupees converts a decimal rupee amount to integer paisa,
// rounding half away from zero.
func FromRupees(d decimal.Decimal) int64 {
	return d.Mul(paisaPerRupee).Round(0).IntPart()
}

// ToRupees converts integer paisa back to a rupee amount rounded to
// 2 decimal places. Display only; the result never re-enters the
// integer pipeline.
func ToRupees(paisa int64) decimal.Decimal {
	return decimal.NewFromInt(paisa).Div(paisaPerRupee).Round(2)
}

// Validate checks a paisa amount against the default ceiling.
func Validate(paisa int64) error {
	return ValidateMax(paisa, DefaultMaxPaisa)
}

// ValidateMax checks that a paisa amount is positive and does not exceed max.
func ValidateMax(paisa, max int64) error {
	if paisa <= 0 {
		return fmt.Errorf("%w: %d paisa", ErrAmountNotPositive, paisa)
	}
	if paisa > max {
		return fmt.Errorf("%w: %d paisa exceeds ceiling %d", ErrAmountTooLarge, paisa, max)
	}
	return nil
}

// SplitEqually divides totalPaisa among n participants using integer
// division. The first total%n shares receive one extra paisa so the shares
// always sum to the exact total.
func SplitEqually(totalPaisa int64, n int) ([]int64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidParticipantCount, n)
	}

	base := totalPaisa / int64(n)
	remainder := totalPaisa % int64(n)

	shares := make([]int64, n)
	var sum int64
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
		sum += shares[i]
	}

	if sum != totalPaisa {
		return nil, fmt.Errorf("split of %d paisa among %d produced %d", totalPaisa, n, sum)
	}

	return shares, nil
}
