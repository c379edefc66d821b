// Package events publishes ledger change events for downstream consumers
// (notifications, analytics). Publishing is best-effort: a failed publish
// never fails the request that triggered it.
package events

import "context"

// Event types emitted by the service.
const (
	TypeExpenseCreated     = "expense.created"
	TypeSettlementRecorded = "settlement.recorded"
)

// LedgerEvent is the payload published for every ledger change.
// Amounts are integer paisa, like everywhere else in the system.
type LedgerEvent struct {
	Type        string `json:"type"`
	GroupID     string `json:"group_id,omitempty"`
	ActorID     string `json:"actor_id"`
	RecordID    string `json:"record_id"`
	AmountPaisa int64  `json:"amount_paisa"`
	OccurredAt  int64  `json:"occurred_at"`
}

// Publisher sends ledger events to an external broker.
type Publisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
	Close() error
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, LedgerEvent) error { return nil }
func (NopPublisher) Close() error                               { return nil }
