package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusChangedEvent is published after a successful reconciliation.
type OrderStatusChangedEvent struct {
	EventID       string          `json:"event_id"`
	OrderID       uint64          `json:"order_id"`
	OldStatus     string          `json:"old_status"`
	NewStatus     string          `json:"new_status"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// RecordResyncMessage asks the consumer to re-mirror an order whose record
// write failed after the host transition succeeded.
type RecordResyncMessage struct {
	EventID    string    `json:"event_id"`
	OrderID    uint64    `json:"order_id"`
	Reason     string    `json:"reason"`
	RetryCount int       `json:"retry_count"`
	QueuedAt   time.Time `json:"queued_at"`
}

// SweepReport summarises one expiry pass.
type SweepReport struct {
	Skipped    bool      `json:"skipped"`
	Cutoff     time.Time `json:"cutoff"`
	Candidates int       `json:"candidates"`
	Cancelled  []uint64  `json:"cancelled"`
	Failed     []uint64  `json:"failed"`
}
