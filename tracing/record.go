// Package tracing records the lifecycle of the transactions a synchronized
// memory issues.
package tracing

import "time"

// Outcomes a traced transaction can resolve with.
const (
	OutcomeCommitted = "committed"
	OutcomeFailed    = "failed"
	OutcomeReplayed  = "replayed"
)

// A Record describes one transaction observed by a tracer.
type Record struct {
	ID      string `json:"id"`
	Origin  string `json:"origin"`
	Kind    string `json:"kind"`
	Address uint64 `json:"address"`
	Value   byte   `json:"value"`
	Bitmask byte   `json:"bitmask"`

	Outcome    string    `json:"outcome"`
	Reason     string    `json:"reason"`
	IssuedAt   time.Time `json:"issued_at"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// A Tracer observes the lifecycle of transactions.
type Tracer interface {
	// TransactionIssued marks that a transaction has been handed to the
	// transport.
	TransactionIssued(r Record)

	// TransactionCommitted marks that a transaction has been acknowledged
	// by the device.
	TransactionCommitted(r Record)

	// TransactionFailed marks that a transaction failed on the device or
	// could not be matched.
	TransactionFailed(r Record)

	// TransactionReplayed marks that a transaction was replayed into the
	// cache while rebuilding state after a reset.
	TransactionReplayed(r Record)
}
