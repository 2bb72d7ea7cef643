package tracing

import (
	"sync"
	"time"
)

// A TraceWriter stores resolved trace records in some backend.
type TraceWriter interface {
	// Init prepares the backend for writing.
	Init()

	// Write stores one record. The write may be buffered.
	Write(r Record)

	// Flush forces all buffered records into the backend.
	Flush()
}

// DBTracer is a tracer that stores transaction records through a
// TraceWriter. Issued transactions are held until they resolve, so that the
// stored record carries both the issue and the resolution time.
type DBTracer struct {
	mu      sync.Mutex
	backend TraceWriter

	inflight map[string]Record

	now func() time.Time
}

// NewDBTracer creates a tracer that writes to the backend. The backend must
// be initialized by the caller.
func NewDBTracer(backend TraceWriter) *DBTracer {
	return &DBTracer{
		backend:  backend,
		inflight: make(map[string]Record),
		now:      time.Now,
	}
}

// TransactionIssued marks the transaction as in flight.
func (t *DBTracer) TransactionIssued(r Record) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r.IssuedAt = t.now()
	t.inflight[r.ID] = r
}

// TransactionCommitted writes the transaction with a committed outcome.
func (t *DBTracer) TransactionCommitted(r Record) {
	t.resolve(r, OutcomeCommitted)
}

// TransactionFailed writes the transaction with a failed outcome.
func (t *DBTracer) TransactionFailed(r Record) {
	t.resolve(r, OutcomeFailed)
}

// TransactionReplayed writes the replay immediately. The transaction stays
// in flight; its eventual resolution is recorded separately.
func (t *DBTracer) TransactionReplayed(r Record) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r.Outcome = OutcomeReplayed
	r.ResolvedAt = t.now()
	if original, ok := t.inflight[r.ID]; ok {
		r.IssuedAt = original.IssuedAt
	}

	t.backend.Write(r)
}

func (t *DBTracer) resolve(r Record, outcome string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	original, ok := t.inflight[r.ID]
	if ok {
		original.Reason = r.Reason
		r = original
		delete(t.inflight, r.ID)
	}

	r.Outcome = outcome
	r.ResolvedAt = t.now()

	t.backend.Write(r)
}
