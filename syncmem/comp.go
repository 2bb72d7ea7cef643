// Package syncmem synchronizes a software mirror of a register file with
// the physical state of a remote device.
//
// The engine keeps two views of memory. The cache reflects every write the
// caller has issued, whether or not the device has acknowledged it. The
// committed view only advances when an acknowledgment arrives. Outstanding
// writes are tracked in a ledger so that, after a device reset, the cache
// can be rebuilt from the default pattern plus the writes still in flight.
package syncmem

import (
	"errors"
	"fmt"
	"sync"

	"github.com/swamp-sc/swamp/ledger"
	"github.com/swamp-sc/swamp/memstore"
	"github.com/swamp-sc/swamp/protocol"
	"github.com/swamp-sc/swamp/tracing"
	"github.com/swamp-sc/swamp/transport"
)

// A WriteOp is one masked write in a batch.
type WriteOp struct {
	Address uint64
	Value   byte
	Bitmask byte
}

// A Handle correlates an issued transaction for later inspection. A
// zero-valued handle means no transaction was issued.
type Handle struct {
	ID      string
	Address uint64
}

// Issued tells whether the operation put a transaction on the wire.
func (h Handle) Issued() bool {
	return h.ID != ""
}

// Comp is a synchronized memory. All mutating operations are serialized
// over the component; reads can run concurrently.
type Comp struct {
	mu sync.RWMutex

	name   string
	origin string
	target string

	transport transport.Transport
	store     *memstore.Store
	ledger    *ledger.Ledger
	tracer    tracing.Tracer
}

// Name returns the name of the component.
func (c *Comp) Name() string {
	return c.name
}

// Origin returns the identifier the transport assigned to this component.
func (c *Comp) Origin() string {
	return c.origin
}

// Size returns the number of addresses the component mirrors.
func (c *Comp) Size() uint64 {
	return c.store.Size()
}

// Write applies a masked write to the cache, records it as outstanding, and
// hands a WriteTransaction to the transport. It does not wait for the
// device to acknowledge. A write that would not change the cached value is
// dropped and returns a zero-valued handle.
func (c *Comp) Write(address uint64, value, bitmask byte) (Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.writeLocked(address, value, bitmask)
}

// WriteBatch applies masked writes in order. It stops at the first write
// that is out of range; writes before it keep their effect.
func (c *Comp) WriteBatch(ops []WriteOp) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, op := range ops {
		if _, err := c.writeLocked(op.Address, op.Value, op.Bitmask); err != nil {
			return err
		}
	}

	return nil
}

func (c *Comp) writeLocked(address uint64, value, bitmask byte) (Handle, error) {
	if address >= c.store.Size() {
		return Handle{}, &memstore.OutOfRangeError{
			Address: address,
			Size:    c.store.Size(),
		}
	}

	cached, err := c.store.Read(memstore.ViewCache, address)
	if err != nil {
		return Handle{}, err
	}

	if cached&bitmask == value&bitmask {
		return Handle{}, nil
	}

	if err := c.store.ApplyMaskedUpdate(
		memstore.ViewCache, address, bitmask, value); err != nil {
		return Handle{}, err
	}

	msg := protocol.WriteTransactionBuilder{}.
		WithOrigin(c.origin).
		WithTarget(c.target).
		WithAddress(address).
		WithValue(value).
		WithBitmask(bitmask).
		Build()

	txn := c.ledger.Record(ledger.Transaction{
		ID:      msg.ID,
		Origin:  c.origin,
		Kind:    ledger.KindWrite,
		Address: address,
		Bitmask: bitmask,
		Value:   value,
	})

	if c.tracer != nil {
		c.tracer.TransactionIssued(c.traceRecord(txn))
	}

	if err := c.transport.Send(msg); err != nil {
		c.ledger.Resolve(msg.ID)
		if c.tracer != nil {
			r := c.traceRecord(txn)
			r.Reason = err.Error()
			c.tracer.TransactionFailed(r)
		}

		return Handle{}, fmt.Errorf("send write transaction: %w", err)
	}

	return Handle{ID: msg.ID, Address: address}, nil
}

// Read returns the value at the address. With committed set, it returns the
// device-acknowledged view; otherwise it returns the cache, which always
// reflects all writes issued so far. Read never issues hardware traffic.
func (c *Comp) Read(address uint64, committed bool) (byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	view := memstore.ViewCache
	if committed {
		view = memstore.ViewCommitted
	}

	return c.store.Read(view, address)
}

// IssueRead sends a ReadTransaction for the address. The response updates
// the committed view when it arrives; the call itself does not block.
func (c *Comp) IssueRead(address uint64) (Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if address >= c.store.Size() {
		return Handle{}, &memstore.OutOfRangeError{
			Address: address,
			Size:    c.store.Size(),
		}
	}

	msg := protocol.ReadTransactionBuilder{}.
		WithOrigin(c.origin).
		WithTarget(c.target).
		WithAddress(address).
		Build()

	txn := c.ledger.Record(ledger.Transaction{
		ID:      msg.ID,
		Origin:  c.origin,
		Kind:    ledger.KindRead,
		Address: address,
	})

	if c.tracer != nil {
		c.tracer.TransactionIssued(c.traceRecord(txn))
	}

	if err := c.transport.Send(msg); err != nil {
		c.ledger.Resolve(msg.ID)
		if c.tracer != nil {
			r := c.traceRecord(txn)
			r.Reason = err.Error()
			c.tracer.TransactionFailed(r)
		}

		return Handle{}, fmt.Errorf("send read transaction: %w", err)
	}

	return Handle{ID: msg.ID, Address: address}, nil
}

// OutstandingCommits returns a snapshot of the write transactions that have
// not been acknowledged yet, in issuance order. The committed view is not
// authoritative until this is empty.
func (c *Comp) OutstandingCommits() []ledger.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var writes []ledger.Transaction
	for _, txn := range c.ledger.InIssuanceOrder() {
		if txn.Kind == ledger.KindWrite {
			writes = append(writes, txn)
		}
	}

	return writes
}

// ReceiveRsp consumes a batch of responses from the transport. Every
// response resolves at most one outstanding transaction. A failed write
// leaves the cache unchanged: the speculative value may now be wrong
// relative to the committed view, and reconciling it is the caller's
// responsibility. Reset rebuilds the cache from scratch if needed.
//
// All responses in the batch are processed; the errors of failed and
// unmatched responses are joined.
func (c *Comp) ReceiveRsp(rsps ...protocol.Rsp) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, rsp := range rsps {
		if err := c.processRsp(rsp); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (c *Comp) processRsp(rsp protocol.Rsp) error {
	switch rsp := rsp.(type) {
	case *protocol.WriteAck:
		return c.commitWrite(rsp)
	case *protocol.WriteNack:
		return c.failTransaction(rsp.OriginalID, rsp.Reason)
	case *protocol.ReadAck:
		return c.commitRead(rsp)
	case *protocol.ReadNack:
		return c.failTransaction(rsp.OriginalID, rsp.Reason)
	default:
		return &ProtocolError{ID: rsp.RspTo(), Unmatched: true}
	}
}

func (c *Comp) commitWrite(ack *protocol.WriteAck) error {
	txn, ok := c.ledger.Resolve(ack.OriginalID)
	if !ok {
		return &ProtocolError{ID: ack.OriginalID, Unmatched: true}
	}

	if err := c.store.ApplyMaskedUpdate(
		memstore.ViewCommitted, txn.Address, txn.Bitmask, txn.Value); err != nil {
		return err
	}

	if c.tracer != nil {
		c.tracer.TransactionCommitted(c.traceRecord(txn))
	}

	return nil
}

func (c *Comp) commitRead(ack *protocol.ReadAck) error {
	txn, ok := c.ledger.Resolve(ack.OriginalID)
	if !ok {
		return &ProtocolError{ID: ack.OriginalID, Unmatched: true}
	}

	if err := c.store.ApplyMaskedUpdate(
		memstore.ViewCommitted, txn.Address, 0xFF, ack.Value); err != nil {
		return err
	}

	if c.tracer != nil {
		r := c.traceRecord(txn)
		r.Value = ack.Value
		c.tracer.TransactionCommitted(r)
	}

	return nil
}

func (c *Comp) failTransaction(id, reason string) error {
	txn, ok := c.ledger.Resolve(id)
	if !ok {
		return &ProtocolError{ID: id, Unmatched: true}
	}

	if c.tracer != nil {
		r := c.traceRecord(txn)
		r.Reason = reason
		c.tracer.TransactionFailed(r)
	}

	return &ProtocolError{ID: id, Address: txn.Address, Reason: reason}
}

// HandleReset is called by the transport when the device announces that it
// has returned to its default state.
func (c *Comp) HandleReset() {
	c.Reset()
}

// Reset rebuilds the local state after a device reset. The committed view
// returns to the default pattern; the cache is rebuilt from the committed
// view by replaying all outstanding writes in issuance order. Outstanding
// transactions stay in the ledger: reset rebuilds state, it does not
// resolve in-flight writes. Reset never fails.
func (c *Comp) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.ResetToDefault(memstore.ViewCommitted)
	c.store.ResetToDefault(memstore.ViewCache)

	for _, txn := range c.ledger.InIssuanceOrder() {
		if txn.Kind != ledger.KindWrite {
			continue
		}

		// Ledger entries were range-checked when recorded.
		_ = c.store.ApplyMaskedUpdate(
			memstore.ViewCache, txn.Address, txn.Bitmask, txn.Value)

		if c.tracer != nil {
			c.tracer.TransactionReplayed(c.traceRecord(txn))
		}
	}
}

// RequestDeviceReset asks the physical device to return to default. The
// request is independent of the local rebuild, which the transport triggers
// through HandleReset when the device confirms.
func (c *Comp) RequestDeviceReset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := protocol.ResetSignalBuilder{}.
		WithOrigin(c.origin).
		WithTarget(c.target).
		Build()

	if err := c.transport.Send(msg); err != nil {
		return fmt.Errorf("send reset signal: %w", err)
	}

	return nil
}

// CacheSnapshot returns a copy of the cache view.
func (c *Comp) CacheSnapshot() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.store.Snapshot(memstore.ViewCache)
}

// CommittedSnapshot returns a copy of the committed view.
func (c *Comp) CommittedSnapshot() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.store.Snapshot(memstore.ViewCommitted)
}

func (c *Comp) traceRecord(txn ledger.Transaction) tracing.Record {
	kind := "write"
	if txn.Kind == ledger.KindRead {
		kind = "read"
	}

	return tracing.Record{
		ID:      txn.ID,
		Origin:  txn.Origin,
		Kind:    kind,
		Address: txn.Address,
		Value:   txn.Value,
		Bitmask: txn.Bitmask,
	}
}
