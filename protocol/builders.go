package protocol

import "github.com/swamp-sc/swamp/idgen"

// WriteTransactionBuilder can build write transactions.
type WriteTransactionBuilder struct {
	origin, target string
	address        uint64
	value, bitmask byte
}

// WithOrigin sets the origin of the transaction to build.
func (b WriteTransactionBuilder) WithOrigin(origin string) WriteTransactionBuilder {
	b.origin = origin
	return b
}

// WithTarget sets the target of the transaction to build.
func (b WriteTransactionBuilder) WithTarget(target string) WriteTransactionBuilder {
	b.target = target
	return b
}

// WithAddress sets the address of the transaction to build.
func (b WriteTransactionBuilder) WithAddress(address uint64) WriteTransactionBuilder {
	b.address = address
	return b
}

// WithValue sets the value of the transaction to build.
func (b WriteTransactionBuilder) WithValue(value byte) WriteTransactionBuilder {
	b.value = value
	return b
}

// WithBitmask sets the bitmask of the transaction to build.
func (b WriteTransactionBuilder) WithBitmask(bitmask byte) WriteTransactionBuilder {
	b.bitmask = bitmask
	return b
}

// Build creates a new WriteTransaction.
func (b WriteTransactionBuilder) Build() *WriteTransaction {
	t := &WriteTransaction{}
	t.ID = idgen.GetGenerator().Generate()
	t.Origin = b.origin
	t.Target = b.target
	t.Address = b.address
	t.Value = b.value
	t.Bitmask = b.bitmask

	return t
}

// ReadTransactionBuilder can build read transactions.
type ReadTransactionBuilder struct {
	origin, target string
	address        uint64
}

// WithOrigin sets the origin of the transaction to build.
func (b ReadTransactionBuilder) WithOrigin(origin string) ReadTransactionBuilder {
	b.origin = origin
	return b
}

// WithTarget sets the target of the transaction to build.
func (b ReadTransactionBuilder) WithTarget(target string) ReadTransactionBuilder {
	b.target = target
	return b
}

// WithAddress sets the address of the transaction to build.
func (b ReadTransactionBuilder) WithAddress(address uint64) ReadTransactionBuilder {
	b.address = address
	return b
}

// Build creates a new ReadTransaction.
func (b ReadTransactionBuilder) Build() *ReadTransaction {
	t := &ReadTransaction{}
	t.ID = idgen.GetGenerator().Generate()
	t.Origin = b.origin
	t.Target = b.target
	t.Address = b.address

	return t
}

// ResetSignalBuilder can build reset signals.
type ResetSignalBuilder struct {
	origin, target string
}

// WithOrigin sets the origin of the signal to build.
func (b ResetSignalBuilder) WithOrigin(origin string) ResetSignalBuilder {
	b.origin = origin
	return b
}

// WithTarget sets the target of the signal to build.
func (b ResetSignalBuilder) WithTarget(target string) ResetSignalBuilder {
	b.target = target
	return b
}

// Build creates a new ResetSignal.
func (b ResetSignalBuilder) Build() *ResetSignal {
	s := &ResetSignal{}
	s.ID = idgen.GetGenerator().Generate()
	s.Origin = b.origin
	s.Target = b.target

	return s
}

// WriteAckBuilder can build write acknowledgments.
type WriteAckBuilder struct {
	origin, target string
	originalID     string
}

// WithOrigin sets the origin of the response to build.
func (b WriteAckBuilder) WithOrigin(origin string) WriteAckBuilder {
	b.origin = origin
	return b
}

// WithTarget sets the target of the response to build.
func (b WriteAckBuilder) WithTarget(target string) WriteAckBuilder {
	b.target = target
	return b
}

// WithOriginalID sets the transaction the response resolves.
func (b WriteAckBuilder) WithOriginalID(id string) WriteAckBuilder {
	b.originalID = id
	return b
}

// Build creates a new WriteAck.
func (b WriteAckBuilder) Build() *WriteAck {
	a := &WriteAck{}
	a.ID = idgen.GetGenerator().Generate()
	a.Origin = b.origin
	a.Target = b.target
	a.OriginalID = b.originalID

	return a
}

// WriteNackBuilder can build write failure responses.
type WriteNackBuilder struct {
	origin, target string
	originalID     string
	reason         string
}

// WithOrigin sets the origin of the response to build.
func (b WriteNackBuilder) WithOrigin(origin string) WriteNackBuilder {
	b.origin = origin
	return b
}

// WithTarget sets the target of the response to build.
func (b WriteNackBuilder) WithTarget(target string) WriteNackBuilder {
	b.target = target
	return b
}

// WithOriginalID sets the transaction the response resolves.
func (b WriteNackBuilder) WithOriginalID(id string) WriteNackBuilder {
	b.originalID = id
	return b
}

// WithReason sets the failure reason reported by the device.
func (b WriteNackBuilder) WithReason(reason string) WriteNackBuilder {
	b.reason = reason
	return b
}

// Build creates a new WriteNack.
func (b WriteNackBuilder) Build() *WriteNack {
	n := &WriteNack{}
	n.ID = idgen.GetGenerator().Generate()
	n.Origin = b.origin
	n.Target = b.target
	n.OriginalID = b.originalID
	n.Reason = b.reason

	return n
}

// ReadAckBuilder can build read responses.
type ReadAckBuilder struct {
	origin, target string
	originalID     string
	value          byte
}

// WithOrigin sets the origin of the response to build.
func (b ReadAckBuilder) WithOrigin(origin string) ReadAckBuilder {
	b.origin = origin
	return b
}

// WithTarget sets the target of the response to build.
func (b ReadAckBuilder) WithTarget(target string) ReadAckBuilder {
	b.target = target
	return b
}

// WithOriginalID sets the transaction the response resolves.
func (b ReadAckBuilder) WithOriginalID(id string) ReadAckBuilder {
	b.originalID = id
	return b
}

// WithValue sets the hardware value carried by the response.
func (b ReadAckBuilder) WithValue(value byte) ReadAckBuilder {
	b.value = value
	return b
}

// Build creates a new ReadAck.
func (b ReadAckBuilder) Build() *ReadAck {
	a := &ReadAck{}
	a.ID = idgen.GetGenerator().Generate()
	a.Origin = b.origin
	a.Target = b.target
	a.OriginalID = b.originalID
	a.Value = b.value

	return a
}

// ReadNackBuilder can build read failure responses.
type ReadNackBuilder struct {
	origin, target string
	originalID     string
	reason         string
}

// WithOrigin sets the origin of the response to build.
func (b ReadNackBuilder) WithOrigin(origin string) ReadNackBuilder {
	b.origin = origin
	return b
}

// WithTarget sets the target of the response to build.
func (b ReadNackBuilder) WithTarget(target string) ReadNackBuilder {
	b.target = target
	return b
}

// WithOriginalID sets the transaction the response resolves.
func (b ReadNackBuilder) WithOriginalID(id string) ReadNackBuilder {
	b.originalID = id
	return b
}

// WithReason sets the failure reason reported by the device.
func (b ReadNackBuilder) WithReason(reason string) ReadNackBuilder {
	b.reason = reason
	return b
}

// Build creates a new ReadNack.
func (b ReadNackBuilder) Build() *ReadNack {
	n := &ReadNack{}
	n.ID = idgen.GetGenerator().Generate()
	n.Origin = b.origin
	n.Target = b.target
	n.OriginalID = b.originalID
	n.Reason = b.reason

	return n
}
