// Package protocol defines the messages exchanged between a synchronized
// memory and the device it mirrors.
package protocol

// A Msg is a piece of information that is transferred between a synchronized
// memory and the hardware root. Messages are opaque payloads to the
// transport; only the meta data is inspected for delivery.
type Msg interface {
	Meta() *MsgMeta
}

// MsgMeta contains the meta data that is attached to every message.
type MsgMeta struct {
	ID     string
	Origin string
	Target string
}

// Rsp is a special message that resolves a previously issued transaction.
type Rsp interface {
	Msg

	// RspTo returns the ID of the transaction this response resolves.
	RspTo() string
}

// A WriteTransaction requests a masked write at an address. Only the bits
// selected by Bitmask are replaced on the device.
type WriteTransaction struct {
	MsgMeta

	Address uint64
	Value   byte
	Bitmask byte
}

// Meta returns the meta data of the message.
func (t *WriteTransaction) Meta() *MsgMeta {
	return &t.MsgMeta
}

// A ReadTransaction requests the current hardware value at an address.
type ReadTransaction struct {
	MsgMeta

	Address uint64
}

// Meta returns the meta data of the message.
func (t *ReadTransaction) Meta() *MsgMeta {
	return &t.MsgMeta
}

// A ResetSignal requests that the device and all mirrored state return to
// default. It carries no address.
type ResetSignal struct {
	MsgMeta
}

// Meta returns the meta data of the message.
func (s *ResetSignal) Meta() *MsgMeta {
	return &s.MsgMeta
}

// A WriteAck reports that a write transaction executed on the device.
type WriteAck struct {
	MsgMeta

	OriginalID string
}

// Meta returns the meta data of the message.
func (a *WriteAck) Meta() *MsgMeta {
	return &a.MsgMeta
}

// RspTo returns the ID of the acknowledged write.
func (a *WriteAck) RspTo() string {
	return a.OriginalID
}

// A WriteNack reports that a write transaction failed on the device.
type WriteNack struct {
	MsgMeta

	OriginalID string
	Reason     string
}

// Meta returns the meta data of the message.
func (n *WriteNack) Meta() *MsgMeta {
	return &n.MsgMeta
}

// RspTo returns the ID of the failed write.
func (n *WriteNack) RspTo() string {
	return n.OriginalID
}

// A ReadAck carries the hardware value observed by a read transaction.
type ReadAck struct {
	MsgMeta

	OriginalID string
	Value      byte
}

// Meta returns the meta data of the message.
func (a *ReadAck) Meta() *MsgMeta {
	return &a.MsgMeta
}

// RspTo returns the ID of the answered read.
func (a *ReadAck) RspTo() string {
	return a.OriginalID
}

// A ReadNack reports that a read transaction failed on the device.
type ReadNack struct {
	MsgMeta

	OriginalID string
	Reason     string
}

// Meta returns the meta data of the message.
func (n *ReadNack) Meta() *MsgMeta {
	return &n.MsgMeta
}

// RspTo returns the ID of the failed read.
func (n *ReadNack) RspTo() string {
	return n.OriginalID
}
