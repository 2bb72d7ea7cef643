// Package transport defines the contract between a synchronized memory and
// the link that carries its messages toward the hardware root.
package transport

import "github.com/swamp-sc/swamp/protocol"

// A Receiver consumes inbound traffic from a transport. It is implemented
// by the synchronized memory; the transport is the only caller.
type Receiver interface {
	// ReceiveRsp delivers a batch of responses to outstanding transactions.
	ReceiveRsp(rsps ...protocol.Rsp) error

	// HandleReset tells the receiver that the device has returned to its
	// default state.
	HandleReset()
}

// A Transport carries messages between a synchronized memory and the
// hardware root. Implementations must preserve FIFO delivery order among
// the transactions of a single origin, and must answer every issued
// transaction with exactly one response. No ordering is required between
// transactions of different origins.
type Transport interface {
	// Attach registers the receiver for inbound traffic and returns the
	// origin identifier the receiver issues transactions under.
	Attach(r Receiver) (origin string)

	// Send hands a message over for delivery toward the hardware root.
	// Send does not wait for the device to execute the message.
	Send(msg protocol.Msg) error
}
