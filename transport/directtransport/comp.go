// Package directtransport provides an in-process transport that connects
// synchronized memories to a simulated device without latency.
//
// Sent messages queue up inside the transport and are executed against the
// device model when the test or the application calls Deliver or
// DeliverAll. Per-origin FIFO order holds because the queue itself is FIFO.
package directtransport

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/swamp-sc/swamp/protocol"
	"github.com/swamp-sc/swamp/transport"
)

// Comp is a direct transport. It implements transport.Transport.
type Comp struct {
	mu sync.Mutex

	name   string
	device *DeviceModel

	nextOriginID int
	receivers    map[string]transport.Receiver
	pending      []protocol.Msg
}

// Name returns the name of the transport.
func (c *Comp) Name() string {
	return c.name
}

// Device returns the register file behind the transport.
func (c *Comp) Device() *DeviceModel {
	return c.device
}

// Attach registers a receiver and assigns it an origin identifier.
func (c *Comp) Attach(r transport.Receiver) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextOriginID++
	origin := fmt.Sprintf("%s.Origin%d", c.name, c.nextOriginID)
	c.receivers[origin] = r

	return origin
}

// Send queues a message for delivery toward the device. It never blocks.
func (c *Comp) Send(msg protocol.Msg) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = append(c.pending, msg)

	return nil
}

// PendingCount returns the number of messages not yet delivered.
func (c *Comp) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

// Deliver executes the oldest pending message on the device and hands the
// response back to the issuing receiver. It reports whether a message was
// processed, and any error the receiver surfaced.
func (c *Comp) Deliver() (bool, error) {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return false, nil
	}

	msg := c.pending[0]
	c.pending = c.pending[1:]
	c.mu.Unlock()

	return true, c.execute(msg)
}

// DeliverAll executes all pending messages in order, joining the errors the
// receivers surface.
func (c *Comp) DeliverAll() error {
	var errs []error
	for {
		delivered, err := c.Deliver()
		if err != nil {
			errs = append(errs, err)
		}
		if !delivered {
			break
		}
	}

	return errors.Join(errs...)
}

// TriggerReset makes the device return to default on its own and announces
// the reset to all attached receivers, as a physical power cycle would.
func (c *Comp) TriggerReset() {
	c.device.reset()

	for _, r := range c.snapshotReceivers() {
		r.HandleReset()
	}
}

func (c *Comp) execute(msg protocol.Msg) error {
	switch msg := msg.(type) {
	case *protocol.WriteTransaction:
		return c.executeWrite(msg)
	case *protocol.ReadTransaction:
		return c.executeRead(msg)
	case *protocol.ResetSignal:
		c.TriggerReset()
		return nil
	default:
		log.Panicf("transport cannot deliver message of type %T", msg)
	}

	return nil
}

func (c *Comp) executeWrite(msg *protocol.WriteTransaction) error {
	r := c.receiverFor(msg.Origin)

	reason, ok := c.device.write(msg.Address, msg.Bitmask, msg.Value)
	if !ok {
		nack := protocol.WriteNackBuilder{}.
			WithOrigin(msg.Target).
			WithTarget(msg.Origin).
			WithOriginalID(msg.ID).
			WithReason(reason).
			Build()

		return r.ReceiveRsp(nack)
	}

	ack := protocol.WriteAckBuilder{}.
		WithOrigin(msg.Target).
		WithTarget(msg.Origin).
		WithOriginalID(msg.ID).
		Build()

	return r.ReceiveRsp(ack)
}

func (c *Comp) executeRead(msg *protocol.ReadTransaction) error {
	r := c.receiverFor(msg.Origin)

	value, reason, ok := c.device.read(msg.Address)
	if !ok {
		nack := protocol.ReadNackBuilder{}.
			WithOrigin(msg.Target).
			WithTarget(msg.Origin).
			WithOriginalID(msg.ID).
			WithReason(reason).
			Build()

		return r.ReceiveRsp(nack)
	}

	ack := protocol.ReadAckBuilder{}.
		WithOrigin(msg.Target).
		WithTarget(msg.Origin).
		WithOriginalID(msg.ID).
		WithValue(value).
		Build()

	return r.ReceiveRsp(ack)
}

func (c *Comp) receiverFor(origin string) transport.Receiver {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.receivers[origin]
	if !ok {
		log.Panicf("no receiver attached for origin %s", origin)
	}

	return r
}

func (c *Comp) snapshotReceivers() []transport.Receiver {
	c.mu.Lock()
	defer c.mu.Unlock()

	receivers := make([]transport.Receiver, 0, len(c.receivers))
	for _, r := range c.receivers {
		receivers = append(receivers, r)
	}

	return receivers
}

// Builder can build direct transports.
type Builder struct {
	deviceSize     uint64
	defaultPattern []byte
}

// MakeBuilder returns a new Builder
func MakeBuilder() Builder {
	return Builder{
		deviceSize: 256,
	}
}

// WithDeviceSize sets the number of registers the device model holds
func (b Builder) WithDeviceSize(size uint64) Builder {
	b.deviceSize = size
	return b
}

// WithDefaultPattern sets the pattern the device registers reset to
func (b Builder) WithDefaultPattern(pattern []byte) Builder {
	b.defaultPattern = pattern
	return b
}

// Build creates a new direct transport.
func (b Builder) Build(name string) *Comp {
	return &Comp{
		name:      name,
		device:    newDeviceModel(b.deviceSize, b.defaultPattern),
		receivers: make(map[string]transport.Receiver),
	}
}
