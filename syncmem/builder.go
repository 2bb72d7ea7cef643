package syncmem

import (
	"log"

	"github.com/swamp-sc/swamp/ledger"
	"github.com/swamp-sc/swamp/memstore"
	"github.com/swamp-sc/swamp/tracing"
	"github.com/swamp-sc/swamp/transport"
)

// Builder can build synchronized memories.
type Builder struct {
	memorySize     uint64
	defaultPattern []byte
	target         string
	transport      transport.Transport
	tracer         tracing.Tracer
}

// MakeBuilder returns a new Builder
func MakeBuilder() Builder {
	return Builder{
		memorySize: 256,
	}
}

// WithMemorySize sets the number of addresses the memory mirrors
func (b Builder) WithMemorySize(size uint64) Builder {
	b.memorySize = size
	return b
}

// WithDefaultPattern sets the pattern both views hold at construction and
// after a reset
func (b Builder) WithDefaultPattern(pattern []byte) Builder {
	b.defaultPattern = pattern
	return b
}

// WithTarget sets the identifier of the device the memory mirrors
func (b Builder) WithTarget(target string) Builder {
	b.target = target
	return b
}

// WithTransport sets the transport the memory issues transactions through
func (b Builder) WithTransport(t transport.Transport) Builder {
	b.transport = t
	return b
}

// WithTracer sets the tracer that observes transaction lifecycles
func (b Builder) WithTracer(tracer tracing.Tracer) Builder {
	b.tracer = tracer
	return b
}

// Build creates a new Comp and attaches it to the transport.
func (b Builder) Build(name string) *Comp {
	if b.transport == nil {
		log.Panic("syncmem: transport is not set")
	}

	c := &Comp{
		name:   name,
		target: b.target,
		store: memstore.MakeBuilder().
			WithSize(b.memorySize).
			WithDefaultPattern(b.defaultPattern).
			Build(),
		ledger:    ledger.New(),
		transport: b.transport,
		tracer:    b.tracer,
	}

	c.origin = b.transport.Attach(c)

	return c
}
