// Package memstore keeps the two views of a mirrored register file.
//
// A Store holds a speculative cache view that includes every issued write,
// and a committed view that only includes device-acknowledged writes. Both
// views cover the full configured address range at all times.
package memstore

import (
	"fmt"
	"log"
	"sync"
)

// A View selects one of the two memory views of a Store.
type View int

const (
	// ViewCache is the speculative view including unacknowledged writes.
	ViewCache View = iota

	// ViewCommitted is the view that tracks the physical device state.
	ViewCommitted
)

// An OutOfRangeError reports an access beyond the configured address range.
type OutOfRangeError struct {
	Address uint64
	Size    uint64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf(
		"address 0x%02x is beyond the memory size %d", e.Address, e.Size)
}

// A Store keeps the cached and the committed view of a register file.
type Store struct {
	mu sync.RWMutex

	defaultPattern []byte
	cache          []byte
	committed      []byte
}

// Size returns the number of addresses the store manages.
func (s *Store) Size() uint64 {
	return uint64(len(s.defaultPattern))
}

// Read returns the value at the address in the selected view.
func (s *Store) Read(view View, address uint64) (byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if address >= uint64(len(s.defaultPattern)) {
		return 0, &OutOfRangeError{
			Address: address,
			Size:    uint64(len(s.defaultPattern)),
		}
	}

	return s.view(view)[address], nil
}

// ApplyMaskedUpdate replaces the bits selected by the bitmask at the address
// in the selected view, leaving the remaining bits unchanged.
func (s *Store) ApplyMaskedUpdate(
	view View,
	address uint64,
	bitmask, value byte,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if address >= uint64(len(s.defaultPattern)) {
		return &OutOfRangeError{
			Address: address,
			Size:    uint64(len(s.defaultPattern)),
		}
	}

	mem := s.view(view)
	mem[address] = mem[address]&^bitmask | value&bitmask

	return nil
}

// ResetToDefault overwrites every address of the selected view with the
// default pattern.
func (s *Store) ResetToDefault(view View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy(s.view(view), s.defaultPattern)
}

// Snapshot returns a copy of the selected view.
func (s *Store) Snapshot(view View) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]byte, len(s.defaultPattern))
	copy(snapshot, s.view(view))

	return snapshot
}

func (s *Store) view(view View) []byte {
	switch view {
	case ViewCache:
		return s.cache
	case ViewCommitted:
		return s.committed
	default:
		log.Panicf("unknown view %d", view)
	}

	return nil
}

// Builder can build stores.
type Builder struct {
	size           uint64
	defaultPattern []byte
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{size: 256}
}

// WithSize sets the number of addresses the store manages.
func (b Builder) WithSize(size uint64) Builder {
	b.size = size
	return b
}

// WithDefaultPattern sets the pattern both views are filled with at
// construction and on reset. The pattern length must equal the size.
func (b Builder) WithDefaultPattern(pattern []byte) Builder {
	b.defaultPattern = pattern
	return b
}

// Build creates a new Store with both views filled from the default pattern.
func (b Builder) Build() *Store {
	if b.defaultPattern != nil && uint64(len(b.defaultPattern)) != b.size {
		log.Panicf("memory size %d does not match size of default pattern %d",
			b.size, len(b.defaultPattern))
	}

	pattern := make([]byte, b.size)
	copy(pattern, b.defaultPattern)

	s := &Store{
		defaultPattern: pattern,
		cache:          make([]byte, b.size),
		committed:      make([]byte, b.size),
	}
	copy(s.cache, pattern)
	copy(s.committed, pattern)

	return s
}
