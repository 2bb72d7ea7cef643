// Package ledger tracks transactions that have been issued to the device but
// not yet acknowledged.
package ledger

import (
	"log"
	"sync"
)

// A Kind tells whether a transaction writes to or reads from the device.
type Kind int

const (
	// KindWrite marks a masked write transaction.
	KindWrite Kind = iota

	// KindRead marks a read transaction.
	KindRead
)

// A Transaction is an issued request whose response has not arrived yet.
type Transaction struct {
	ID      string
	Origin  string
	Kind    Kind
	Address uint64
	Bitmask byte
	Value   byte

	// Seq is the issuance sequence number, assigned by the ledger.
	Seq uint64
}

// A Ledger keeps outstanding transactions keyed by ID, preserving the order
// each origin issued them in.
type Ledger struct {
	mu sync.Mutex

	nextSeq      uint64
	transactions map[string]Transaction
	perOrigin    map[string][]string
	origins      []string
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		transactions: make(map[string]Transaction),
		perOrigin:    make(map[string][]string),
	}
}

// Record adds a transaction as outstanding and assigns its sequence number.
// Recording an ID twice is a programming error.
func (l *Ledger) Record(txn Transaction) Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.transactions[txn.ID]; ok {
		log.Panicf("transaction %s is already outstanding", txn.ID)
	}

	l.nextSeq++
	txn.Seq = l.nextSeq
	l.transactions[txn.ID] = txn

	if _, ok := l.perOrigin[txn.Origin]; !ok {
		l.origins = append(l.origins, txn.Origin)
	}
	l.perOrigin[txn.Origin] = append(l.perOrigin[txn.Origin], txn.ID)

	return txn
}

// Lookup returns the outstanding transaction with the ID, if any.
func (l *Ledger) Lookup(id string) (Transaction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txn, ok := l.transactions[id]

	return txn, ok
}

// Resolve removes the transaction with the ID from the ledger and returns
// it. Resolution is final; the ID can never match another response.
func (l *Ledger) Resolve(id string) (Transaction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txn, ok := l.transactions[id]
	if !ok {
		return Transaction{}, false
	}

	delete(l.transactions, id)

	ids := l.perOrigin[txn.Origin]
	for i, candidate := range ids {
		if candidate == id {
			l.perOrigin[txn.Origin] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	return txn, true
}

// Len returns the number of outstanding transactions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.transactions)
}

// PerOrigin returns the outstanding transactions of one origin, in the
// order the origin issued them.
func (l *Ledger) PerOrigin(origin string) []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.originTransactions(origin)
}

// InIssuanceOrder returns all outstanding transactions. Origins appear in
// first-seen order; within an origin, transactions keep issuance order.
func (l *Ledger) InIssuanceOrder() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	var all []Transaction
	for _, origin := range l.origins {
		all = append(all, l.originTransactions(origin)...)
	}

	return all
}

func (l *Ledger) originTransactions(origin string) []Transaction {
	ids := l.perOrigin[origin]
	txns := make([]Transaction, 0, len(ids))
	for _, id := range ids {
		txns = append(txns, l.transactions[id])
	}

	return txns
}
