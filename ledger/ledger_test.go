package ledger

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ledger", func() {
	var l *Ledger

	BeforeEach(func() {
		l = New()
	})

	It("should record and look up a transaction", func() {
		l.Record(Transaction{ID: "t1", Origin: "A", Address: 4})

		txn, ok := l.Lookup("t1")
		Expect(ok).To(BeTrue())
		Expect(txn.Address).To(Equal(uint64(4)))
		Expect(l.Len()).To(Equal(1))
	})

	It("should assign increasing sequence numbers", func() {
		first := l.Record(Transaction{ID: "t1", Origin: "A"})
		second := l.Record(Transaction{ID: "t2", Origin: "B"})

		Expect(second.Seq).To(BeNumerically(">", first.Seq))
	})

	It("should panic on a duplicate ID", func() {
		l.Record(Transaction{ID: "t1", Origin: "A"})

		Expect(func() {
			l.Record(Transaction{ID: "t1", Origin: "A"})
		}).To(Panic())
	})

	It("should remove a transaction on resolve", func() {
		l.Record(Transaction{ID: "t1", Origin: "A"})

		txn, ok := l.Resolve("t1")
		Expect(ok).To(BeTrue())
		Expect(txn.ID).To(Equal("t1"))

		_, ok = l.Lookup("t1")
		Expect(ok).To(BeFalse())
		Expect(l.Len()).To(Equal(0))
	})

	It("should resolve an ID at most once", func() {
		l.Record(Transaction{ID: "t1", Origin: "A"})

		_, ok := l.Resolve("t1")
		Expect(ok).To(BeTrue())

		_, ok = l.Resolve("t1")
		Expect(ok).To(BeFalse())
	})

	It("should report a miss for an unknown ID", func() {
		_, ok := l.Lookup("never-issued")
		Expect(ok).To(BeFalse())

		_, ok = l.Resolve("never-issued")
		Expect(ok).To(BeFalse())
	})

	It("should keep per-origin issuance order", func() {
		l.Record(Transaction{ID: "a1", Origin: "A", Address: 1})
		l.Record(Transaction{ID: "b1", Origin: "B", Address: 2})
		l.Record(Transaction{ID: "a2", Origin: "A", Address: 3})

		txns := l.PerOrigin("A")
		Expect(txns).To(HaveLen(2))
		Expect(txns[0].ID).To(Equal("a1"))
		Expect(txns[1].ID).To(Equal("a2"))
	})

	It("should keep per-origin order after resolving in between", func() {
		l.Record(Transaction{ID: "a1", Origin: "A"})
		l.Record(Transaction{ID: "a2", Origin: "A"})
		l.Record(Transaction{ID: "a3", Origin: "A"})

		l.Resolve("a2")

		txns := l.PerOrigin("A")
		Expect(txns).To(HaveLen(2))
		Expect(txns[0].ID).To(Equal("a1"))
		Expect(txns[1].ID).To(Equal("a3"))
	})

	It("should enumerate origins in first-seen order", func() {
		l.Record(Transaction{ID: "b1", Origin: "B"})
		l.Record(Transaction{ID: "a1", Origin: "A"})
		l.Record(Transaction{ID: "b2", Origin: "B"})

		all := l.InIssuanceOrder()
		Expect(all).To(HaveLen(3))
		Expect(all[0].ID).To(Equal("b1"))
		Expect(all[1].ID).To(Equal("b2"))
		Expect(all[2].ID).To(Equal("a1"))
	})
})
