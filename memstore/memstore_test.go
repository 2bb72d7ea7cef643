package memstore

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var store *Store

	BeforeEach(func() {
		store = MakeBuilder().
			WithSize(8).
			Build()
	})

	It("should initialize both views to zero without a pattern", func() {
		for addr := uint64(0); addr < 8; addr++ {
			cached, err := store.Read(ViewCache, addr)
			Expect(err).ToNot(HaveOccurred())
			Expect(cached).To(Equal(byte(0)))

			committed, err := store.Read(ViewCommitted, addr)
			Expect(err).ToNot(HaveOccurred())
			Expect(committed).To(Equal(byte(0)))
		}
	})

	It("should initialize both views from the default pattern", func() {
		pattern := []byte{0xDE, 0xAD, 0xBE, 0xEF}
		patterned := MakeBuilder().
			WithSize(4).
			WithDefaultPattern(pattern).
			Build()

		Expect(patterned.Snapshot(ViewCache)).To(Equal(pattern))
		Expect(patterned.Snapshot(ViewCommitted)).To(Equal(pattern))
	})

	It("should panic when the pattern length does not match the size", func() {
		build := func() {
			MakeBuilder().
				WithSize(8).
				WithDefaultPattern([]byte{1, 2}).
				Build()
		}

		Expect(build).To(Panic())
	})

	It("should replace only the masked bits", func() {
		err := store.ApplyMaskedUpdate(ViewCache, 2, 0xFF, 0x5A)
		Expect(err).ToNot(HaveOccurred())

		err = store.ApplyMaskedUpdate(ViewCache, 2, 0x0F, 0x03)
		Expect(err).ToNot(HaveOccurred())

		value, _ := store.Read(ViewCache, 2)
		Expect(value).To(Equal(byte(0x53)))
	})

	It("should keep the two views independent", func() {
		err := store.ApplyMaskedUpdate(ViewCache, 1, 0xFF, 0x42)
		Expect(err).ToNot(HaveOccurred())

		committed, _ := store.Read(ViewCommitted, 1)
		Expect(committed).To(Equal(byte(0)))
	})

	It("should refuse to read beyond the size", func() {
		_, err := store.Read(ViewCache, 8)

		var oorErr *OutOfRangeError
		Expect(errors.As(err, &oorErr)).To(BeTrue())
		Expect(oorErr.Address).To(Equal(uint64(8)))
		Expect(oorErr.Size).To(Equal(uint64(8)))
	})

	It("should refuse to update beyond the size", func() {
		err := store.ApplyMaskedUpdate(ViewCommitted, 100, 0xFF, 1)

		var oorErr *OutOfRangeError
		Expect(errors.As(err, &oorErr)).To(BeTrue())
	})

	It("should restore the default pattern on reset", func() {
		pattern := []byte{1, 2, 3, 4}
		patterned := MakeBuilder().
			WithSize(4).
			WithDefaultPattern(pattern).
			Build()

		err := patterned.ApplyMaskedUpdate(ViewCommitted, 0, 0xFF, 0x99)
		Expect(err).ToNot(HaveOccurred())

		patterned.ResetToDefault(ViewCommitted)

		Expect(patterned.Snapshot(ViewCommitted)).To(Equal(pattern))
	})

	It("should copy, not alias, the snapshot", func() {
		snapshot := store.Snapshot(ViewCache)
		snapshot[0] = 0xFF

		value, _ := store.Read(ViewCache, 0)
		Expect(value).To(Equal(byte(0)))
	})
})
