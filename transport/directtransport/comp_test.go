package directtransport

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/swamp-sc/swamp/protocol"
)

type recordingReceiver struct {
	rsps   []protocol.Rsp
	resets int
}

func (r *recordingReceiver) ReceiveRsp(rsps ...protocol.Rsp) error {
	r.rsps = append(r.rsps, rsps...)
	return nil
}

func (r *recordingReceiver) HandleReset() {
	r.resets++
}

var _ = Describe("Comp", func() {
	var (
		link     *Comp
		receiver *recordingReceiver
		origin   string
	)

	BeforeEach(func() {
		link = MakeBuilder().
			WithDeviceSize(16).
			Build("Link")
		receiver = &recordingReceiver{}
		origin = link.Attach(receiver)
	})

	writeMsg := func(address uint64, value, bitmask byte) *protocol.WriteTransaction {
		return protocol.WriteTransactionBuilder{}.
			WithOrigin(origin).
			WithTarget(link.Name()).
			WithAddress(address).
			WithValue(value).
			WithBitmask(bitmask).
			Build()
	}

	It("should assign distinct origins to attached receivers", func() {
		other := link.Attach(&recordingReceiver{})

		Expect(other).ToNot(Equal(origin))
	})

	It("should queue sends without delivering them", func() {
		Expect(link.Send(writeMsg(3, 42, 0xFF))).To(Succeed())

		Expect(link.PendingCount()).To(Equal(1))
		Expect(receiver.rsps).To(BeEmpty())
	})

	It("should execute a write and ack it to the issuing origin", func() {
		msg := writeMsg(3, 42, 0xFF)
		Expect(link.Send(msg)).To(Succeed())

		delivered, err := link.Deliver()

		Expect(delivered).To(BeTrue())
		Expect(err).ToNot(HaveOccurred())
		Expect(link.Device().Register(3)).To(Equal(byte(42)))
		Expect(receiver.rsps).To(HaveLen(1))

		ack, ok := receiver.rsps[0].(*protocol.WriteAck)
		Expect(ok).To(BeTrue())
		Expect(ack.RspTo()).To(Equal(msg.ID))
	})

	It("should apply only the masked bits on the device", func() {
		Expect(link.Send(writeMsg(3, 0xAB, 0xFF))).To(Succeed())
		Expect(link.Send(writeMsg(3, 0x01, 0x0F))).To(Succeed())

		Expect(link.DeliverAll()).To(Succeed())

		Expect(link.Device().Register(3)).To(Equal(byte(0xA1)))
	})

	It("should deliver messages in FIFO order", func() {
		first := writeMsg(1, 0x11, 0xFF)
		second := writeMsg(2, 0x22, 0xFF)
		Expect(link.Send(first)).To(Succeed())
		Expect(link.Send(second)).To(Succeed())

		Expect(link.DeliverAll()).To(Succeed())

		Expect(receiver.rsps).To(HaveLen(2))
		Expect(receiver.rsps[0].RspTo()).To(Equal(first.ID))
		Expect(receiver.rsps[1].RspTo()).To(Equal(second.ID))
	})

	It("should nack writes on a failing address", func() {
		link.Device().FailAddress(3, "register is read-only")
		Expect(link.Send(writeMsg(3, 42, 0xFF))).To(Succeed())

		Expect(link.DeliverAll()).To(Succeed())

		nack, ok := receiver.rsps[0].(*protocol.WriteNack)
		Expect(ok).To(BeTrue())
		Expect(nack.Reason).To(Equal("register is read-only"))
		Expect(link.Device().Register(3)).To(Equal(byte(0)))
	})

	It("should serve reads from the device registers", func() {
		Expect(link.Send(writeMsg(5, 0x66, 0xFF))).To(Succeed())
		read := protocol.ReadTransactionBuilder{}.
			WithOrigin(origin).
			WithAddress(5).
			Build()
		Expect(link.Send(read)).To(Succeed())

		Expect(link.DeliverAll()).To(Succeed())

		ack, ok := receiver.rsps[1].(*protocol.ReadAck)
		Expect(ok).To(BeTrue())
		Expect(ack.Value).To(Equal(byte(0x66)))
	})

	It("should reset the device and announce it to all receivers", func() {
		second := &recordingReceiver{}
		link.Attach(second)
		Expect(link.Send(writeMsg(3, 42, 0xFF))).To(Succeed())
		Expect(link.DeliverAll()).To(Succeed())

		link.TriggerReset()

		Expect(link.Device().Register(3)).To(Equal(byte(0)))
		Expect(receiver.resets).To(Equal(1))
		Expect(second.resets).To(Equal(1))
	})

	It("should reset the device when a reset signal is delivered", func() {
		Expect(link.Send(writeMsg(3, 42, 0xFF))).To(Succeed())
		signal := protocol.ResetSignalBuilder{}.
			WithOrigin(origin).
			Build()
		Expect(link.Send(signal)).To(Succeed())

		Expect(link.DeliverAll()).To(Succeed())

		Expect(link.Device().Register(3)).To(Equal(byte(0)))
		Expect(receiver.resets).To(Equal(1))
	})

	It("should restore the default pattern on reset", func() {
		pattern := []byte{9, 8, 7, 6}
		patterned := MakeBuilder().
			WithDeviceSize(4).
			WithDefaultPattern(pattern).
			Build("Patterned")

		patterned.TriggerReset()

		Expect(patterned.Device().Register(0)).To(Equal(byte(9)))
	})
})
