package directconnection

import (
	"github.com/sarchlab/simplecache/sim/modeling"
	"go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sampleMsg struct {
	modeling.MsgMeta
}

func (m *sampleMsg) Meta() *modeling.MsgMeta {
	return &m.MsgMeta
}

func (m *sampleMsg) Clone() modeling.Msg {
	c := *m
	return &c
}

var _ = Describe("DirectConnection", func() {
	var (
		mockCtrl   *gomock.Controller
		port1      *MockPort
		port2      *MockPort
		connection *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		port1 = NewMockPort(mockCtrl)
		port1.EXPECT().AsRemote().Return(modeling.RemotePort("P1")).AnyTimes()
		port2 = NewMockPort(mockCtrl)
		port2.EXPECT().AsRemote().Return(modeling.RemotePort("P2")).AnyTimes()

		connection = MakeBuilder().Build("Conn")

		port1.EXPECT().SetConnection(connection)
		port2.EXPECT().SetConnection(connection)
		connection.PlugIn(port1)
		connection.PlugIn(port2)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should find ports and peers", func() {
		Expect(connection.FindPort("P2")).To(BeIdenticalTo(port2))
		Expect(connection.FindPort("P3")).To(BeNil())
		Expect(connection.Peers(port1)).To(ConsistOf(port2))
	})

	It("should deliver messages to the destination", func() {
		msg := &sampleMsg{modeling.MsgMeta{Src: "P1", Dst: "P2"}}
		port2.EXPECT().Deliver(msg).Return(nil)

		Expect(connection.Send(msg)).To(BeNil())
	})

	It("should return the error when the destination refuses", func() {
		msg := &sampleMsg{modeling.MsgMeta{Src: "P1", Dst: "P2"}}
		port2.EXPECT().Deliver(msg).Return(modeling.NewSendError())

		Expect(connection.Send(msg)).NotTo(BeNil())
	})

	It("should panic when the destination is unknown", func() {
		port1.EXPECT().Name().Return("P1").AnyTimes()
		msg := &sampleMsg{modeling.MsgMeta{Src: "P1", Dst: "P3"}}

		Expect(func() { connection.Send(msg) }).To(Panic())
	})

	It("should notify the refused sender when the receiver is available", func() {
		msg := &sampleMsg{modeling.MsgMeta{Src: "P1", Dst: "P2"}}
		port2.EXPECT().Deliver(msg).Return(modeling.NewSendError()).Times(2)
		connection.Send(msg)
		connection.Send(msg)

		port1.EXPECT().NotifyAvailable().Times(1)

		connection.NotifyAvailable(port2)
		connection.NotifyAvailable(port2)
	})

	It("should not notify anyone if nothing was refused", func() {
		connection.NotifyAvailable(port1)
	})

	It("should unplug ports", func() {
		connection.Unplug(port2)

		Expect(connection.FindPort("P2")).To(BeNil())
		Expect(connection.Peers(port1)).To(BeEmpty())
	})
})
