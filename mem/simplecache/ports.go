package simplecache

import (
	"log"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/modeling"
)

func blockedSlotMustBeEmpty(slot modeling.Msg, portName string) {
	if slot != nil {
		log.Panicf("port %s is sending while holding a blocked packet",
			portName)
	}
}

// cpuSidePort serves the requests from one upstream client.
type cpuSidePort struct {
	modeling.Port

	owner *Comp

	// blockedPacket is the response the client refused.
	blockedPacket modeling.Msg

	// needRetry is set when a request from the client was refused.
	needRetry bool
}

// recvReq offers a request to the cache. A refused request makes the port owe
// the client a retry.
func (p *cpuSidePort) recvReq(req mem.AccessReq) bool {
	if !p.owner.handleRequest(p, req) {
		p.needRetry = true
		return false
	}

	return true
}

// sendPacket sends a response, holding it if the client refuses.
func (p *cpuSidePort) sendPacket(rsp modeling.Msg) {
	blockedSlotMustBeEmpty(p.blockedPacket, p.Name())

	if err := p.Send(rsp); err != nil {
		p.blockedPacket = rsp
		p.owner.decide("rsp-blocked", rsp)
	}
}

// recvRespRetry resends the held response once the client is ready.
func (p *cpuSidePort) recvRespRetry() {
	if p.blockedPacket == nil {
		log.Panicf("port %s received a retry without a blocked response",
			p.Name())
	}

	pkt := p.blockedPacket
	p.blockedPacket = nil
	p.sendPacket(pkt)

	p.owner.trySendRetries()
}

// trySendRetry tells the client to resend if a request was refused earlier.
func (p *cpuSidePort) trySendRetry() {
	if !p.needRetry || p.blockedPacket != nil {
		return
	}

	p.needRetry = false
	p.SendRetry()
}

// AddrRanges returns the addresses served behind the cache.
func (p *cpuSidePort) AddrRanges() []mem.AddrRange {
	return p.owner.addrRanges()
}

// memSidePort issues requests to the next level.
type memSidePort struct {
	modeling.Port

	owner *Comp

	// blockedPacket is the request the next level refused.
	blockedPacket modeling.Msg
}

// sendPacket sends a request, holding it if the next level refuses.
func (p *memSidePort) sendPacket(req modeling.Msg) {
	blockedSlotMustBeEmpty(p.blockedPacket, p.Name())

	if err := p.Send(req); err != nil {
		p.blockedPacket = req
		p.owner.decide("req-blocked", req)
	}
}

// recvReqRetry resends the held request once the next level is ready.
func (p *memSidePort) recvReqRetry() {
	if p.blockedPacket == nil {
		log.Panicf("port %s received a retry without a blocked request",
			p.Name())
	}

	pkt := p.blockedPacket
	p.blockedPacket = nil
	p.sendPacket(pkt)

	if p.blockedPacket == nil {
		p.owner.trySendRetries()
	}
}

func (p *memSidePort) recvRsp(rsp mem.AccessRsp) bool {
	return p.owner.handleResponse(rsp)
}

func (p *memSidePort) recvRangeChange() {
	p.owner.sendRangeChange()
}
