package simplememobj

import (
	"log"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/modeling"
)

type cpuSidePort struct {
	modeling.Port

	owner         *Comp
	blockedPacket modeling.Msg
	needRetry     bool
}

func (p *cpuSidePort) recvReq(req mem.AccessReq) bool {
	if !p.owner.handleRequest(p, req) {
		p.needRetry = true
		return false
	}

	return true
}

func (p *cpuSidePort) sendPacket(rsp modeling.Msg) {
	if p.blockedPacket != nil {
		log.Panicf("port %s is sending while holding a blocked packet",
			p.Name())
	}

	if err := p.Send(rsp); err != nil {
		p.blockedPacket = rsp
	}
}

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

func (p *cpuSidePort) trySendRetry() {
	if !p.needRetry || p.blockedPacket != nil {
		return
	}

	p.needRetry = false
	p.SendRetry()
}

type memSidePort struct {
	modeling.Port

	owner         *Comp
	blockedPacket modeling.Msg
}

func (p *memSidePort) sendPacket(req modeling.Msg) {
	if p.blockedPacket != nil {
		log.Panicf("port %s is sending while holding a blocked packet",
			p.Name())
	}

	if err := p.Send(req); err != nil {
		p.blockedPacket = req
	}
}

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
