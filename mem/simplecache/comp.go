// Package simplecache provides a blocking cache that serves one access at a
// time. Hits are served from the stored blocks. Misses fetch the whole block
// from the next level, and blocks are evicted at random when the cache is
// full.
package simplecache

import (
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/hooking"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/timing"
	"github.com/sarchlab/simplecache/tracing"
)

// HookPosDecision marks the cache making a decision about a message.
var HookPosDecision = &hooking.HookPos{Name: "SimpleCache Decision"}

// A Decision is the item of the hooks invoked at HookPosDecision.
type Decision struct {
	What    string
	Address uint64
	Msg     modeling.Msg
}

// transaction is the access being served.
type transaction struct {
	req  mem.AccessReq
	port *cpuSidePort

	// fetch is the request sent to the next level on a miss.
	fetch    mem.AccessReq
	missTime timing.VTimeInSec
}

type accessEvent struct {
	*timing.EventBase
}

func newAccessEvent(t timing.VTimeInSec, handler timing.Handler) *accessEvent {
	return &accessEvent{timing.NewEventBase(t, handler)}
}

// Comp is a simple cache. Every accepted access, hit or miss, keeps the
// cache busy for the configured latency before it is looked up, so a hit
// completes latency cycles after it arrives rather than in the same tick.
type Comp struct {
	*modeling.ComponentBase

	engine    timing.Engine
	freq      timing.Freq
	latency   int
	blockSize uint64

	cpuPorts            []*cpuSidePort
	memPort             *memSidePort
	addressToPortMapper mem.AddressToPortMapper

	access *accessEngine
	stats  *Stats

	outstanding   *transaction
	pendingAccess *accessEvent
}

// Stats returns the statistics of the cache.
func (c *Comp) Stats() *Stats {
	return c.stats
}

// Blocked tells if the cache is serving an access.
func (c *Comp) Blocked() bool {
	return c.outstanding != nil
}

// NumBlocks returns the number of blocks stored.
func (c *Comp) NumBlocks() int {
	return c.access.store.size()
}

// Capacity returns the number of blocks the cache can hold.
func (c *Comp) Capacity() int {
	return c.access.store.capacity()
}

// BlockAddresses returns the addresses of the stored blocks.
func (c *Comp) BlockAddresses() []uint64 {
	return c.access.store.addresses()
}

// CPUSidePort returns the i-th upstream port.
func (c *Comp) CPUSidePort(i int) modeling.Port {
	return c.cpuPorts[i].Port
}

// MemSidePort returns the downstream port.
func (c *Comp) MemSidePort() modeling.Port {
	return c.memPort.Port
}

func (c *Comp) findCPUPort(port modeling.Port) *cpuSidePort {
	for _, p := range c.cpuPorts {
		if p.Port == port {
			return p
		}
	}

	return nil
}

// NotifyRecv dispatches an inbound message to the port that received it.
func (c *Comp) NotifyRecv(port modeling.Port, msg modeling.Msg) bool {
	if p := c.findCPUPort(port); p != nil {
		req, ok := msg.(mem.AccessReq)
		if !ok {
			log.Panicf("%s cannot handle message of type %s",
				c.Name(), reflect.TypeOf(msg))
		}

		return p.recvReq(req)
	}

	if port == c.memPort.Port {
		rsp, ok := msg.(mem.AccessRsp)
		if !ok {
			log.Panicf("%s cannot handle message of type %s",
				c.Name(), reflect.TypeOf(msg))
		}

		return c.memPort.recvRsp(rsp)
	}

	log.Panicf("port %s does not belong to %s", port.Name(), c.Name())

	return false
}

// NotifyPortFree is called when a receiver that refused the cache is ready.
func (c *Comp) NotifyPortFree(port modeling.Port) {
	if p := c.findCPUPort(port); p != nil {
		p.recvRespRetry()
		return
	}

	if port == c.memPort.Port {
		c.memPort.recvReqRetry()
		return
	}

	log.Panicf("port %s does not belong to %s", port.Name(), c.Name())
}

// handleRequest accepts the request unless the cache is busy. An accepted
// request is accessed after the cache latency.
func (c *Comp) handleRequest(port *cpuSidePort, req mem.AccessReq) bool {
	c.access.accessMustBeWithinBlock(req)

	if c.outstanding != nil ||
		c.memPort.blockedPacket != nil ||
		port.blockedPacket != nil {
		c.decide("refuse", req)
		return false
	}

	c.outstanding = &transaction{req: req, port: port}
	tracing.TraceReqReceive(req, c)
	c.decide("accept", req)

	c.pendingAccess = newAccessEvent(
		c.freq.NCyclesLater(c.latency, c.engine.Now()), c)
	c.engine.Schedule(c.pendingAccess)

	return true
}

// Handle performs the access when the latency has passed.
func (c *Comp) Handle(e timing.Event) error {
	switch e := e.(type) {
	case *accessEvent:
		if e != c.pendingAccess {
			return nil
		}

		c.pendingAccess = nil
		c.accessTiming(c.outstanding)
	default:
		log.Panicf("%s cannot handle event of type %s",
			c.Name(), reflect.TypeOf(e))
	}

	return nil
}

func (c *Comp) accessTiming(t *transaction) {
	kind := c.access.classify(t.req)
	c.decide(kind.String(), t.req)

	if kind == accessHit {
		c.stats.Hits.Inc()
		tracing.TraceReqStep(t.req, c, "hit")

		block, _ := c.access.lookup(t.req.GetAddress())
		data := c.access.apply(block, t.req)
		c.sendResponse(c.makeResponse(t, data))

		return
	}

	c.stats.Misses.Inc()
	tracing.TraceReqStep(t.req, c, "miss")

	if !t.req.NeedsResponse() {
		c.memPort.sendPacket(c.forward(t.req))
		c.sendResponse(nil)

		return
	}

	t.missTime = c.engine.Now()

	if kind == accessMissForward {
		t.fetch = c.forward(t.req)
	} else {
		blockAddr := c.access.blockAddr(t.req.GetAddress())
		t.fetch = mem.ReadReqBuilder{}.
			WithSrc(c.memPort.AsRemote()).
			WithDst(c.addressToPortMapper.Find(blockAddr)).
			WithAddress(blockAddr).
			WithByteSize(c.blockSize).
			Build()
	}

	c.memPort.sendPacket(t.fetch)
}

func (c *Comp) forward(req mem.AccessReq) mem.AccessReq {
	fwd := req.Clone().(mem.AccessReq)
	fwd.Meta().Src = c.memPort.AsRemote()
	fwd.Meta().Dst = c.addressToPortMapper.Find(req.GetAddress())

	return fwd
}

// handleResponse completes the outstanding miss with the response from the
// next level.
func (c *Comp) handleResponse(rsp mem.AccessRsp) bool {
	t := c.outstanding
	if t == nil || t.fetch == nil || rsp.GetRspTo() != t.fetch.Meta().ID {
		log.Panicf("%s received response %s to %s that it is not waiting for",
			c.Name(), rsp.Meta().ID, rsp.GetRspTo())
	}

	c.stats.MissLatency.Sample(
		c.freq.Cycle(c.engine.Now()) - c.freq.Cycle(t.missTime))

	blockAddr := c.access.blockAddr(t.req.GetAddress())

	var block []byte

	switch rsp := rsp.(type) {
	case *mem.DataReadyRsp:
		block = rsp.Data
	case *mem.WriteDoneRsp:
		block = t.req.(*mem.WriteReq).Data
	default:
		log.Panicf("%s cannot handle response of type %s",
			c.Name(), reflect.TypeOf(rsp))
	}

	c.access.insertBlock(blockAddr, block)

	stored, _ := c.access.lookup(blockAddr)
	data := c.access.apply(stored, t.req)
	c.sendResponse(c.makeResponse(t, data))

	return true
}

func (c *Comp) makeResponse(t *transaction, data []byte) modeling.Msg {
	switch t.req.(type) {
	case *mem.ReadReq:
		return mem.DataReadyRspBuilder{}.
			WithSrc(t.port.AsRemote()).
			WithDst(t.req.Meta().Src).
			WithRspTo(t.req.Meta().ID).
			WithData(data).
			Build()
	case *mem.WriteReq:
		return mem.WriteDoneRspBuilder{}.
			WithSrc(t.port.AsRemote()).
			WithDst(t.req.Meta().Src).
			WithRspTo(t.req.Meta().ID).
			Build()
	default:
		return nil
	}
}

// sendResponse ends the outstanding access and sends the response, if any,
// to the client. The clients refused earlier may then resend.
func (c *Comp) sendResponse(rsp modeling.Msg) {
	t := c.outstanding
	c.outstanding = nil

	tracing.TraceReqComplete(t.req, c)

	if rsp != nil {
		c.decide("respond", rsp)
		t.port.sendPacket(rsp)
	}

	c.trySendRetries()
}

// trySendRetries offers a retry to every client that was refused. It does
// nothing while the cache is busy.
func (c *Comp) trySendRetries() {
	for _, p := range c.cpuPorts {
		if c.outstanding != nil {
			return
		}

		p.trySendRetry()
	}
}

func (c *Comp) writeback(addr uint64, data []byte) {
	wb := mem.WritebackReqBuilder{}.
		WithSrc(c.memPort.AsRemote()).
		WithDst(c.addressToPortMapper.Find(addr)).
		WithAddress(addr).
		WithData(data).
		Build()

	c.decide("evict", wb)
	c.memPort.sendPacket(wb)
}

// HandleFunctional serves an untimed access from a CPU-side port. Stored
// blocks serve it directly; otherwise it goes to the next level.
func (c *Comp) HandleFunctional(
	port modeling.Port,
	req mem.AccessReq,
) mem.AccessRsp {
	p := c.findCPUPort(port)
	if p == nil {
		log.Panicf("%s only serves functional accesses from the CPU side",
			c.Name())
	}

	t := &transaction{req: req, port: p}

	if data, hit := c.access.accessFunctional(req); hit {
		c.decide("functional-hit", req)
		return c.functionalResponse(t, data)
	}

	c.decide("functional-miss", req)

	rsp := mem.SendFunctional(c.memPort, c.forward(req))
	if rsp == nil {
		return nil
	}

	var data []byte
	if dr, ok := rsp.(*mem.DataReadyRsp); ok {
		data = dr.Data
	}

	return c.functionalResponse(t, data)
}

func (c *Comp) functionalResponse(t *transaction, data []byte) mem.AccessRsp {
	rsp := c.makeResponse(t, data)
	if rsp == nil {
		return nil
	}

	return rsp.(mem.AccessRsp)
}

// AddrRanges returns the addresses served behind the cache.
func (c *Comp) AddrRanges(port modeling.Port) []mem.AddrRange {
	if p := c.findCPUPort(port); p != nil {
		return p.AddrRanges()
	}

	return nil
}

func (c *Comp) addrRanges() []mem.AddrRange {
	return mem.QueryAddrRanges(c.memPort)
}

// NotifyRangeChange passes a range change from the next level to the
// clients.
func (c *Comp) NotifyRangeChange(port modeling.Port) {
	if port == c.memPort.Port {
		c.memPort.recvRangeChange()
	}
}

func (c *Comp) sendRangeChange() {
	for _, p := range c.cpuPorts {
		if p.Connection() == nil {
			continue
		}

		mem.SendRangeChange(p.Port)
	}
}

func (c *Comp) decide(what string, msg modeling.Msg) {
	if c.NumHooks() == 0 {
		return
	}

	d := Decision{What: what, Msg: msg}
	if req, ok := msg.(mem.AccessReq); ok {
		d.Address = req.GetAddress()
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosDecision,
		Item:   d,
	})
}
