// Package simplememobj provides a memory object that passes requests from an
// instruction port and a data port to the next level, one at a time.
package simplememobj

import (
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/timing"
	"github.com/sarchlab/simplecache/tracing"
)

type transaction struct {
	req  mem.AccessReq
	fwd  mem.AccessReq
	port *cpuSidePort
}

// Comp forwards each request to the next level and blocks until the
// response comes back.
type Comp struct {
	*modeling.ComponentBase

	instPort *cpuSidePort
	dataPort *cpuSidePort
	memPort  *memSidePort

	addressToPortMapper mem.AddressToPortMapper

	outstanding *transaction
}

// InstPort returns the port that receives instruction fetches.
func (c *Comp) InstPort() modeling.Port {
	return c.instPort.Port
}

// DataPort returns the port that receives data accesses.
func (c *Comp) DataPort() modeling.Port {
	return c.dataPort.Port
}

// MemPort returns the port connected to the next level.
func (c *Comp) MemPort() modeling.Port {
	return c.memPort.Port
}

// Blocked tells if a request is waiting for its response.
func (c *Comp) Blocked() bool {
	return c.outstanding != nil
}

func (c *Comp) cpuPorts() []*cpuSidePort {
	return []*cpuSidePort{c.instPort, c.dataPort}
}

func (c *Comp) findCPUPort(port modeling.Port) *cpuSidePort {
	for _, p := range c.cpuPorts() {
		if p.Port == port {
			return p
		}
	}

	return nil
}

// Handle panics as the memory object never schedules events.
func (c *Comp) Handle(e timing.Event) error {
	log.Panicf("%s cannot handle event of type %s",
		c.Name(), reflect.TypeOf(e))

	return nil
}

// NotifyRecv dispatches an inbound message to the port that received it.
func (c *Comp) NotifyRecv(port modeling.Port, msg modeling.Msg) bool {
	if p := c.findCPUPort(port); p != nil {
		return p.recvReq(msg.(mem.AccessReq))
	}

	if port == c.memPort.Port {
		return c.handleResponse(msg.(mem.AccessRsp))
	}

	log.Panicf("port %s does not belong to %s", port.Name(), c.Name())

	return false
}

// NotifyPortFree resends what the receiver refused.
func (c *Comp) NotifyPortFree(port modeling.Port) {
	if p := c.findCPUPort(port); p != nil {
		p.recvRespRetry()
		return
	}

	c.memPort.recvReqRetry()
}

func (c *Comp) handleRequest(port *cpuSidePort, req mem.AccessReq) bool {
	if c.outstanding != nil ||
		c.memPort.blockedPacket != nil ||
		port.blockedPacket != nil {
		return false
	}

	tracing.TraceReqReceive(req, c)

	fwd := c.forward(req)

	// The next level may respond while the request is being sent.
	c.outstanding = &transaction{req: req, fwd: fwd, port: port}
	c.memPort.sendPacket(fwd)

	if !req.NeedsResponse() {
		c.outstanding = nil
		tracing.TraceReqComplete(req, c)
		c.trySendRetries()
	}

	return true
}

func (c *Comp) forward(req mem.AccessReq) mem.AccessReq {
	fwd := req.Clone().(mem.AccessReq)
	fwd.Meta().Src = c.memPort.AsRemote()
	fwd.Meta().Dst = c.addressToPortMapper.Find(req.GetAddress())

	return fwd
}

func (c *Comp) handleResponse(rsp mem.AccessRsp) bool {
	t := c.outstanding
	if t == nil || rsp.GetRspTo() != t.fwd.Meta().ID {
		log.Panicf("%s received response %s to %s that it is not waiting for",
			c.Name(), rsp.Meta().ID, rsp.GetRspTo())
	}

	c.outstanding = nil
	tracing.TraceReqComplete(t.req, c)

	t.port.sendPacket(c.reply(t.port, t.req, rsp))
	c.trySendRetries()

	return true
}

// reply turns a response from the next level into the response to the
// original request.
func (c *Comp) reply(
	port *cpuSidePort,
	req mem.AccessReq,
	rsp mem.AccessRsp,
) mem.AccessRsp {
	switch rsp := rsp.(type) {
	case *mem.DataReadyRsp:
		return mem.DataReadyRspBuilder{}.
			WithSrc(port.AsRemote()).
			WithDst(req.Meta().Src).
			WithRspTo(req.Meta().ID).
			WithData(rsp.Data).
			Build()
	case *mem.WriteDoneRsp:
		return mem.WriteDoneRspBuilder{}.
			WithSrc(port.AsRemote()).
			WithDst(req.Meta().Src).
			WithRspTo(req.Meta().ID).
			Build()
	default:
		log.Panicf("%s cannot handle response of type %s",
			c.Name(), reflect.TypeOf(rsp))
	}

	return nil
}

func (c *Comp) trySendRetries() {
	for _, p := range c.cpuPorts() {
		if c.outstanding != nil {
			return
		}

		p.trySendRetry()
	}
}

// HandleFunctional passes an untimed access to the next level.
func (c *Comp) HandleFunctional(
	port modeling.Port,
	req mem.AccessReq,
) mem.AccessRsp {
	p := c.findCPUPort(port)
	if p == nil {
		log.Panicf("%s only serves functional accesses from the CPU side",
			c.Name())
	}

	rsp := mem.SendFunctional(c.memPort, c.forward(req))
	if rsp == nil {
		return nil
	}

	return c.reply(p, req, rsp)
}

// AddrRanges returns the addresses served by the next level.
func (c *Comp) AddrRanges(_ modeling.Port) []mem.AddrRange {
	return mem.QueryAddrRanges(c.memPort)
}

// NotifyRangeChange tells both CPU-side peers that the ranges changed.
func (c *Comp) NotifyRangeChange(port modeling.Port) {
	if port != c.memPort.Port {
		return
	}

	for _, p := range c.cpuPorts() {
		if p.Connection() != nil {
			mem.SendRangeChange(p.Port)
		}
	}
}
