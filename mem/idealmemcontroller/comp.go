// Package idealmemcontroller provides a memory that serves every request in
// a fixed number of cycles.
package idealmemcontroller

import (
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/queueing"
	"github.com/sarchlab/simplecache/sim/timing"
	"github.com/sarchlab/simplecache/tracing"
)

type respondEvent struct {
	*timing.EventBase
	req mem.AccessReq
}

func newRespondEvent(
	time timing.VTimeInSec,
	handler timing.Handler,
	req mem.AccessReq,
) *respondEvent {
	return &respondEvent{timing.NewEventBase(time, handler), req}
}

type heldRsp struct {
	req mem.AccessReq
	rsp modeling.Msg
}

// An Comp is an ideal memory controller that can perform read and write.
// It responds to every request after a fixed number of cycles and serves at
// most MaxInflight requests at the same time.
type Comp struct {
	*modeling.ComponentBase

	Engine      timing.Engine
	Freq        timing.Freq
	Storage     *mem.Storage
	Latency     int
	MaxInflight int

	topPort modeling.Port

	inflight  int
	needRetry bool
	held      *queueing.Buffer[heldRsp]
}

// TopPort returns the port that receives requests.
func (c *Comp) TopPort() modeling.Port {
	return c.topPort
}

// Inflight returns the number of requests being served.
func (c *Comp) Inflight() int {
	return c.inflight
}

// Queues returns the buffer of responses waiting for the top port.
func (c *Comp) Queues() []queueing.Queue {
	return []queueing.Queue{c.held}
}

// NotifyRecv accepts a request unless too many are being served.
func (c *Comp) NotifyRecv(_ modeling.Port, msg modeling.Msg) bool {
	req, ok := msg.(mem.AccessReq)
	if !ok {
		log.Panicf("cannot handle message of type %s", reflect.TypeOf(msg))
	}

	if c.inflight >= c.MaxInflight {
		c.needRetry = true
		return false
	}

	c.inflight++
	tracing.TraceReqReceive(req, c)

	timeToSchedule := c.Freq.NCyclesLater(c.Latency, c.Engine.Now())
	c.Engine.Schedule(newRespondEvent(timeToSchedule, c, req))

	return true
}

// Handle defines how the Comp handles event
func (c *Comp) Handle(e timing.Event) error {
	switch e := e.(type) {
	case *respondEvent:
		return c.handleRespondEvent(e)
	default:
		log.Panicf("cannot handle event of %s", reflect.TypeOf(e))
	}

	return nil
}

func (c *Comp) handleRespondEvent(e *respondEvent) error {
	rsp, err := c.access(e.req)
	if err != nil {
		return err
	}

	if rsp == nil {
		c.complete(e.req)
		return nil
	}

	if c.held.Size() > 0 {
		c.held.Push(heldRsp{req: e.req, rsp: rsp})
		return nil
	}

	if sendErr := c.topPort.Send(rsp); sendErr != nil {
		c.held.Push(heldRsp{req: e.req, rsp: rsp})
		return nil
	}

	c.complete(e.req)

	return nil
}

// access performs the request on the storage and returns the response, or
// nil for requests that need none.
func (c *Comp) access(req mem.AccessReq) (modeling.Msg, error) {
	switch req := req.(type) {
	case *mem.ReadReq:
		data, err := c.Storage.Read(req.Address, req.AccessByteSize)
		if err != nil {
			return nil, err
		}

		return mem.DataReadyRspBuilder{}.
			WithSrc(c.topPort.AsRemote()).
			WithDst(req.Src).
			WithRspTo(req.ID).
			WithData(data).
			Build(), nil
	case *mem.WriteReq:
		if err := c.Storage.Write(req.Address, req.Data); err != nil {
			return nil, err
		}

		return mem.WriteDoneRspBuilder{}.
			WithSrc(c.topPort.AsRemote()).
			WithDst(req.Src).
			WithRspTo(req.ID).
			Build(), nil
	case *mem.WritebackReq:
		return nil, c.Storage.Write(req.Address, req.Data)
	default:
		log.Panicf("cannot handle request of type %s", reflect.TypeOf(req))
	}

	return nil, nil
}

func (c *Comp) complete(req mem.AccessReq) {
	c.inflight--
	tracing.TraceReqComplete(req, c)

	if c.needRetry {
		c.needRetry = false
		c.topPort.SendRetry()
	}
}

// NotifyPortFree resends the responses that were refused.
func (c *Comp) NotifyPortFree(_ modeling.Port) {
	for {
		h, ok := c.held.Peek()
		if !ok {
			return
		}

		if err := c.topPort.Send(h.rsp); err != nil {
			return
		}

		c.held.Pop()
		c.complete(h.req)
	}
}

// HandleFunctional accesses the storage without taking simulated time.
func (c *Comp) HandleFunctional(
	_ modeling.Port,
	req mem.AccessReq,
) mem.AccessRsp {
	rsp, err := c.access(req)
	if err != nil {
		log.Panic(err)
	}

	if rsp == nil {
		return nil
	}

	return rsp.(mem.AccessRsp)
}

// AddrRanges returns the addresses that the storage holds.
func (c *Comp) AddrRanges(_ modeling.Port) []mem.AddrRange {
	return []mem.AddrRange{{Start: 0, End: c.Storage.Capacity()}}
}

// AnnounceRanges tells the components connected to the top port which
// addresses are served.
func (c *Comp) AnnounceRanges() {
	mem.SendRangeChange(c.topPort)
}
