// Package trafficgen provides a component that issues memory accesses and
// checks that reads return the data last written.
package trafficgen

import (
	"fmt"
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/timing"
	"github.com/sarchlab/simplecache/tracing"
)

type transaction struct {
	req      mem.AccessReq
	expected map[uint64]byte
	sendTime timing.VTimeInSec
}

// Gen issues a fixed number of reads and writes through its port.
type Gen struct {
	*modeling.TickingComponent

	port                modeling.Port
	addressToPortMapper mem.AddressToPortMapper
	addrs               *addressGenerator
	stats               *Stats

	readPercent    float64
	numAccesses    int
	maxOutstanding int

	issued      int
	pending     mem.AccessReq
	outstanding map[string]*transaction
	written     map[uint64]byte
	errs        []error
}

// Port returns the port that sends requests.
func (g *Gen) Port() modeling.Port {
	return g.port
}

// Stats returns the statistics of the generator.
func (g *Gen) Stats() *Stats {
	return g.stats
}

// Errors returns a description of every read that returned wrong data.
func (g *Gen) Errors() []error {
	return g.errs
}

// Done tells if every access has been issued and completed.
func (g *Gen) Done() bool {
	return g.issued == g.numAccesses &&
		g.pending == nil &&
		len(g.outstanding) == 0
}

// Start schedules the first tick.
func (g *Gen) Start() {
	g.TickNow()
}

// Tick issues at most one request.
func (g *Gen) Tick() bool {
	if g.pending == nil {
		if g.issued >= g.numAccesses ||
			len(g.outstanding) >= g.maxOutstanding {
			return false
		}

		g.pending = g.generate()
		g.issued++
	}

	expected := g.expectedData(g.pending)

	if err := g.port.Send(g.pending); err != nil {
		return false
	}

	g.outstanding[g.pending.Meta().ID] = &transaction{
		req:      g.pending,
		expected: expected,
		sendTime: g.Engine.Now(),
	}
	tracing.TraceReqInitiate(g.pending, g, "")

	if w, ok := g.pending.(*mem.WriteReq); ok {
		for i, b := range w.Data {
			g.written[w.Address+uint64(i)] = b
		}
	}

	g.pending = nil

	return true
}

func (g *Gen) generate() mem.AccessReq {
	addr := g.addrs.nextAddress()
	dst := g.addressToPortMapper.Find(addr)

	if g.addrs.rng.Float64()*100 < g.readPercent {
		return mem.ReadReqBuilder{}.
			WithSrc(g.port.AsRemote()).
			WithDst(dst).
			WithAddress(addr).
			WithByteSize(g.addrs.accessSize).
			Build()
	}

	data := make([]byte, g.addrs.accessSize)
	for i := range data {
		data[i] = byte(g.addrs.rng.Intn(256))
	}

	return mem.WriteReqBuilder{}.
		WithSrc(g.port.AsRemote()).
		WithDst(dst).
		WithAddress(addr).
		WithData(data).
		Build()
}

// expectedData returns the known bytes that a read should return.
func (g *Gen) expectedData(req mem.AccessReq) map[uint64]byte {
	r, ok := req.(*mem.ReadReq)
	if !ok {
		return nil
	}

	expected := make(map[uint64]byte)

	for a := r.Address; a < r.Address+r.AccessByteSize; a++ {
		if b, found := g.written[a]; found {
			expected[a] = b
		}
	}

	return expected
}

// NotifyRecv accepts responses.
func (g *Gen) NotifyRecv(_ modeling.Port, msg modeling.Msg) bool {
	rsp, ok := msg.(mem.AccessRsp)
	if !ok {
		log.Panicf("cannot handle message of type %s", reflect.TypeOf(msg))
	}

	t, found := g.outstanding[rsp.GetRspTo()]
	if !found {
		log.Panicf("%s received a response to unknown request %s",
			g.Name(), rsp.GetRspTo())
	}

	delete(g.outstanding, rsp.GetRspTo())

	now := g.Engine.Now()
	g.stats.Latency.Sample(g.Freq.Cycle(now) - g.Freq.Cycle(t.sendTime))

	switch rsp := rsp.(type) {
	case *mem.DataReadyRsp:
		g.stats.Reads.Inc()
		g.check(t, rsp)
	case *mem.WriteDoneRsp:
		g.stats.Writes.Inc()
	default:
		log.Panicf("cannot handle response of type %s", reflect.TypeOf(rsp))
	}

	tracing.TraceReqFinalize(t.req, g)
	g.TickLater()

	return true
}

func (g *Gen) check(t *transaction, rsp *mem.DataReadyRsp) {
	read := t.req.(*mem.ReadReq)

	for addr, want := range t.expected {
		got := rsp.Data[addr-read.Address]
		if got != want {
			g.stats.Mismatches.Inc()
			g.errs = append(g.errs, fmt.Errorf(
				"%s read %#x at %#x, want %#x", g.Name(), got, addr, want))

			return
		}
	}
}

// NotifyRangeChange limits the address window to what the memory serves.
func (g *Gen) NotifyRangeChange(port modeling.Port) {
	end := uint64(0)

	for _, r := range mem.QueryAddrRanges(port) {
		if r.End > end {
			end = r.End
		}
	}

	if end == 0 {
		return
	}

	g.addrs.shrinkTo(end)
	windowMustNotBeEmpty(g)
}

func windowMustNotBeEmpty(g *Gen) {
	if g.addrs.numSlots() == 0 {
		log.Panicf("%s has no address left to access in [%#x, %#x)",
			g.Name(), g.addrs.start, g.addrs.end)
	}
}
