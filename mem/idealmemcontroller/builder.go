package idealmemcontroller

import (
	"log"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/queueing"
	"github.com/sarchlab/simplecache/sim/timing"
)

// Builder can build ideal memory controllers.
type Builder struct {
	engine      timing.Engine
	freq        timing.Freq
	latency     int
	capacity    uint64
	maxInflight int
	storage     *mem.Storage
}

// MakeBuilder returns a new Builder
func MakeBuilder() Builder {
	return Builder{
		latency:     100,
		freq:        1 * timing.GHz,
		capacity:    4 * mem.GB,
		maxInflight: 16,
	}
}

// WithLatency sets the latency of the memory controller
func (b Builder) WithLatency(latency int) Builder {
	b.latency = latency
	return b
}

// WithFreq sets the frequency of the memory controller
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithNewStorage sets the capacity of the memory controller
func (b Builder) WithNewStorage(capacity uint64) Builder {
	b.capacity = capacity
	return b
}

// WithEngine sets the engine of the memory controller
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithMaxInflight sets how many requests can be served at the same time.
func (b Builder) WithMaxInflight(n int) Builder {
	b.maxInflight = n
	return b
}

// WithStorage sets the storage of the memory controller
func (b Builder) WithStorage(storage *mem.Storage) Builder {
	b.storage = storage
	return b
}

// Build builds a new Comp
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		log.Panic("engine is not set")
	}

	if b.maxInflight < 1 {
		log.Panicf("max inflight must be positive, got %d", b.maxInflight)
	}

	c := &Comp{
		Engine:      b.engine,
		Freq:        b.freq,
		Latency:     b.latency,
		MaxInflight: b.maxInflight,
	}
	c.ComponentBase = modeling.NewComponentBase(name)

	if b.storage == nil {
		c.Storage = mem.NewStorage(b.capacity)
	} else {
		c.Storage = b.storage
	}

	c.held = queueing.NewBuffer[heldRsp](name+".HeldRsps", b.maxInflight)

	c.topPort = modeling.NewPort(c, name+".TopPort")
	c.AddPort("Top", c.topPort)

	return c
}
