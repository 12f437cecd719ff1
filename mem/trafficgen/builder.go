package trafficgen

import (
	"log"
	"math/rand"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/timing"
)

// A Builder can build traffic generators.
type Builder struct {
	engine              timing.Engine
	freq                timing.Freq
	pattern             Pattern
	readPercent         float64
	accessSize          uint64
	numAccesses         int
	startAddress        uint64
	maxAddress          uint64
	maxOutstanding      int
	seed                int64
	addressToPortMapper mem.AddressToPortMapper
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:           1 * timing.GHz,
		pattern:        PatternLinear,
		readPercent:    50,
		accessSize:     4,
		numAccesses:    1000,
		maxAddress:     4 * mem.KB,
		maxOutstanding: 1,
		seed:           1,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency at which requests are issued.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithPattern sets the address pattern.
func (b Builder) WithPattern(pattern Pattern) Builder {
	b.pattern = pattern
	return b
}

// WithReadPercent sets the percentage of requests that are reads.
func (b Builder) WithReadPercent(percent float64) Builder {
	b.readPercent = percent
	return b
}

// WithAccessSize sets the number of bytes of each access.
func (b Builder) WithAccessSize(size uint64) Builder {
	b.accessSize = size
	return b
}

// WithNumAccesses sets the total number of requests.
func (b Builder) WithNumAccesses(n int) Builder {
	b.numAccesses = n
	return b
}

// WithAddressWindow sets the addresses to access to [start, end).
func (b Builder) WithAddressWindow(start, end uint64) Builder {
	b.startAddress = start
	b.maxAddress = end
	return b
}

// WithMaxOutstanding sets the number of requests that can wait for a
// response at the same time.
func (b Builder) WithMaxOutstanding(n int) Builder {
	b.maxOutstanding = n
	return b
}

// WithSeed sets the seed of the random number generator.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithAddressToPortMapper sets the mapper that finds where requests go.
func (b Builder) WithAddressToPortMapper(m mem.AddressToPortMapper) Builder {
	b.addressToPortMapper = m
	return b
}

// Build creates a generator.
func (b Builder) Build(name string) *Gen {
	b.parametersMustBeValid()

	g := &Gen{
		addressToPortMapper: b.addressToPortMapper,
		readPercent:         b.readPercent,
		numAccesses:         b.numAccesses,
		maxOutstanding:      b.maxOutstanding,
		outstanding:         make(map[string]*transaction),
		written:             make(map[uint64]byte),
	}
	g.TickingComponent = modeling.NewTickingComponent(
		name, b.engine, b.freq, g)
	g.stats = newStats(name)
	g.addrs = &addressGenerator{
		pattern:    b.pattern,
		start:      b.startAddress,
		end:        b.maxAddress,
		accessSize: b.accessSize,
		rng:        rand.New(rand.NewSource(b.seed)),
	}

	g.port = modeling.NewPort(g, name+".Port")
	g.AddPort("Port", g.port)

	return g
}

func (b Builder) parametersMustBeValid() {
	if b.engine == nil {
		log.Panic("engine is not set")
	}

	if b.addressToPortMapper == nil {
		log.Panic("address to port mapper is not set")
	}

	if b.accessSize == 0 || b.accessSize&(b.accessSize-1) != 0 {
		log.Panicf("access size must be a power of 2, got %d", b.accessSize)
	}

	if b.startAddress%b.accessSize != 0 {
		log.Panicf("start address %#x is not aligned to %d bytes",
			b.startAddress, b.accessSize)
	}

	if b.maxAddress < b.startAddress+b.accessSize {
		log.Panicf("address window [%#x, %#x) cannot hold one access",
			b.startAddress, b.maxAddress)
	}

	if b.readPercent < 0 || b.readPercent > 100 {
		log.Panicf("read percent must be in [0, 100], got %g", b.readPercent)
	}

	if b.numAccesses < 0 {
		log.Panicf("number of accesses must not be negative, got %d",
			b.numAccesses)
	}

	if b.maxOutstanding < 1 {
		log.Panicf("max outstanding must be positive, got %d",
			b.maxOutstanding)
	}
}
