package simplecache

import (
	"fmt"
	"log"
	"math/bits"
	"math/rand"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/timing"
)

// Builder can build simple caches.
type Builder struct {
	engine              timing.Engine
	freq                timing.Freq
	latency             int
	blockSize           uint64
	byteSize            uint64
	numCPUPorts         int
	addressToPortMapper mem.AddressToPortMapper
	randSeed            int64
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:        1 * timing.GHz,
		latency:     1,
		blockSize:   64,
		byteSize:    16 * mem.KB,
		numCPUPorts: 1,
	}
}

// WithEngine sets the engine that the cache uses.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the cache.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithLatency sets the number of cycles from accepting a request to
// accessing the blocks.
func (b Builder) WithLatency(cycles int) Builder {
	b.latency = cycles
	return b
}

// WithBlockSize sets the number of bytes in a block.
func (b Builder) WithBlockSize(blockSize uint64) Builder {
	b.blockSize = blockSize
	return b
}

// WithByteSize sets the total number of bytes the cache can hold.
func (b Builder) WithByteSize(byteSize uint64) Builder {
	b.byteSize = byteSize
	return b
}

// WithNumCPUPorts sets the number of upstream ports.
func (b Builder) WithNumCPUPorts(n int) Builder {
	b.numCPUPorts = n
	return b
}

// WithAddressToPortMapper sets how the cache finds the next level.
func (b Builder) WithAddressToPortMapper(m mem.AddressToPortMapper) Builder {
	b.addressToPortMapper = m
	return b
}

// WithRandSeed sets the seed used to pick eviction victims.
func (b Builder) WithRandSeed(seed int64) Builder {
	b.randSeed = seed
	return b
}

// Build creates a new cache.
func (b Builder) Build(name string) *Comp {
	b.parametersMustBeValid()

	c := &Comp{
		engine:              b.engine,
		freq:                b.freq,
		latency:             b.latency,
		blockSize:           b.blockSize,
		addressToPortMapper: b.addressToPortMapper,
	}
	c.ComponentBase = modeling.NewComponentBase(name)
	c.stats = newStats(name)

	store := newBlockStore(b.blockSize, int(b.byteSize/b.blockSize),
		rand.New(rand.NewSource(b.randSeed)))
	c.access = &accessEngine{
		blockSize: b.blockSize,
		store:     store,
		writeback: c.writeback,
	}

	for i := 0; i < b.numCPUPorts; i++ {
		portName := fmt.Sprintf("CPUSide[%d]", i)
		p := &cpuSidePort{
			Port:  modeling.NewPort(c, name+"."+portName),
			owner: c,
		}
		c.cpuPorts = append(c.cpuPorts, p)
		c.AddPort(portName, p.Port)
	}

	c.memPort = &memSidePort{
		Port:  modeling.NewPort(c, name+".MemSide"),
		owner: c,
	}
	c.AddPort("MemSide", c.memPort.Port)

	return c
}

func (b Builder) parametersMustBeValid() {
	if b.engine == nil {
		log.Panic("engine is not set")
	}

	if b.freq <= 0 {
		log.Panicf("frequency must be positive, got %f", float64(b.freq))
	}

	if b.latency < 0 {
		log.Panicf("latency must not be negative, got %d", b.latency)
	}

	if b.blockSize == 0 || bits.OnesCount64(b.blockSize) != 1 {
		log.Panicf("block size must be a power of 2, got %d", b.blockSize)
	}

	if b.byteSize < b.blockSize || b.byteSize%b.blockSize != 0 {
		log.Panicf("size %d must be a positive multiple of the block size %d",
			b.byteSize, b.blockSize)
	}

	if b.numCPUPorts < 1 {
		log.Panicf("need at least one CPU-side port, got %d", b.numCPUPorts)
	}

	if b.addressToPortMapper == nil {
		log.Panic("address to port mapper is not set")
	}
}
