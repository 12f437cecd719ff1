package simplememobj

import (
	"log"

	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/sim/modeling"
)

// A Builder can build simple memory objects.
type Builder struct {
	addressToPortMapper mem.AddressToPortMapper
}

// MakeBuilder creates a new Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithAddressToPortMapper sets the mapper that finds where requests go.
func (b Builder) WithAddressToPortMapper(m mem.AddressToPortMapper) Builder {
	b.addressToPortMapper = m
	return b
}

// Build creates a memory object with its InstPort, DataPort, and MemPort.
func (b Builder) Build(name string) *Comp {
	if b.addressToPortMapper == nil {
		log.Panic("address to port mapper is not set")
	}

	c := &Comp{addressToPortMapper: b.addressToPortMapper}
	c.ComponentBase = modeling.NewComponentBase(name)

	c.instPort = &cpuSidePort{owner: c}
	c.instPort.Port = modeling.NewPort(c, name+".InstPort")
	c.AddPort("InstPort", c.instPort.Port)

	c.dataPort = &cpuSidePort{owner: c}
	c.dataPort.Port = modeling.NewPort(c, name+".DataPort")
	c.AddPort("DataPort", c.dataPort.Port)

	c.memPort = &memSidePort{owner: c}
	c.memPort.Port = modeling.NewPort(c, name+".MemPort")
	c.AddPort("MemPort", c.memPort.Port)

	return c
}
