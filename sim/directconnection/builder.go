package directconnection

import (
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/naming"
)

// Builder can help building directconnection.
type Builder struct{}

// MakeBuilder creates a new Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// Build creates a new DirectConnection.
func (b Builder) Build(name string) *Comp {
	naming.NameMustBeValid(name)

	c := new(Comp)
	c.NamedBase = naming.MakeNamedBase(name)
	c.byName = make(map[modeling.RemotePort]modeling.Port)
	c.waiting = make(map[modeling.RemotePort][]modeling.Port)

	return c
}
