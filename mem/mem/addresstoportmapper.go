package mem

import "github.com/sarchlab/simplecache/sim/modeling"

// AddressToPortMapper helps a cache find the lower module that holds the data
// at a certain address.
type AddressToPortMapper interface {
	Find(address uint64) modeling.RemotePort
}

// SinglePortMapper is used when a unit is connected with only one lower
// module.
type SinglePortMapper struct {
	Port modeling.RemotePort
}

// Find simply returns the solo unit that it connects to.
func (f *SinglePortMapper) Find(_ uint64) modeling.RemotePort {
	return f.Port
}
