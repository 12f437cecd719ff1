package mem

import (
	"fmt"
	"log"

	"github.com/sarchlab/simplecache/sim/modeling"
)

// An AddrRange is the half-open address interval [Start, End).
type AddrRange struct {
	Start, End uint64
}

// Contains tells if the address falls in the range.
func (r AddrRange) Contains(addr uint64) bool {
	return addr >= r.Start && addr < r.End
}

// Size returns the number of bytes in the range.
func (r AddrRange) Size() uint64 {
	return r.End - r.Start
}

func (r AddrRange) String() string {
	return fmt.Sprintf("[%#x, %#x)", r.Start, r.End)
}

// RangeOwner is a component that can tell which addresses it serves behind a
// given port.
type RangeOwner interface {
	AddrRanges(port modeling.Port) []AddrRange
}

// RangeChangeListener is a component that wants to know when the addresses
// served behind its port change.
type RangeChangeListener interface {
	NotifyRangeChange(port modeling.Port)
}

// QueryAddrRanges asks the components connected to the port which addresses
// they serve.
func QueryAddrRanges(port modeling.Port) []AddrRange {
	var ranges []AddrRange

	for _, peer := range connectionMustBeSet(port).Peers(port) {
		owner, ok := peer.Component().(RangeOwner)
		if !ok {
			continue
		}

		ranges = append(ranges, owner.AddrRanges(peer)...)
	}

	return ranges
}

// SendRangeChange tells the components connected to the port that the
// addresses served behind the port have changed.
func SendRangeChange(port modeling.Port) {
	for _, peer := range connectionMustBeSet(port).Peers(port) {
		listener, ok := peer.Component().(RangeChangeListener)
		if !ok {
			continue
		}

		listener.NotifyRangeChange(peer)
	}
}

func connectionMustBeSet(port modeling.Port) modeling.Connection {
	conn := port.Connection()
	if conn == nil {
		log.Panicf("port %s is not connected", port.Name())
	}

	return conn
}
