package simplecache

import (
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/mem/mem"
)

type accessKind int

const (
	accessHit accessKind = iota
	accessMissForward
	accessMissUpsize
)

func (k accessKind) String() string {
	switch k {
	case accessHit:
		return "hit"
	case accessMissForward:
		return "miss-forward"
	case accessMissUpsize:
		return "miss-upsize"
	default:
		return "unknown"
	}
}

// accessEngine decides how a request is served and applies it to the blocks.
type accessEngine struct {
	blockSize uint64
	store     *blockStore

	// writeback sends an evicted block downstream.
	writeback func(addr uint64, data []byte)
}

func (e *accessEngine) blockAddr(addr uint64) uint64 {
	return addr / e.blockSize * e.blockSize
}

// lookup returns the block that holds the address, if it is stored.
func (e *accessEngine) lookup(addr uint64) ([]byte, bool) {
	return e.store.get(e.blockAddr(addr))
}

func (e *accessEngine) accessMustBeWithinBlock(req mem.AccessReq) {
	addr := req.GetAddress()
	offset := addr - e.blockAddr(addr)

	if offset+req.GetByteSize() > e.blockSize {
		log.Panicf("cannot handle access [%#x, %#x) that spans %d-byte "+
			"blocks", addr, addr+req.GetByteSize(), e.blockSize)
	}
}

func (e *accessEngine) classify(req mem.AccessReq) accessKind {
	e.accessMustBeWithinBlock(req)

	if _, ok := e.lookup(req.GetAddress()); ok {
		return accessHit
	}

	if req.GetAddress()%e.blockSize == 0 && req.GetByteSize() == e.blockSize {
		return accessMissForward
	}

	return accessMissUpsize
}

// apply performs the request on the block. It returns the data read, or nil
// for writes.
func (e *accessEngine) apply(block []byte, req mem.AccessReq) []byte {
	offset := req.GetAddress() - e.blockAddr(req.GetAddress())

	switch req := req.(type) {
	case *mem.ReadReq:
		return append([]byte(nil), block[offset:offset+req.AccessByteSize]...)
	case *mem.WriteReq:
		copy(block[offset:], req.Data)
	case *mem.WritebackReq:
		copy(block[offset:], req.Data)
	default:
		log.Panicf("cannot apply request of type %s", reflect.TypeOf(req))
	}

	return nil
}

// insertBlock stores the block, evicting a random block first if the store
// is full. The evicted block is written back.
func (e *accessEngine) insertBlock(addr uint64, data []byte) {
	if _, ok := e.store.get(addr); !ok && e.store.full() {
		victim := e.store.randomVictim()
		victimData := e.store.remove(victim)
		e.writeback(victim, victimData)
	}

	e.store.put(addr, data)
}

// accessFunctional serves the request from the stored blocks. It reports
// false if the block is not stored.
func (e *accessEngine) accessFunctional(req mem.AccessReq) ([]byte, bool) {
	e.accessMustBeWithinBlock(req)

	block, ok := e.lookup(req.GetAddress())
	if !ok {
		return nil, false
	}

	return e.apply(block, req), true
}
