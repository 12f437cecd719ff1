package simplecache

import (
	"log"
	"math/rand"
	"sort"
)

// blockStore maps block-aligned addresses to block contents. It holds at most
// maxBlocks blocks.
type blockStore struct {
	blockSize uint64
	maxBlocks int

	blocks map[uint64][]byte

	// addrs and index let randomVictim pick uniformly in constant time.
	addrs []uint64
	index map[uint64]int

	rng *rand.Rand
}

func newBlockStore(blockSize uint64, maxBlocks int, rng *rand.Rand) *blockStore {
	return &blockStore{
		blockSize: blockSize,
		maxBlocks: maxBlocks,
		blocks:    make(map[uint64][]byte, maxBlocks),
		index:     make(map[uint64]int, maxBlocks),
		rng:       rng,
	}
}

// get returns the block stored at the address. The returned slice is owned by
// the store; writing to it updates the block.
func (s *blockStore) get(addr uint64) ([]byte, bool) {
	block, ok := s.blocks[addr]
	return block, ok
}

// put stores a copy of the data as the block at the address.
func (s *blockStore) put(addr uint64, data []byte) {
	if addr%s.blockSize != 0 {
		log.Panicf("block address %#x is not aligned to %d bytes",
			addr, s.blockSize)
	}

	if uint64(len(data)) != s.blockSize {
		log.Panicf("block at %#x has %d bytes, expecting %d",
			addr, len(data), s.blockSize)
	}

	if block, ok := s.blocks[addr]; ok {
		copy(block, data)
		return
	}

	if s.size() >= s.maxBlocks {
		log.Panicf("inserting block %#x into a full store", addr)
	}

	s.blocks[addr] = append([]byte(nil), data...)
	s.index[addr] = len(s.addrs)
	s.addrs = append(s.addrs, addr)
}

// remove deletes the block at the address and returns its contents.
func (s *blockStore) remove(addr uint64) []byte {
	block, ok := s.blocks[addr]
	if !ok {
		log.Panicf("removing block %#x that is not stored", addr)
	}

	i := s.index[addr]
	last := len(s.addrs) - 1
	s.addrs[i] = s.addrs[last]
	s.index[s.addrs[i]] = i
	s.addrs = s.addrs[:last]

	delete(s.index, addr)
	delete(s.blocks, addr)

	return block
}

// randomVictim picks one of the stored blocks uniformly at random.
func (s *blockStore) randomVictim() uint64 {
	if len(s.addrs) == 0 {
		log.Panic("picking a victim from an empty store")
	}

	return s.addrs[s.rng.Intn(len(s.addrs))]
}

func (s *blockStore) size() int {
	return len(s.addrs)
}

func (s *blockStore) capacity() int {
	return s.maxBlocks
}

func (s *blockStore) full() bool {
	return s.size() >= s.maxBlocks
}

// addresses returns the stored block addresses in increasing order.
func (s *blockStore) addresses() []uint64 {
	addrs := append([]uint64(nil), s.addrs...)
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	return addrs
}
