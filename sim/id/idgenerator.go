// Package id generates the IDs carried by messages and events.
package id

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs.
type IDGenerator interface {
	Generate() string
}

var (
	generatorLock sync.Mutex
	generator     IDGenerator = &sequentialIDGenerator{}
)

// Generate returns a new ID from the generator currently in use.
func Generate() string {
	generatorLock.Lock()
	g := generator
	generatorLock.Unlock()

	return g.Generate()
}

// UseSequentialIDGenerator makes IDs increasing decimal numbers starting from
// 1. Sequential IDs make simulations reproducible.
func UseSequentialIDGenerator() {
	generatorLock.Lock()
	generator = &sequentialIDGenerator{}
	generatorLock.Unlock()
}

// UseParallelIDGenerator makes IDs globally unique xids, which do not need
// coordination between goroutines.
func UseParallelIDGenerator() {
	generatorLock.Lock()
	generator = parallelIDGenerator{}
	generatorLock.Unlock()
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return strconv.FormatUint(idNumber, 10)
}

type parallelIDGenerator struct{}

func (g parallelIDGenerator) Generate() string {
	return xid.New().String()
}
