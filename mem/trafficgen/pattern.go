package trafficgen

import (
	"fmt"
	"math/rand"
)

// Pattern decides the order in which addresses are visited.
type Pattern int

// The supported address patterns.
const (
	PatternLinear Pattern = iota
	PatternRandom
)

func (p Pattern) String() string {
	switch p {
	case PatternLinear:
		return "linear"
	case PatternRandom:
		return "random"
	default:
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
}

// ParsePattern converts a pattern name into a Pattern.
func ParsePattern(name string) (Pattern, error) {
	switch name {
	case "linear":
		return PatternLinear, nil
	case "random":
		return PatternRandom, nil
	default:
		return 0, fmt.Errorf("unknown pattern %q, want linear or random", name)
	}
}

// addressGenerator produces access-size aligned addresses in a window.
type addressGenerator struct {
	pattern    Pattern
	start, end uint64
	accessSize uint64
	next       uint64
	rng        *rand.Rand
}

func (g *addressGenerator) numSlots() uint64 {
	if g.end <= g.start {
		return 0
	}

	return (g.end - g.start) / g.accessSize
}

func (g *addressGenerator) nextAddress() uint64 {
	var slot uint64

	switch g.pattern {
	case PatternLinear:
		slot = g.next % g.numSlots()
		g.next++
	case PatternRandom:
		slot = uint64(g.rng.Int63n(int64(g.numSlots())))
	}

	return g.start + slot*g.accessSize
}

// shrinkTo limits the window end. A trailing partial slot is never used.
func (g *addressGenerator) shrinkTo(end uint64) {
	if end >= g.end {
		return
	}

	g.end = end
}
