// Package stats provides the counters, histograms, and formulas that
// components report, and the groups that collect them.
package stats

import "math"

// An Entry is one reported number.
type Entry struct {
	Name  string
	Value float64
	Desc  string
}

// A Stat is a named statistic that can be read at any time.
type Stat interface {
	Name() string
	Desc() string

	// Entries returns the current values of the statistic.
	Entries() []Entry

	// Reset sets the statistic back to its initial state.
	Reset()
}

// Scalar is a counter.
type Scalar struct {
	name, desc string
	value      float64
}

// NewScalar creates a new Scalar.
func NewScalar(name, desc string) *Scalar {
	return &Scalar{name: name, desc: desc}
}

// Name returns the name of the scalar.
func (s *Scalar) Name() string {
	return s.name
}

// Desc returns the description of the scalar.
func (s *Scalar) Desc() string {
	return s.desc
}

// Inc adds one to the scalar.
func (s *Scalar) Inc() {
	s.value++
}

// Add adds v to the scalar.
func (s *Scalar) Add(v float64) {
	s.value += v
}

// Value returns the current value.
func (s *Scalar) Value() float64 {
	return s.value
}

// Entries returns the value of the scalar.
func (s *Scalar) Entries() []Entry {
	return []Entry{{Name: s.name, Value: s.value, Desc: s.desc}}
}

// Reset sets the scalar to zero.
func (s *Scalar) Reset() {
	s.value = 0
}

// Formula is a statistic derived from other statistics whenever it is read.
type Formula struct {
	name, desc string
	fn         func() float64
}

// NewFormula creates a new Formula.
func NewFormula(name, desc string, fn func() float64) *Formula {
	return &Formula{name: name, desc: desc, fn: fn}
}

// Name returns the name of the formula.
func (f *Formula) Name() string {
	return f.name
}

// Desc returns the description of the formula.
func (f *Formula) Desc() string {
	return f.desc
}

// Value evaluates the formula.
func (f *Formula) Value() float64 {
	return f.fn()
}

// Entries returns the value of the formula.
func (f *Formula) Entries() []Entry {
	return []Entry{{Name: f.name, Value: f.Value(), Desc: f.desc}}
}

// Reset does nothing. A formula has no state of its own.
func (f *Formula) Reset() {}

// Ratio returns a / (a + b), or NaN when both are zero.
func Ratio(a, b *Scalar) func() float64 {
	return func() float64 {
		total := a.Value() + b.Value()
		if total == 0 {
			return math.NaN()
		}

		return a.Value() / total
	}
}
