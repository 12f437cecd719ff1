package stats

import (
	"fmt"
	"io"
	"log"
	"strconv"
)

// A Group collects the statistics of one component.
type Group struct {
	name   string
	stats  []Stat
	byName map[string]Stat
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{
		name:   name,
		byName: make(map[string]Stat),
	}
}

// Name returns the name of the group.
func (g *Group) Name() string {
	return g.name
}

// Register adds a statistic to the group.
func (g *Group) Register(s Stat) {
	if _, found := g.byName[s.Name()]; found {
		log.Panicf("stat %s already registered in group %s", s.Name(), g.name)
	}

	g.stats = append(g.stats, s)
	g.byName[s.Name()] = s
}

// Stats returns the statistics in registration order.
func (g *Group) Stats() []Stat {
	return g.stats
}

// Get returns the statistic with the given name, or nil.
func (g *Group) Get(name string) Stat {
	return g.byName[name]
}

// Entries returns the values of all the statistics, named
// "<group>.<stat>".
func (g *Group) Entries() []Entry {
	var entries []Entry

	for _, s := range g.stats {
		for _, e := range s.Entries() {
			e.Name = g.name + "." + e.Name
			entries = append(entries, e)
		}
	}

	return entries
}

// Reset resets all the statistics in the group.
func (g *Group) Reset() {
	for _, s := range g.stats {
		s.Reset()
	}
}

// Dump writes the statistics of the groups in text, one entry per line.
func Dump(w io.Writer, groups ...*Group) error {
	for _, g := range groups {
		for _, e := range g.Entries() {
			if err := writeEntry(w, e); err != nil {
				return fmt.Errorf("dumping stats of %s: %w", g.Name(), err)
			}
		}
	}

	return nil
}

func writeEntry(w io.Writer, e Entry) error {
	value := strconv.FormatFloat(e.Value, 'g', -1, 64)

	var err error
	if e.Desc == "" {
		_, err = fmt.Fprintf(w, "%-48s %16s\n", e.Name, value)
	} else {
		_, err = fmt.Fprintf(w, "%-48s %16s # %s\n", e.Name, value, e.Desc)
	}

	return err
}
