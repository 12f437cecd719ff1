package tracing

import "github.com/sarchlab/simplecache/sim/timing"

// A TaskStep represents a milestone in the processing of task
type TaskStep struct {
	Time timing.VTimeInSec `json:"time"`
	What string            `json:"what"`
}

// A Task is a task
type Task struct {
	ID        string            `json:"id"`
	ParentID  string            `json:"parent_id"`
	Kind      string            `json:"kind"`
	What      string            `json:"what"`
	Location  string            `json:"location"`
	StartTime timing.VTimeInSec `json:"start_time"`
	EndTime   timing.VTimeInSec `json:"end_time"`
	Steps     []TaskStep        `json:"steps"`
	Detail    any               `json:"-"`
}

// TaskFilter is a function that can filter interesting tasks. If this function
// returns true, the task is considered useful.
type TaskFilter func(t Task) bool

// KindIs returns a filter that accepts tasks of the given kind.
func KindIs(kind string) TaskFilter {
	return func(t Task) bool {
		return t.Kind == kind
	}
}

// LocationIs returns a filter that accepts tasks of the given kind that take
// place at the given location.
func LocationIs(kind, location string) TaskFilter {
	return func(t Task) bool {
		return t.Kind == kind && t.Location == location
	}
}
