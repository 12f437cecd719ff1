package timing

import "github.com/sarchlab/simplecache/sim/hooking"

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	Now() VTimeInSec
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	TimeTeller

	Schedule(e Event)
}

// An Engine keeps the discrete event simulation running.
type Engine interface {
	hooking.Hookable
	EventScheduler

	// Run processes all the events until no event is left.
	Run() error

	// Pause stops the engine from triggering more events until Continue is
	// called.
	Pause()

	// Continue resumes a paused engine.
	Continue()

	// RegisterSimulationEndHandler registers a handler that is called after
	// the last event is processed.
	RegisterSimulationEndHandler(handler SimulationEndHandler)
}

// A SimulationEndHandler is called when the engine runs out of events.
type SimulationEndHandler interface {
	Handle(now VTimeInSec)
}
