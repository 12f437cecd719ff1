// Package simulation ties the engine, the data recorder, the tracer, and the
// monitor of one run together.
package simulation

import (
	"log"

	"github.com/sarchlab/simplecache/datarecording"
	"github.com/sarchlab/simplecache/monitoring"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/timing"
	"github.com/sarchlab/simplecache/stats"
	"github.com/sarchlab/simplecache/tracing"
)

// A Simulation provides the service requires to define a simulation.
type Simulation struct {
	id     string
	engine timing.Engine

	dataRecorder  datarecording.DataRecorder
	statsRecorder *stats.Recorder
	tracer        *tracing.DBTracer
	monitor       *monitoring.Monitor
	monitorURL    string

	components  []modeling.Component
	compByName  map[string]modeling.Component
	portByName  map[string]modeling.Port
	statsGroups []*stats.Group
}

// ID returns the unique ID of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine used in the simulation.
func (s *Simulation) Engine() timing.Engine {
	return s.engine
}

// DataRecorder returns the data recorder, or nil if nothing is recorded.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Tracer returns the tracer that stores tasks, or nil if nothing is
// recorded.
func (s *Simulation) Tracer() *tracing.DBTracer {
	return s.tracer
}

// Monitor returns the monitor, or nil if monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address the monitor serves at.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// RegisterComponent registers a component and its ports with the
// simulation.
func (s *Simulation) RegisterComponent(c modeling.Component) {
	compName := c.Name()
	if _, found := s.compByName[compName]; found {
		log.Panicf("component %s already registered", compName)
	}

	s.components = append(s.components, c)
	s.compByName[compName] = c

	for _, p := range c.Ports() {
		s.registerPort(p)
	}

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

func (s *Simulation) registerPort(p modeling.Port) {
	portName := p.Name()
	if _, found := s.portByName[portName]; found {
		log.Panicf("port %s already registered", portName)
	}

	s.portByName[portName] = p
}

// RegisterStats registers the statistics of a component.
func (s *Simulation) RegisterStats(compName string, g *stats.Group) {
	s.statsGroups = append(s.statsGroups, g)

	if s.monitor != nil {
		s.monitor.RegisterStats(compName, g)
	}
}

// StatsGroups returns the registered statistics in registration order.
func (s *Simulation) StatsGroups() []*stats.Group {
	return s.statsGroups
}

// Components returns all the registered components.
func (s *Simulation) Components() []modeling.Component {
	return s.components
}

// GetComponentByName returns the component with the given name, or nil.
func (s *Simulation) GetComponentByName(name string) modeling.Component {
	return s.compByName[name]
}

// GetPortByName returns the port with the given name, or nil.
func (s *Simulation) GetPortByName(name string) modeling.Port {
	return s.portByName[name]
}

// Run runs the engine until no event is left.
func (s *Simulation) Run() error {
	return s.engine.Run()
}

// RecordStats stores the current value of every registered statistic.
func (s *Simulation) RecordStats() {
	if s.statsRecorder == nil {
		return
	}

	s.statsRecorder.Record(s.statsGroups...)
}

// Terminate flushes the recorded data and stops the monitor.
func (s *Simulation) Terminate() {
	if s.tracer != nil {
		s.tracer.Terminate()
	}

	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}

	if s.monitor != nil {
		if err := s.monitor.StopServer(); err != nil {
			log.Print(err)
		}
	}
}
