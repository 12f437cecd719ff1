package simulation

import (
	"log"

	"github.com/rs/xid"

	"github.com/sarchlab/simplecache/datarecording"
	"github.com/sarchlab/simplecache/monitoring"
	"github.com/sarchlab/simplecache/sim/id"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/timing"
	"github.com/sarchlab/simplecache/stats"
	"github.com/sarchlab/simplecache/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	parallelIDs    bool
	recordOn       bool
	monitorOn      bool
	monitorPort    int
	outputFileName string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithParallelIDs makes messages and events use globally unique IDs.
func (b Builder) WithParallelIDs() Builder {
	b.parallelIDs = true
	return b
}

// WithRecording stores statistics and traces into a database.
func (b Builder) WithRecording() Builder {
	b.recordOn = true
	return b
}

// WithMonitoring starts the monitoring server.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		log.Panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordOn && b.outputFileName != "" {
		log.Panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	if b.parallelIDs {
		id.UseParallelIDGenerator()
	}

	s := &Simulation{
		id:         xid.New().String(),
		engine:     timing.NewSerialEngine(),
		compByName: make(map[string]modeling.Component),
		portByName: make(map[string]modeling.Port),
	}

	if b.recordOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "simplecache_sim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)
		s.tracer = tracing.NewDBTracer(s.engine, s.dataRecorder)
		s.statsRecorder = stats.NewRecorder(s.dataRecorder, s.engine, "stats")
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}

		s.monitor.RegisterEngine(s.engine)

		url, err := s.monitor.StartServer()
		if err != nil {
			log.Panic(err)
		}

		s.monitorURL = url
	}

	return s
}
