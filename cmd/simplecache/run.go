package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/browser"

	"github.com/sarchlab/simplecache/mem/idealmemcontroller"
	"github.com/sarchlab/simplecache/mem/mem"
	"github.com/sarchlab/simplecache/mem/simplecache"
	"github.com/sarchlab/simplecache/mem/trafficgen"
	"github.com/sarchlab/simplecache/monitoring"
	"github.com/sarchlab/simplecache/sim/directconnection"
	"github.com/sarchlab/simplecache/sim/hooking"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/timing"
	"github.com/sarchlab/simplecache/simulation"
	"github.com/sarchlab/simplecache/stats"
	"github.com/sarchlab/simplecache/tracing"
)

type system struct {
	sim    *simulation.Simulation
	memory *idealmemcontroller.Comp
	cache  *simplecache.Comp
	gens   []*trafficgen.Gen

	latencyTracer *tracing.AverageTimeTracer
	stepTracer    *tracing.StepCountTracer
}

func buildSimulation(cfg *config) *simulation.Simulation {
	b := simulation.MakeBuilder()

	if cfg.record {
		b = b.WithRecording()
		if cfg.recordFile != "" {
			b = b.WithOutputFileName(cfg.recordFile)
		}
	}

	if cfg.monitor {
		b = b.WithMonitoring()
		if cfg.monitorPort > 0 {
			b = b.WithMonitorPort(cfg.monitorPort)
		}
	}

	return b.Build()
}

func buildSystem(cfg *config, s *simulation.Simulation) (*system, error) {
	cacheSize, err := parseSize(cfg.size)
	if err != nil {
		return nil, err
	}

	maxAddress, err := parseSize(cfg.maxAddress)
	if err != nil {
		return nil, err
	}

	pattern, err := trafficgen.ParsePattern(cfg.pattern)
	if err != nil {
		return nil, err
	}

	if cfg.numGenerators < 1 {
		return nil, fmt.Errorf("need at least one generator, got %d",
			cfg.numGenerators)
	}

	window := maxAddress / uint64(cfg.numGenerators)
	window -= window % cfg.blockSize

	if window < cfg.blockSize {
		return nil, fmt.Errorf(
			"max address %#x leaves less than a block to each generator",
			maxAddress)
	}

	engine := s.Engine()
	sys := &system{sim: s}

	sys.memory = idealmemcontroller.MakeBuilder().
		WithEngine(engine).
		WithLatency(cfg.memLatency).
		WithNewStorage(window * uint64(cfg.numGenerators)).
		Build("Memory")

	sys.cache = simplecache.MakeBuilder().
		WithEngine(engine).
		WithLatency(cfg.latency).
		WithBlockSize(cfg.blockSize).
		WithByteSize(cacheSize).
		WithNumCPUPorts(cfg.numGenerators).
		WithRandSeed(cfg.seed).
		WithAddressToPortMapper(&mem.SinglePortMapper{
			Port: sys.memory.TopPort().AsRemote(),
		}).
		Build("Cache")

	for i := 0; i < cfg.numGenerators; i++ {
		start := uint64(i) * window
		gen := trafficgen.MakeBuilder().
			WithEngine(engine).
			WithPattern(pattern).
			WithReadPercent(cfg.readPercent).
			WithAccessSize(cfg.accessSize).
			WithNumAccesses(cfg.numAccesses).
			WithMaxOutstanding(cfg.maxOutstand).
			WithAddressWindow(start, start+window).
			WithSeed(cfg.seed + int64(i)).
			WithAddressToPortMapper(&mem.SinglePortMapper{
				Port: sys.cache.CPUSidePort(i).AsRemote(),
			}).
			Build(fmt.Sprintf("Gen[%d]", i))
		sys.gens = append(sys.gens, gen)

		conn := directconnection.MakeBuilder().
			Build(fmt.Sprintf("CPUConn[%d]", i))
		conn.PlugIn(gen.Port())
		conn.PlugIn(sys.cache.CPUSidePort(i))
	}

	memConn := directconnection.MakeBuilder().Build("MemConn")
	memConn.PlugIn(sys.cache.MemSidePort())
	memConn.PlugIn(sys.memory.TopPort())

	sys.register()

	return sys, nil
}

func (sys *system) register() {
	s := sys.sim

	s.RegisterComponent(sys.memory)
	s.RegisterComponent(sys.cache)
	s.RegisterStats(sys.cache.Name(), sys.cache.Stats().Group)

	for _, g := range sys.gens {
		s.RegisterComponent(g)
		s.RegisterStats(g.Name(), g.Stats().Group)
	}

	sys.latencyTracer = tracing.NewAverageTimeTracer(
		s.Engine(), tracing.KindIs("req_in"))
	tracing.CollectTrace(sys.cache, sys.latencyTracer)

	sys.stepTracer = tracing.NewStepCountTracer(tracing.KindIs("req_in"))
	tracing.CollectTrace(sys.cache, sys.stepTracer)

	if s.Tracer() != nil {
		tracing.CollectTrace(sys.cache, s.Tracer())
		tracing.CollectTrace(sys.memory, s.Tracer())

		for _, g := range sys.gens {
			tracing.CollectTrace(g, s.Tracer())
		}
	}
}

func (sys *system) attachDebugLoggers(flags debugFlags) {
	logger := log.New(os.Stderr, "", 0)
	engine := sys.sim.Engine()

	if flags.cache {
		sys.cache.AcceptHook(simplecache.NewDebugLogger(logger, engine))
	}

	if flags.port {
		portLogger := modeling.NewPortMsgLogger(logger, engine)
		for _, c := range sys.sim.Components() {
			for _, p := range c.Ports() {
				p.AcceptHook(portLogger)
			}
		}
	}

	if flags.event {
		engine.AcceptHook(timing.NewEventLogger(logger))
	}
}

// progressHook counts the responses that arrive at a generator.
type progressHook struct {
	bar *monitoring.ProgressBar
}

func (h *progressHook) Func(ctx hooking.HookCtx) {
	if ctx.Pos == modeling.HookPosPortMsgRecvd {
		h.bar.IncrementFinished(1)
	}
}

func (sys *system) trackProgress(m *monitoring.Monitor, numAccesses int) {
	for _, g := range sys.gens {
		bar := m.CreateProgressBar(g.Name(), uint64(numAccesses))
		g.Port().AcceptHook(&progressHook{bar: bar})
	}
}

func runSimulation(out io.Writer, cfg *config) error {
	flags, err := parseDebugFlags(cfg.debugFlags)
	if err != nil {
		return err
	}

	s := buildSimulation(cfg)
	defer s.Terminate()

	sys, err := buildSystem(cfg, s)
	if err != nil {
		return err
	}

	sys.attachDebugLoggers(flags)

	if m := s.Monitor(); m != nil {
		sys.trackProgress(m, cfg.numAccesses)

		if cfg.openBrowser {
			if err := browser.OpenURL(s.MonitorURL()); err != nil {
				log.Printf("cannot open browser: %v", err)
			}
		}
	}

	sys.memory.AnnounceRanges()

	for _, g := range sys.gens {
		g.Start()
	}

	if err := s.Run(); err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	s.RecordStats()

	if err := writeStats(out, cfg.statsFile, s.StatsGroups()); err != nil {
		return err
	}

	return sys.report(out)
}

func writeStats(out io.Writer, path string, groups []*stats.Group) error {
	switch path {
	case "":
		return nil
	case "-":
		return stats.Dump(out, groups...)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stats file: %w", err)
	}
	defer f.Close()

	if err := stats.Dump(f, groups...); err != nil {
		return err
	}

	return f.Close()
}
