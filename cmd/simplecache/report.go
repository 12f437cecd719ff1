package main

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
)

// report prints a summary of the run. It fails if any read returned wrong
// data.
func (sys *system) report(out io.Writer) error {
	title := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)

	s := sys.cache.Stats()

	title.Fprintf(out, "%s\n", sys.cache.Name())
	fmt.Fprintf(out, "  hits           %d\n", int64(s.Hits.Value()))
	fmt.Fprintf(out, "  misses         %d\n", int64(s.Misses.Value()))

	ratio := s.HitRatio.Value()
	if math.IsNaN(ratio) {
		fmt.Fprintf(out, "  hit ratio      n/a\n")
	} else {
		fmt.Fprintf(out, "  hit ratio      %.4f\n", ratio)
	}

	fmt.Fprintf(out, "  miss latency   %.2f cycles (mean)\n",
		orZero(s.MissLatency.Mean()))
	fmt.Fprintf(out, "  access time    %.2f ns (mean over %d)\n",
		float64(sys.latencyTracer.AverageTime())*1e9,
		sys.latencyTracer.TotalCount())

	for _, step := range sys.stepTracer.GetStepNames() {
		fmt.Fprintf(out, "  %-14s %d\n",
			step+" steps", sys.stepTracer.GetStepCount(step))
	}

	fmt.Fprintf(out, "  simulated time %.10f s\n", sys.sim.Engine().Now())

	mismatches := 0

	for _, g := range sys.gens {
		for _, err := range g.Errors() {
			bad.Fprintf(out, "  %v\n", err)
		}

		mismatches += len(g.Errors())
	}

	if mismatches > 0 {
		return fmt.Errorf("%d reads returned wrong data", mismatches)
	}

	good.Fprintf(out, "  all reads returned the data last written\n")

	return nil
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}

	return v
}
