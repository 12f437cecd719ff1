package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/simplecache/examples/hello"
	"github.com/sarchlab/simplecache/sim/timing"
	"github.com/sarchlab/simplecache/simulation"
)

func newHelloCmd() *cobra.Command {
	var (
		times   int
		latency float64
	)

	cmd := &cobra.Command{
		Use:   "hello",
		Short: "Print a greeting a number of times in simulated time.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if times < 1 || latency <= 0 {
				return fmt.Errorf(
					"times and latency must be positive, got %d and %g",
					times, latency)
			}

			s := simulation.MakeBuilder().Build()
			defer s.Terminate()

			obj := hello.MakeBuilder().
				WithEngine(s.Engine()).
				WithLatency(timing.VTimeInSec(latency)).
				WithTimesToFire(times).
				WithWriter(cmd.OutOrStdout()).
				Build("Hello")
			obj.Startup()

			return s.Run()
		},
	}

	cmd.Flags().IntVar(&times, "times", 5, "Number of greetings")
	cmd.Flags().Float64Var(&latency, "latency", 100e-9,
		"Simulated seconds between two greetings")

	return cmd
}
