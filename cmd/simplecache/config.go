package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/sarchlab/simplecache/mem/mem"
)

const envPrefix = "SIMPLECACHE_"

type config struct {
	size          string
	blockSize     uint64
	latency       int
	numGenerators int
	numAccesses   int
	maxAddress    string
	accessSize    uint64
	readPercent   float64
	pattern       string
	maxOutstand   int
	seed          int64
	memLatency    int
	statsFile     string
	record        bool
	recordFile    string
	monitor       bool
	monitorPort   int
	openBrowser   bool
	debugFlags    string
}

func (c *config) registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.size, "size", "16KB", "Cache size")
	flags.Uint64Var(&c.blockSize, "block-size", 64, "Cache block size in bytes")
	flags.IntVar(&c.latency, "latency", 1, "Cache latency in cycles")
	flags.IntVar(&c.numGenerators, "num-generators", 1,
		"Number of traffic generators, each with its own cache port")
	flags.IntVar(&c.numAccesses, "num-accesses", 10000,
		"Number of accesses issued by each generator")
	flags.StringVar(&c.maxAddress, "max-address", "1MB",
		"Size of the address space shared by the generators")
	flags.Uint64Var(&c.accessSize, "access-size", 4,
		"Bytes accessed by each request")
	flags.Float64Var(&c.readPercent, "read-percent", 70,
		"Percentage of the requests that are reads")
	flags.StringVar(&c.pattern, "pattern", "random",
		"Address pattern, linear or random")
	flags.IntVar(&c.maxOutstand, "max-outstanding", 1,
		"Requests each generator can wait on at the same time")
	flags.Int64Var(&c.seed, "seed", 1, "Random seed")
	flags.IntVar(&c.memLatency, "mem-latency", 100,
		"Memory latency in cycles")
	flags.StringVar(&c.statsFile, "stats-file", "",
		"Write the statistics to the file, - for stdout")
	flags.BoolVar(&c.record, "record", false,
		"Record statistics and traces into a SQLite database")
	flags.StringVar(&c.recordFile, "record-file", "",
		"Database name used with --record, without the extension")
	flags.BoolVar(&c.monitor, "monitor", false, "Start the monitoring server")
	flags.IntVar(&c.monitorPort, "monitor-port", 0,
		"Port of the monitoring server, random if not set")
	flags.BoolVar(&c.openBrowser, "open-browser", false,
		"Open the monitor in a browser")
	flags.StringVar(&c.debugFlags, "debug-flags", "",
		"Comma separated loggers to enable: SimpleCache, Port, Event")
}

// loadDotEnv loads the variables in the file, if it exists, without
// overriding the variables already set.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("loading %s: %w", path, err)
}

func envName(flagName string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// applyEnv sets the flags not given on the command line from the
// environment.
func applyEnv(flags *pflag.FlagSet) error {
	var err error

	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}

		v, found := os.LookupEnv(envName(f.Name))
		if !found {
			return
		}

		if setErr := f.Value.Set(v); setErr != nil {
			err = fmt.Errorf("%s: %w", envName(f.Name), setErr)
		}
	})

	return err
}

var sizeUnits = []struct {
	suffix string
	unit   uint64
}{
	{"TB", mem.TB},
	{"GB", mem.GB},
	{"MB", mem.MB},
	{"KB", mem.KB},
	{"B", 1},
}

// parseSize reads sizes such as 4096, 64B, 16KB, and 1MB.
func parseSize(s string) (uint64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	unit := uint64(1)

	for _, u := range sizeUnits {
		if strings.HasSuffix(trimmed, u.suffix) {
			trimmed = strings.TrimSuffix(trimmed, u.suffix)
			unit = u.unit

			break
		}
	}

	n, err := strconv.ParseUint(strings.TrimSpace(trimmed), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}

	return n * unit, nil
}

type debugFlags struct {
	cache, port, event bool
}

func parseDebugFlags(s string) (debugFlags, error) {
	var d debugFlags

	for _, f := range strings.Split(s, ",") {
		switch strings.TrimSpace(f) {
		case "":
		case "SimpleCache":
			d.cache = true
		case "Port":
			d.port = true
		case "Event":
			d.event = true
		default:
			return d, fmt.Errorf("unknown debug flag %q", f)
		}
	}

	return d, nil
}
