package trafficgen

import "github.com/sarchlab/simplecache/stats"

// Stats are the statistics reported by a generator.
type Stats struct {
	*stats.Group

	Reads      *stats.Scalar
	Writes     *stats.Scalar
	Mismatches *stats.Scalar
	Latency    *stats.Histogram
}

func newStats(name string) *Stats {
	s := &Stats{
		Group:      stats.NewGroup(name),
		Reads:      stats.NewScalar("reads", "Number of completed reads"),
		Writes:     stats.NewScalar("writes", "Number of completed writes"),
		Mismatches: stats.NewScalar("mismatches", "Reads returning wrong data"),
		Latency: stats.NewHistogram("latency",
			"Cycles from sending a request to its response", 16),
	}

	s.Register(s.Reads)
	s.Register(s.Writes)
	s.Register(s.Mismatches)
	s.Register(s.Latency)

	return s
}
