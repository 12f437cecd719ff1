package simplecache

import "github.com/sarchlab/simplecache/stats"

// Stats are the statistics reported by a cache.
type Stats struct {
	*stats.Group

	Hits        *stats.Scalar
	Misses      *stats.Scalar
	MissLatency *stats.Histogram
	HitRatio    *stats.Formula
}

func newStats(name string) *Stats {
	s := &Stats{
		Group:  stats.NewGroup(name),
		Hits:   stats.NewScalar("hits", "Number of hits"),
		Misses: stats.NewScalar("misses", "Number of misses"),
		MissLatency: stats.NewHistogram("missLatency",
			"Cycles from a miss to its response", 16),
	}

	s.HitRatio = stats.NewFormula("hitRatio",
		"The ratio of hits to the total accesses to the cache",
		stats.Ratio(s.Hits, s.Misses))

	s.Register(s.Hits)
	s.Register(s.Misses)
	s.Register(s.MissLatency)
	s.Register(s.HitRatio)

	return s
}
