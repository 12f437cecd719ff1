package stats

import (
	"math"

	"github.com/sarchlab/simplecache/datarecording"
	"github.com/sarchlab/simplecache/sim/timing"
)

type statEntry struct {
	Time  float64
	Group string
	Name  string
	Value float64
	Desc  string
}

// A Recorder writes snapshots of statistics into a data recorder table.
type Recorder struct {
	backend    datarecording.DataRecorder
	timeTeller timing.TimeTeller
	tableName  string
}

// NewRecorder creates the table and returns a recorder writing into it.
func NewRecorder(
	backend datarecording.DataRecorder,
	timeTeller timing.TimeTeller,
	tableName string,
) *Recorder {
	backend.CreateTable(tableName, statEntry{})

	return &Recorder{
		backend:    backend,
		timeTeller: timeTeller,
		tableName:  tableName,
	}
}

// Record inserts the current value of every entry in the groups.
func (r *Recorder) Record(groups ...*Group) {
	now := r.timeTeller.Now()

	for _, g := range groups {
		for _, e := range g.Entries() {
			// SQLite cannot hold NaN.
			if math.IsNaN(e.Value) {
				continue
			}

			r.backend.InsertData(r.tableName, statEntry{
				Time:  now,
				Group: g.Name(),
				Name:  e.Name,
				Value: e.Value,
				Desc:  e.Desc,
			})
		}
	}
}
