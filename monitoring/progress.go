package monitoring

import (
	"encoding/json"
	"sync"
	"time"
)

// A ProgressBar tracks how many of a known number of items have finished.
type ProgressBar struct {
	lock sync.Mutex

	ID        string
	Name      string
	StartTime time.Time
	Total     uint64
	Finished  uint64
}

// IncrementFinished adds a certain amount to the finished items.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.Finished += amount
}

// Fraction returns the share of finished items. An empty bar is complete.
func (b *ProgressBar) Fraction() float64 {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.Total == 0 {
		return 1
	}

	return float64(b.Finished) / float64(b.Total)
}

type progressBarJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// MarshalJSON encodes the bar while holding its lock.
func (b *ProgressBar) MarshalJSON() ([]byte, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	return json.Marshal(progressBarJSON{
		ID:        b.ID,
		Name:      b.Name,
		StartTime: b.StartTime,
		Total:     b.Total,
		Finished:  b.Finished,
	})
}
