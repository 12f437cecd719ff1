package stats

import (
	"fmt"
	"log"
	"math"
)

// Histogram distributes non-negative samples over a fixed number of buckets.
// Buckets start one unit wide. When a sample falls beyond the last bucket,
// neighboring buckets are merged and the bucket size doubles until the
// sample fits, or until doubling again would overflow.
type Histogram struct {
	name, desc string

	bucketSize uint64
	buckets    []uint64

	samples  uint64
	sum      float64
	min, max uint64
}

// NewHistogram creates a histogram with numBuckets buckets.
func NewHistogram(name, desc string, numBuckets int) *Histogram {
	if numBuckets < 2 || numBuckets%2 != 0 {
		log.Panicf("histogram %s needs an even number of buckets, got %d",
			name, numBuckets)
	}

	h := &Histogram{
		name:    name,
		desc:    desc,
		buckets: make([]uint64, numBuckets),
	}
	h.Reset()

	return h
}

// Name returns the name of the histogram.
func (h *Histogram) Name() string {
	return h.name
}

// Desc returns the description of the histogram.
func (h *Histogram) Desc() string {
	return h.desc
}

// Sample records one value.
func (h *Histogram) Sample(v uint64) {
	n := uint64(len(h.buckets))
	for v/h.bucketSize >= n && h.bucketSize <= math.MaxUint64/(2*n) {
		h.grow()
	}

	// Values beyond the widest possible range land in the last bucket.
	idx := v / h.bucketSize
	if idx >= n {
		idx = n - 1
	}

	h.buckets[idx]++

	if h.samples == 0 || v < h.min {
		h.min = v
	}

	if h.samples == 0 || v > h.max {
		h.max = v
	}

	h.samples++
	h.sum += float64(v)
}

func (h *Histogram) grow() {
	half := len(h.buckets) / 2

	for i := 0; i < half; i++ {
		h.buckets[i] = h.buckets[2*i] + h.buckets[2*i+1]
	}

	for i := half; i < len(h.buckets); i++ {
		h.buckets[i] = 0
	}

	h.bucketSize *= 2
}

// NumBuckets returns the number of buckets.
func (h *Histogram) NumBuckets() int {
	return len(h.buckets)
}

// BucketSize returns the width of each bucket.
func (h *Histogram) BucketSize() uint64 {
	return h.bucketSize
}

// Buckets returns a copy of the bucket counts.
func (h *Histogram) Buckets() []uint64 {
	return append([]uint64(nil), h.buckets...)
}

// Samples returns the number of values recorded.
func (h *Histogram) Samples() uint64 {
	return h.samples
}

// Mean returns the average of the values recorded, or NaN if none.
func (h *Histogram) Mean() float64 {
	if h.samples == 0 {
		return math.NaN()
	}

	return h.sum / float64(h.samples)
}

// Min returns the smallest value recorded.
func (h *Histogram) Min() uint64 {
	return h.min
}

// Max returns the largest value recorded.
func (h *Histogram) Max() uint64 {
	return h.max
}

// Entries returns the summary of the histogram followed by one entry per
// bucket.
func (h *Histogram) Entries() []Entry {
	entries := []Entry{
		{Name: h.name + "::samples", Value: float64(h.samples), Desc: h.desc},
		{Name: h.name + "::mean", Value: h.Mean()},
		{Name: h.name + "::min", Value: float64(h.min)},
		{Name: h.name + "::max", Value: float64(h.max)},
		{Name: h.name + "::bucket_size", Value: float64(h.bucketSize)},
	}

	for i, count := range h.buckets {
		low := uint64(i) * h.bucketSize
		high := low + h.bucketSize - 1
		entries = append(entries, Entry{
			Name:  fmt.Sprintf("%s::%d-%d", h.name, low, high),
			Value: float64(count),
		})
	}

	return entries
}

// Reset clears all samples and shrinks the buckets back to one unit.
func (h *Histogram) Reset() {
	for i := range h.buckets {
		h.buckets[i] = 0
	}

	h.bucketSize = 1
	h.samples = 0
	h.sum = 0
	h.min = 0
	h.max = 0
}
