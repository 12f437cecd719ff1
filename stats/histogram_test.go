package stats

import (
	"math"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Histogram", func() {
	var h *Histogram

	ginkgo.BeforeEach(func() {
		h = NewHistogram("missLatency", "miss latency in cycles", 16)
	})

	ginkgo.It("should panic with an odd number of buckets", func() {
		Expect(func() { NewHistogram("h", "", 5) }).To(Panic())
	})

	ginkgo.It("should report NaN mean when empty", func() {
		Expect(h.Samples()).To(Equal(uint64(0)))
		Expect(math.IsNaN(h.Mean())).To(BeTrue())
	})

	ginkgo.It("should sample into unit buckets", func() {
		h.Sample(0)
		h.Sample(3)
		h.Sample(3)
		h.Sample(15)

		buckets := h.Buckets()
		Expect(h.BucketSize()).To(Equal(uint64(1)))
		Expect(buckets[0]).To(Equal(uint64(1)))
		Expect(buckets[3]).To(Equal(uint64(2)))
		Expect(buckets[15]).To(Equal(uint64(1)))
		Expect(h.Samples()).To(Equal(uint64(4)))
		Expect(h.Min()).To(Equal(uint64(0)))
		Expect(h.Max()).To(Equal(uint64(15)))
		Expect(h.Mean()).To(BeNumerically("~", 5.25))
	})

	ginkgo.It("should double the bucket size for large samples", func() {
		h.Sample(1)
		h.Sample(2)
		h.Sample(3)
		h.Sample(40)

		buckets := h.Buckets()
		Expect(h.BucketSize()).To(Equal(uint64(4)))
		Expect(buckets[0]).To(Equal(uint64(3)))
		Expect(buckets[10]).To(Equal(uint64(1)))
		Expect(h.NumBuckets()).To(Equal(16))
	})

	ginkgo.It("should put huge samples into the last bucket", func() {
		h.Sample(1)
		h.Sample(math.MaxUint64)
		h.Sample(1 << 63)

		buckets := h.Buckets()
		Expect(h.Samples()).To(Equal(uint64(3)))
		Expect(h.BucketSize()).To(Equal(uint64(1) << 59))
		Expect(buckets[0]).To(Equal(uint64(1)))
		Expect(buckets[15]).To(Equal(uint64(2)))
		Expect(h.Max()).To(Equal(uint64(math.MaxUint64)))
	})

	ginkgo.It("should reset", func() {
		h.Sample(100)
		h.Reset()

		Expect(h.BucketSize()).To(Equal(uint64(1)))
		Expect(h.Samples()).To(Equal(uint64(0)))
		Expect(h.Buckets()).To(HaveEach(uint64(0)))
	})

	ginkgo.It("should list the buckets in its entries", func() {
		h.Sample(2)

		entries := h.Entries()
		Expect(entries).To(HaveLen(5 + 16))
		Expect(entries[0].Name).To(Equal("missLatency::samples"))
		Expect(entries[0].Value).To(Equal(1.0))
		Expect(entries[7].Name).To(Equal("missLatency::2-2"))
		Expect(entries[7].Value).To(Equal(1.0))
	})
})
