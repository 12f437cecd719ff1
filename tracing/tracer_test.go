package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("AverageTimeTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		tracer     *AverageTimeTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		tracer = NewAverageTimeTracer(timeTeller, KindIs("req_out"))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should average the task time", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		tracer.StartTask(Task{ID: "1", Kind: "req_out"})
		timeTeller.EXPECT().Now().Return(2.0)
		tracer.StartTask(Task{ID: "2", Kind: "req_out"})
		timeTeller.EXPECT().Now().Return(3.0)
		tracer.StartTask(Task{ID: "3", Kind: "req_in"})

		Expect(tracer.InflightCount()).To(Equal(2))

		timeTeller.EXPECT().Now().Return(4.0)
		tracer.EndTask(Task{ID: "1"})
		timeTeller.EXPECT().Now().Return(4.0)
		tracer.EndTask(Task{ID: "2"})
		timeTeller.EXPECT().Now().Return(4.0)
		tracer.EndTask(Task{ID: "3"})

		Expect(tracer.TotalCount()).To(Equal(uint64(2)))
		Expect(tracer.AverageTime()).To(BeNumerically("~", 2.5))
		Expect(tracer.InflightCount()).To(Equal(0))
	})
})

var _ = Describe("StepCountTracer", func() {
	var tracer *StepCountTracer

	BeforeEach(func() {
		tracer = NewStepCountTracer(LocationIs("req_in", "Cache"))
	})

	It("should count steps and tasks", func() {
		tracer.StartTask(Task{ID: "1", Kind: "req_in", Location: "Cache"})
		tracer.StartTask(Task{ID: "2", Kind: "req_in", Location: "Cache"})
		tracer.StartTask(Task{ID: "3", Kind: "req_in", Location: "Memory"})

		tracer.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "miss"}}})
		tracer.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "miss"}}})
		tracer.StepTask(Task{ID: "2", Steps: []TaskStep{{What: "hit"}}})
		tracer.StepTask(Task{ID: "3", Steps: []TaskStep{{What: "hit"}}})

		Expect(tracer.GetStepNames()).To(Equal([]string{"miss", "hit"}))
		Expect(tracer.GetStepCount("miss")).To(Equal(uint64(2)))
		Expect(tracer.GetTaskCount("miss")).To(Equal(uint64(1)))
		Expect(tracer.GetStepCount("hit")).To(Equal(uint64(1)))

		tracer.EndTask(Task{ID: "1"})
		tracer.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "miss"}}})

		Expect(tracer.GetStepCount("miss")).To(Equal(uint64(2)))
	})
})

var _ = Describe("DBTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		backend    *MockDataRecorder
		tracer     *DBTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		backend = NewMockDataRecorder(mockCtrl)

		backend.EXPECT().CreateTable("trace", taskTableEntry{})
		backend.EXPECT().CreateTable("trace_steps", stepTableEntry{})
		tracer = NewDBTracer(timeTeller, backend)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should write finished tasks", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		tracer.StartTask(Task{
			ID:       "1",
			Kind:     "req_in",
			What:     "*mem.ReadReq",
			Location: "Cache",
		})

		timeTeller.EXPECT().Now().Return(1.5)
		backend.EXPECT().InsertData("trace_steps", stepTableEntry{
			TaskID: "1",
			What:   "miss",
			Time:   1.5,
		})
		tracer.StepTask(Task{ID: "1", Steps: []TaskStep{{What: "miss"}}})

		timeTeller.EXPECT().Now().Return(3.0)
		backend.EXPECT().InsertData("trace", taskTableEntry{
			ID:        "1",
			Kind:      "req_in",
			What:      "*mem.ReadReq",
			Location:  "Cache",
			StartTime: 1.0,
			EndTime:   3.0,
		})
		tracer.EndTask(Task{ID: "1"})
	})

	It("should skip tasks outside of the time range", func() {
		tracer.SetTimeRange(2.0, 5.0)

		timeTeller.EXPECT().Now().Return(6.0)
		tracer.StartTask(Task{ID: "late", Kind: "req_in", What: "w"})
		tracer.EndTask(Task{ID: "late"})

		timeTeller.EXPECT().Now().Return(0.5)
		tracer.StartTask(Task{ID: "early", Kind: "req_in", What: "w"})
		timeTeller.EXPECT().Now().Return(1.0)
		tracer.EndTask(Task{ID: "early"})
	})

	It("should flush on terminate", func() {
		backend.EXPECT().Flush()

		tracer.Terminate()
	})
})
