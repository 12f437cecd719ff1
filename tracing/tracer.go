package tracing

import (
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/sim/hooking"
)

// A Tracer is told when the tasks of the observed domains start, make
// progress and end.
type Tracer interface {
	StartTask(task Task)
	StepTask(task Task)
	EndTask(task Task)
}

// CollectTrace attaches the tracer to the domain. Attaching the same tracer
// twice panics, as every task would be counted twice.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	for _, h := range domain.Hooks() {
		if th, ok := h.(*traceHook); ok && th.tracer == tracer {
			log.Panicf("domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer))
		}
	}

	domain.AcceptHook(&traceHook{tracer: tracer})
}

// traceHook turns the task hook positions into Tracer calls.
type traceHook struct {
	tracer Tracer
}

func (h *traceHook) Func(ctx hooking.HookCtx) {
	task, ok := ctx.Item.(Task)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosTaskStart:
		h.tracer.StartTask(task)
	case HookPosTaskStep:
		h.tracer.StepTask(task)
	case HookPosTaskEnd:
		h.tracer.EndTask(task)
	}
}
