package simplecache

import (
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/sim/hooking"
	"github.com/sarchlab/simplecache/sim/timing"
)

// DebugLogger prints the decisions of a cache.
type DebugLogger struct {
	hooking.LogHookBase

	timeTeller timing.TimeTeller
}

// NewDebugLogger creates a DebugLogger that writes into the logger.
func NewDebugLogger(
	logger *log.Logger,
	timeTeller timing.TimeTeller,
) *DebugLogger {
	h := new(DebugLogger)
	h.Logger = logger
	h.timeTeller = timeTeller

	return h
}

// Func prints the decision.
func (h *DebugLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosDecision {
		return
	}

	d := ctx.Item.(Decision)
	comp := ctx.Domain.(*Comp)

	h.Printf("%.10f, %s, %s, %#x, %s, %s",
		h.timeTeller.Now(), comp.Name(), d.What, d.Address,
		reflect.TypeOf(d.Msg), d.Msg.Meta().ID)
}
