package timing

import (
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/sim/hooking"
)

// EventLogger is a hook that prints every event before it is handled.
type EventLogger struct {
	hooking.LogHookBase
}

// NewEventLogger returns a new EventLogger that writes into the logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger

	return h
}

type named interface {
	Name() string
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	handlerName := reflect.TypeOf(evt.Handler()).String()
	if n, ok := evt.Handler().(named); ok {
		handlerName = n.Name()
	}

	h.Printf("%.10f, %s -> %s", evt.Time(), reflect.TypeOf(evt), handlerName)
}
