package modeling

import (
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/sim/hooking"
	"github.com/sarchlab/simplecache/sim/timing"
)

// PortMsgLogger is a hook for logging messages as they go across a Port.
type PortMsgLogger struct {
	hooking.LogHookBase

	timeTeller timing.TimeTeller
}

// NewPortMsgLogger returns a new PortMsgLogger which writes into the logger.
func NewPortMsgLogger(
	logger *log.Logger,
	timeTeller timing.TimeTeller,
) *PortMsgLogger {
	h := new(PortMsgLogger)
	h.Logger = logger
	h.timeTeller = timeTeller

	return h
}

// Func writes the message information into the logger.
func (h *PortMsgLogger) Func(ctx hooking.HookCtx) {
	port, ok := ctx.Domain.(Port)
	if !ok {
		return
	}

	msg, ok := ctx.Item.(Msg)
	if !ok {
		h.Printf("%.10f,%s,%s",
			h.timeTeller.Now(), port.Name(), ctx.Pos.Name)

		return
	}

	h.Printf("%.10f,%s,%s,%s,%s,%s,%s",
		h.timeTeller.Now(), port.Name(),
		ctx.Pos.Name,
		msg.Meta().Src.Name(),
		msg.Meta().Dst.Name(),
		reflect.TypeOf(msg), msg.Meta().ID)
}
