package modeling

import (
	"github.com/sarchlab/simplecache/sim/hooking"
	"github.com/sarchlab/simplecache/sim/naming"
	"github.com/sarchlab/simplecache/sim/timing"
)

// A Component is an element that is being simulated.
type Component interface {
	naming.Named
	timing.Handler
	hooking.Hookable
	PortOwner

	// NotifyRecv is called when a message arrives at one of the component's
	// ports. Returning false refuses the message; the component then owes
	// the sender a retry through port.SendRetry.
	NotifyRecv(port Port, msg Msg) bool

	// NotifyPortFree is called when the receiver that refused a message sent
	// from the port is ready again.
	NotifyPortFree(port Port)
}

// ComponentBase provides the naming, hooking, and port bookkeeping that
// components share.
type ComponentBase struct {
	naming.NamedBase
	hooking.HookableBase
	*PortOwnerBase
}

// NewComponentBase creates a new ComponentBase.
func NewComponentBase(name string) *ComponentBase {
	naming.NameMustBeValid(name)

	c := new(ComponentBase)
	c.NamedBase = naming.MakeNamedBase(name)
	c.PortOwnerBase = NewPortOwnerBase()

	return c
}

// TickingComponent is a component that updates its state once per cycle for
// as long as it is making progress.
type TickingComponent struct {
	*ComponentBase
	*timing.TickScheduler

	ticker timing.Ticker
}

// NewTickingComponent creates a new ticking component.
func NewTickingComponent(
	name string,
	engine timing.Engine,
	freq timing.Freq,
	ticker timing.Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.ComponentBase = NewComponentBase(name)
	tc.TickScheduler = timing.NewTickScheduler(tc, engine, freq)
	tc.ticker = ticker

	return tc
}

// Handle triggers the tick function of the TickingComponent.
func (c *TickingComponent) Handle(_ timing.Event) error {
	madeProgress := c.ticker.Tick()
	if madeProgress {
		c.TickLater()
	}

	return nil
}

// NotifyPortFree wakes the component up.
func (c *TickingComponent) NotifyPortFree(_ Port) {
	c.TickLater()
}
