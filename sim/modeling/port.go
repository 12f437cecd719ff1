package modeling

import (
	"fmt"

	"github.com/sarchlab/simplecache/sim/hooking"
	"github.com/sarchlab/simplecache/sim/naming"
)

// HookPosPortMsgSend marks a message sent out from the port.
var HookPosPortMsgSend = &hooking.HookPos{Name: "Port Msg Send"}

// HookPosPortMsgRecvd marks an inbound message accepted by the port owner.
var HookPosPortMsgRecvd = &hooking.HookPos{Name: "Port Msg Recv"}

// HookPosPortMsgRefused marks a message that could not be handed over, in
// either direction.
var HookPosPortMsgRefused = &hooking.HookPos{Name: "Port Msg Refused"}

// HookPosPortRetry marks the port telling its peers to retry.
var HookPosPortRetry = &hooking.HookPos{Name: "Port Retry"}

// A Port is owned by a component and is used to plug in connections.
//
// Ports hand messages over synchronously. Send returns a SendError when the
// receiving component refuses the message; the sender must hold the message
// until the receiver calls SendRetry, which arrives at the sender's owner as
// NotifyPortFree.
type Port interface {
	naming.Named
	hooking.Hookable

	AsRemote() RemotePort

	SetConnection(conn Connection)
	Connection() Connection
	Component() Component

	// For connection
	Deliver(msg Msg) *SendError
	NotifyAvailable()

	// For component
	Send(msg Msg) *SendError
	SendRetry()
}

type defaultPort struct {
	hooking.HookableBase

	name string
	comp Component
	conn Connection
}

// NewPort creates a new port owned by the component.
func NewPort(comp Component, name string) Port {
	naming.NameMustBeValid(name)

	p := new(defaultPort)
	p.comp = comp
	p.name = name

	return p
}

// Name returns the name of the port.
func (p *defaultPort) Name() string {
	return p.name
}

// AsRemote returns the name other components use to address the port.
func (p *defaultPort) AsRemote() RemotePort {
	return RemotePort(p.name)
}

// SetConnection sets the connection plugged in to this port.
func (p *defaultPort) SetConnection(conn Connection) {
	if p.conn != nil {
		panic(fmt.Sprintf(
			"connection already set to %s, now connecting to %s",
			p.conn.Name(), conn.Name(),
		))
	}

	p.conn = conn
}

// Connection returns the connection plugged in to this port.
func (p *defaultPort) Connection() Connection {
	return p.conn
}

// Component returns the owner component of the port.
func (p *defaultPort) Component() Component {
	return p.comp
}

// Send sends a message out through the connection.
func (p *defaultPort) Send(msg Msg) *SendError {
	p.msgMustBeValid(msg)

	if p.conn == nil {
		panic("port " + p.name + " is not connected")
	}

	err := p.conn.Send(msg)
	if err != nil {
		p.invoke(HookPosPortMsgRefused, msg)
		return err
	}

	p.invoke(HookPosPortMsgSend, msg)

	return nil
}

// Deliver hands an inbound message to the owner component.
func (p *defaultPort) Deliver(msg Msg) *SendError {
	if p.comp == nil || !p.comp.NotifyRecv(p, msg) {
		p.invoke(HookPosPortMsgRefused, msg)
		return NewSendError()
	}

	p.invoke(HookPosPortMsgRecvd, msg)

	return nil
}

// NotifyAvailable is called by the connection when a port that refused this
// port earlier is ready again.
func (p *defaultPort) NotifyAvailable() {
	if p.comp != nil {
		p.comp.NotifyPortFree(p)
	}
}

// SendRetry tells the senders refused by this port that they may resend.
func (p *defaultPort) SendRetry() {
	p.invoke(HookPosPortRetry, nil)
	p.conn.NotifyAvailable(p)
}

func (p *defaultPort) invoke(pos *hooking.HookPos, msg Msg) {
	if p.NumHooks() == 0 {
		return
	}

	p.InvokeHook(hooking.HookCtx{
		Domain: p,
		Pos:    pos,
		Item:   msg,
	})
}

func (p *defaultPort) msgMustBeValid(msg Msg) {
	portMustBeMsgSrc(p, msg)
	dstMustNotBeEmpty(msg.Meta().Dst)
	srcDstMustNotBeTheSame(msg)
}

func portMustBeMsgSrc(port Port, msg Msg) {
	if port.AsRemote() != msg.Meta().Src {
		panic("sending port is not msg src")
	}
}

func dstMustNotBeEmpty(port RemotePort) {
	if port == "" {
		panic("dst is not given")
	}
}

func srcDstMustNotBeTheSame(msg Msg) {
	if msg.Meta().Src == msg.Meta().Dst {
		panic("sending back to src")
	}
}
