package modeling

import (
	"github.com/sarchlab/simplecache/sim/hooking"
	"github.com/sarchlab/simplecache/sim/naming"
)

// SendError marks a failed send or delivery. The receiver refused the
// message and owes the sender a retry.
type SendError struct{}

// NewSendError creates a SendError.
func NewSendError() *SendError {
	return new(SendError)
}

// A Connection delivers messages between the ports plugged into it.
type Connection interface {
	naming.Named
	hooking.Hookable

	PlugIn(port Port)
	Unplug(port Port)

	// Send delivers the message to its destination port. A non-nil return
	// means the destination refused it.
	Send(msg Msg) *SendError

	// NotifyAvailable tells the ports waiting on the given port that they
	// may try sending again.
	NotifyAvailable(port Port)

	// FindPort returns the plugged-in port with the given name, or nil.
	FindPort(name RemotePort) Port

	// Peers returns all the plugged-in ports except the given one.
	Peers(port Port) []Port
}

// HookPosConnStartSend marks a connection accepting a message to send.
var HookPosConnStartSend = &hooking.HookPos{Name: "Conn Start Send"}

// HookPosConnDeliver marks a connection delivering a message.
var HookPosConnDeliver = &hooking.HookPos{Name: "Conn Deliver"}
