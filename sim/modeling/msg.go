// Package modeling defines components, ports, connections, and the messages
// that flow between them.
package modeling

// A RemotePort is the name of a port that a message can be sent to.
type RemotePort string

// Name returns the name of the port.
func (p RemotePort) Name() string {
	return string(p)
}

// MsgMeta contains the meta data that is attached to every message.
type MsgMeta struct {
	ID           string
	Src, Dst     RemotePort
	TrafficClass int
	TrafficBytes int
}

// A Msg is a piece of information transferred between components.
type Msg interface {
	Meta() *MsgMeta
	Clone() Msg
}

// Rsp is a message that marks the completion of a request.
type Rsp interface {
	Msg
	GetRspTo() string
}
