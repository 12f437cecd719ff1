// Package directconnection provides a connection that hands messages over
// without latency.
package directconnection

import (
	"log"

	"github.com/sarchlab/simplecache/sim/hooking"
	"github.com/sarchlab/simplecache/sim/modeling"
	"github.com/sarchlab/simplecache/sim/naming"
)

// Comp is a DirectConnection. It delivers a message to its destination in
// the same call that sends it.
type Comp struct {
	naming.NamedBase
	hooking.HookableBase

	ports  []modeling.Port
	byName map[modeling.RemotePort]modeling.Port

	// waiting lists, per destination, the senders that were refused.
	waiting map[modeling.RemotePort][]modeling.Port
}

// PlugIn marks the port connects to this DirectConnection.
func (c *Comp) PlugIn(port modeling.Port) {
	if _, found := c.byName[port.AsRemote()]; found {
		log.Panicf("port %s already plugged in to %s", port.Name(), c.Name())
	}

	c.ports = append(c.ports, port)
	c.byName[port.AsRemote()] = port

	port.SetConnection(c)
}

// Unplug marks the port no longer connects to this DirectConnection.
func (c *Comp) Unplug(port modeling.Port) {
	if _, found := c.byName[port.AsRemote()]; !found {
		log.Panicf("port %s is not plugged in to %s", port.Name(), c.Name())
	}

	delete(c.byName, port.AsRemote())
	delete(c.waiting, port.AsRemote())

	for i, p := range c.ports {
		if p == port {
			c.ports = append(c.ports[:i], c.ports[i+1:]...)
			break
		}
	}
}

// Send delivers the message to the destination port.
func (c *Comp) Send(msg modeling.Msg) *modeling.SendError {
	dst := c.FindPort(msg.Meta().Dst)
	if dst == nil {
		log.Panicf("port %s is not plugged in to %s",
			msg.Meta().Dst, c.Name())
	}

	c.invoke(modeling.HookPosConnStartSend, msg)

	err := dst.Deliver(msg)
	if err != nil {
		c.markWaiting(dst, msg.Meta().Src)
		return err
	}

	c.invoke(modeling.HookPosConnDeliver, msg)

	return nil
}

func (c *Comp) markWaiting(dst modeling.Port, src modeling.RemotePort) {
	srcPort := c.FindPort(src)
	if srcPort == nil {
		return
	}

	for _, p := range c.waiting[dst.AsRemote()] {
		if p == srcPort {
			return
		}
	}

	c.waiting[dst.AsRemote()] = append(c.waiting[dst.AsRemote()], srcPort)
}

// NotifyAvailable is called by a port to notify that the port can accept
// messages again. Only the senders that the port refused are notified.
func (c *Comp) NotifyAvailable(p modeling.Port) {
	waiting := c.waiting[p.AsRemote()]
	delete(c.waiting, p.AsRemote())

	for _, port := range waiting {
		port.NotifyAvailable()
	}
}

// FindPort returns the plugged-in port with the given name.
func (c *Comp) FindPort(name modeling.RemotePort) modeling.Port {
	return c.byName[name]
}

// Peers returns the ports other than the given one.
func (c *Comp) Peers(p modeling.Port) []modeling.Port {
	peers := make([]modeling.Port, 0, len(c.ports))

	for _, port := range c.ports {
		if port != p {
			peers = append(peers, port)
		}
	}

	return peers
}

func (c *Comp) invoke(pos *hooking.HookPos, msg modeling.Msg) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{Domain: c, Pos: pos, Item: msg})
}
