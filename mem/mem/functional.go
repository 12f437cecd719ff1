package mem

import (
	"log"
	"reflect"

	"github.com/sarchlab/simplecache/sim/modeling"
)

// A FunctionalHandler serves untimed accesses. Functional accesses complete
// within the call, take no simulated time, and bypass flow control. They are
// used to load programs and to inspect memory.
type FunctionalHandler interface {
	HandleFunctional(port modeling.Port, req AccessReq) AccessRsp
}

// SendFunctional performs an untimed access through the port. The request
// must name the port as its source and the receiving port as destination.
// Requests that need no response return nil.
func SendFunctional(port modeling.Port, req AccessReq) AccessRsp {
	if req.Meta().Src != port.AsRemote() {
		panic("sending port is not msg src")
	}

	dst := connectionMustBeSet(port).FindPort(req.Meta().Dst)
	if dst == nil {
		log.Panicf("port %s cannot reach %s", port.Name(), req.Meta().Dst)
	}

	handler, ok := dst.Component().(FunctionalHandler)
	if !ok {
		log.Panicf("%s does not serve functional accesses",
			reflect.TypeOf(dst.Component()))
	}

	return handler.HandleFunctional(dst, req)
}
