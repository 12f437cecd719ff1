// Package hooking lets observers attach to simulation elements without the
// elements knowing what the observers do.
package hooking

import "log"

// HookPos names a site where hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx carries what a hook needs to know about the site that invoked it.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable is an element that hooks can be attached to.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// Hook is invoked by a Hookable at its hook positions.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase implements Hookable and can be embedded.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook registers a hook. Registering the same hook twice panics.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, existing := range h.hookList {
		if existing == hook {
			panic("duplicated hook")
		}
	}

	h.hookList = append(h.hookList, hook)
}

// InvokeHook calls all the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}

// LogHookBase can be embedded by hooks that write to a logger.
type LogHookBase struct {
	*log.Logger
}
