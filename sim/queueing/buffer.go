// Package queueing provides the bounded queues that components hold messages
// in.
package queueing

import (
	"log"

	"github.com/sarchlab/simplecache/sim/hooking"
	"github.com/sarchlab/simplecache/sim/naming"
)

// HookPosBufPush marks when an element is pushed into the buffer.
var HookPosBufPush = &hooking.HookPos{Name: "Buffer Push"}

// HookPosBufPop marks when an element is popped from the buffer.
var HookPosBufPop = &hooking.HookPos{Name: "Buffer Pop"}

// A Queue reports how full it is.
type Queue interface {
	naming.Named

	Size() int
	Capacity() int
}

// An Owner is a component that holds queues.
type Owner interface {
	Queues() []Queue
}

// A Buffer is a bounded fifo queue.
type Buffer[T any] struct {
	naming.NamedBase
	hooking.HookableBase

	capacity int
	elements []T
}

// NewBuffer creates a buffer that holds at most capacity elements.
func NewBuffer[T any](name string, capacity int) *Buffer[T] {
	naming.NameMustBeValid(name)

	if capacity < 1 {
		log.Panicf("buffer %s must have a positive capacity, got %d",
			name, capacity)
	}

	return &Buffer[T]{
		NamedBase: naming.MakeNamedBase(name),
		capacity:  capacity,
	}
}

// CanPush tells if the buffer has room for one more element.
func (b *Buffer[T]) CanPush() bool {
	return len(b.elements) < b.capacity
}

// Push appends an element. Pushing into a full buffer panics.
func (b *Buffer[T]) Push(e T) {
	if len(b.elements) >= b.capacity {
		log.Panicf("buffer %s overflow", b.Name())
	}

	b.elements = append(b.elements, e)
	b.invoke(HookPosBufPush, e)
}

// Pop removes the oldest element. It returns false if the buffer is empty.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T

	if len(b.elements) == 0 {
		return zero, false
	}

	e := b.elements[0]
	b.elements[0] = zero
	b.elements = b.elements[1:]
	b.invoke(HookPosBufPop, e)

	return e, true
}

// Peek returns the oldest element without removing it.
func (b *Buffer[T]) Peek() (T, bool) {
	if len(b.elements) == 0 {
		var zero T
		return zero, false
	}

	return b.elements[0], true
}

// Capacity returns the maximum number of elements.
func (b *Buffer[T]) Capacity() int {
	return b.capacity
}

// Size returns the number of elements held.
func (b *Buffer[T]) Size() int {
	return len(b.elements)
}

// Clear drops all the elements.
func (b *Buffer[T]) Clear() {
	b.elements = nil
}

func (b *Buffer[T]) invoke(pos *hooking.HookPos, e T) {
	if b.NumHooks() == 0 {
		return
	}

	b.InvokeHook(hooking.HookCtx{
		Domain: b,
		Pos:    pos,
		Item:   e,
	})
}
