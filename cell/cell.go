// SPDX-License-Identifier: EPL-2.0

package cell

import (
	"math"
	"sync/atomic"
)

const (
	freshBit  = 0b100
	indexMask = 0b011
)

// Cell carries the most recently published value of T from one producer
// goroutine to one consumer goroutine.
//
// It is a triple buffer: the producer owns one slot, the consumer owns one,
// and the third is exchanged through a single atomic word. Neither side ever
// waits for the other, and a reader can never observe a half-written value
// because the slot it reads is never the slot being written.
//
// Publish must only be called from the producer; Refresh, Load and Update
// only from the consumer.
type Cell[T any] struct {
	slots [3]T

	// write is the producer's slot.
	write uint32
	// spare holds the exchanged slot index, plus freshBit while it carries
	// a value the consumer has not taken yet.
	spare atomic.Uint32
	// read is the consumer's slot.
	read uint32
}

// New returns a cell whose initial visible value is v.
func New[T any](v T) *Cell[T] {
	c := &Cell[T]{
		slots: [3]T{v, v, v},
		read:  1,
	}
	c.spare.Store(2)
	return c
}

// Publish makes v the latest value. Producer only.
func (c *Cell[T]) Publish(v T) {
	c.slots[c.write] = v
	c.write = c.spare.Swap(c.write|freshBit) & indexMask
}

// Refresh takes the latest published value, if any, and reports whether a
// new value was obtained. Consumer only.
func (c *Cell[T]) Refresh() bool {
	if c.spare.Load()&freshBit == 0 {
		return false
	}
	c.read = c.spare.Swap(c.read) & indexMask
	return true
}

// Load returns the value obtained by the last Refresh. Consumer only.
func (c *Cell[T]) Load() T {
	return c.slots[c.read]
}

// Update refreshes the cell and returns the value that was visible before
// the refresh together with whether a newer value replaced it. Consumer only.
func (c *Cell[T]) Update() (prev T, fresh bool) {
	prev = c.slots[c.read]
	return prev, c.Refresh()
}

// Float is a float32 readable and writable from any goroutine. It suits
// scalar controls such as gain or speed where only the latest value matters.
type Float struct {
	bits atomic.Uint32
}

// NewFloat returns a Float holding v.
func NewFloat(v float32) *Float {
	f := &Float{}
	f.Store(v)
	return f
}

// Store sets the value.
func (f *Float) Store(v float32) {
	f.bits.Store(math.Float32bits(v))
}

// Load returns the value.
func (f *Float) Load() float32 {
	return math.Float32frombits(f.bits.Load())
}
