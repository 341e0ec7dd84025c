// SPDX-License-Identifier: EPL-2.0

// Package spsc implements a bounded wait-free queue for exactly one producer
// goroutine and one consumer goroutine.
package spsc

import "sync/atomic"

// Queue is a fixed-capacity ring. Push is called only by the producer, Pop
// only by the consumer. Neither ever blocks or allocates.
type Queue[T any] struct {
	buf  []T
	mask uint64

	head atomic.Uint64 // next index to pop, written by the consumer
	_    [56]byte
	tail atomic.Uint64 // next index to push, written by the producer
}

// New returns a queue able to hold at least capacity items. The capacity is
// rounded up to a power of two.
func New[T any](capacity int) *Queue[T] {
	size := 1
	for size < capacity {
		size <<= 1
	}

	return &Queue[T]{
		buf:  make([]T, size),
		mask: uint64(size - 1),
	}
}

// Push appends v and reports false when the queue is full.
func (q *Queue[T]) Push(v T) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == uint64(len(q.buf)) {
		return false
	}

	q.buf[tail&q.mask] = v
	q.tail.Store(tail + 1)

	return true
}

// PushSlice appends as many leading items of vs as fit and returns how
// many were accepted. The batch becomes visible to the consumer at once.
func (q *Queue[T]) PushSlice(vs []T) int {
	tail := q.tail.Load()
	n := min(len(vs), len(q.buf)-int(tail-q.head.Load()))
	if n <= 0 {
		return 0
	}

	for i, v := range vs[:n] {
		q.buf[(tail+uint64(i))&q.mask] = v
	}
	q.tail.Store(tail + uint64(n))

	return n
}

// Pop removes the oldest item. The second result is false when the queue is
// empty.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T

	head := q.head.Load()
	if head == q.tail.Load() {
		return zero, false
	}

	i := head & q.mask
	v := q.buf[i]
	q.buf[i] = zero
	q.head.Store(head + 1)

	return v, true
}

// Peek returns the item i places behind the oldest without removing it.
// Only the consumer may call it.
func (q *Queue[T]) Peek(i int) (T, bool) {
	var zero T

	head := q.head.Load()
	if i < 0 || uint64(i) >= q.tail.Load()-head {
		return zero, false
	}

	return q.buf[(head+uint64(i))&q.mask], true
}

// Discard removes up to n of the oldest items and returns how many were
// removed. Only the consumer may call it.
func (q *Queue[T]) Discard(n int) int {
	if n <= 0 {
		return 0
	}

	var zero T

	head := q.head.Load()
	n = min(n, int(q.tail.Load()-head))
	for i := range n {
		q.buf[(head+uint64(i))&q.mask] = zero
	}
	q.head.Store(head + uint64(n))

	return n
}

// Len returns the number of queued items. The result is exact only when
// called from the producer or consumer with the other side idle.
func (q *Queue[T]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	return len(q.buf)
}
