// SPDX-License-Identifier: EPL-2.0

package slot

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ik5/audmix/internal/spsc"
)

// Key identifies one occupancy of a slot. It goes stale as soon as the
// occupant is retired.
type Key struct {
	Index uint32
	Gen   uint32
}

type entry[V any] struct {
	gen atomic.Uint32
	val V
}

type chunk[V any] struct {
	entries []entry[V]
}

// Table is an arena of voices shared between one control goroutine and one
// render goroutine.
//
// Control side: Insert, Get, Reclaim, Live, Cap. Calls must be serialised by
// the caller.
//
// Render side: Sync, Len, Active, Retire, ForEachActive.
//
// Slots live in chunks that never move once published, so the render side
// reads them without coordination beyond the two queues. Newly inserted
// slots reach the render side through the insert queue only after their
// contents are written; retired slots travel back through the reclamation
// queue so their contents are released on the control side.
type Table[V any] struct {
	chunkSize int
	maxVoices int
	chunks    []atomic.Pointer[chunk[V]]
	inserts   *spsc.Queue[uint32]
	retired   *spsc.Queue[uint32]

	// control side
	free   []uint32
	grown  int
	slots  int
	live   int
	logger *slog.Logger

	// render side
	active []uint32
}

// New allocates a table with cfg.Capacity slots ready for use.
func New[V any](cfg Config) (*Table[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nchunks := (cfg.MaxVoices + cfg.Capacity - 1) / cfg.Capacity

	t := &Table[V]{
		chunkSize: cfg.Capacity,
		maxVoices: cfg.MaxVoices,
		chunks:    make([]atomic.Pointer[chunk[V]], nchunks),
		inserts:   spsc.New[uint32](cfg.MaxVoices),
		retired:   spsc.New[uint32](cfg.MaxVoices),
		free:      make([]uint32, 0, cfg.Capacity),
		logger:    cfg.logger(),
		active:    make([]uint32, 0, cfg.MaxVoices),
	}
	t.grow()

	return t, nil
}

func (t *Table[V]) at(index uint32) *entry[V] {
	c := t.chunks[int(index)/t.chunkSize].Load()
	return &c.entries[int(index)%t.chunkSize]
}

// grow publishes one more chunk. Control side.
func (t *Table[V]) grow() bool {
	if t.grown == len(t.chunks) {
		return false
	}

	size := min(t.chunkSize, t.maxVoices-t.grown*t.chunkSize)
	base := t.grown * t.chunkSize
	t.chunks[t.grown].Store(&chunk[V]{entries: make([]entry[V], size)})
	t.grown++
	t.slots += size

	for i := size - 1; i >= 0; i-- {
		t.free = append(t.free, uint32(base+i))
	}

	if t.grown > 1 {
		t.logger.Debug("slot table grown", "slots", t.slots, "chunks", t.grown)
	}

	return true
}

// Insert stores v in a free slot and queues it for the render side. It
// first reclaims any retired slots.
func (t *Table[V]) Insert(v V) (Key, error) {
	t.Reclaim(nil)

	if t.live >= t.maxVoices {
		t.logger.Warn("voice capacity exceeded", "live", t.live, "max", t.maxVoices)
		return Key{}, fmt.Errorf("%w: %d voices live", ErrCapacityExceeded, t.live)
	}
	if len(t.free) == 0 && !t.grow() {
		return Key{}, fmt.Errorf("%w: no free slot", ErrCapacityExceeded)
	}

	index := t.free[len(t.free)-1]
	t.free = t.free[:len(t.free)-1]

	e := t.at(index)
	e.val = v
	key := Key{Index: index, Gen: e.gen.Load()}

	// Cannot fail: the queue holds MaxVoices items and at most that many
	// slots are live.
	t.inserts.Push(index)
	t.live++

	return key, nil
}

// Get returns the value for k, or false if k is stale. Control side.
func (t *Table[V]) Get(k Key) (V, bool) {
	var zero V

	if int(k.Index) >= t.slots {
		return zero, false
	}

	e := t.at(k.Index)
	if e.gen.Load() != k.Gen {
		return zero, false
	}

	return e.val, true
}

// Reclaim drains the reclamation queue, passing each retired value to fn
// (if non-nil) before clearing the slot for reuse. It returns the number of
// slots reclaimed. Control side.
func (t *Table[V]) Reclaim(fn func(V)) int {
	var zero V

	n := 0
	for {
		index, ok := t.retired.Pop()
		if !ok {
			break
		}

		e := t.at(index)
		if fn != nil {
			fn(e.val)
		}
		e.val = zero

		t.free = append(t.free, index)
		t.live--
		n++
	}

	return n
}

// Live returns the number of inserted voices not yet reclaimed. Control side.
func (t *Table[V]) Live() int {
	return t.live
}

// Cap returns the number of slots allocated so far. Control side.
func (t *Table[V]) Cap() int {
	return t.slots
}

// Sync admits voices inserted since the previous call. The active set is
// then fixed until the next Sync, apart from retirements. Render side.
func (t *Table[V]) Sync() {
	for {
		index, ok := t.inserts.Pop()
		if !ok {
			return
		}
		t.active = append(t.active, index)
	}
}

// Len returns the number of active voices. Render side.
func (t *Table[V]) Len() int {
	return len(t.active)
}

// Active returns the i-th active voice. Render side.
func (t *Table[V]) Active(i int) V {
	return t.at(t.active[i]).val
}

// Retire removes the i-th active voice, moving the last active voice into
// position i. The slot's generation is bumped at once, so keys to it go
// stale before its contents are reclaimed. Render side.
func (t *Table[V]) Retire(i int) {
	index := t.active[i]
	last := len(t.active) - 1
	t.active[i] = t.active[last]
	t.active = t.active[:last]

	t.at(index).gen.Add(1)
	t.retired.Push(index)
}

// ForEachActive calls fn for every active voice and retires those for which
// it returns true. Render side.
func (t *Table[V]) ForEachActive(fn func(V) (retire bool)) {
	for i := 0; i < len(t.active); {
		if fn(t.Active(i)) {
			t.Retire(i)
			continue
		}
		i++
	}
}
