// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"math"
	"sync/atomic"

	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/internal/spsc"
)

// StreamControl feeds frames to a Stream. Exactly one goroutine may write
// to it at a time.
type StreamControl[F frame.Frame[F]] struct {
	queue  *spsc.Queue[F]
	closed atomic.Bool
}

// Write queues as many leading frames of frames as there is room for and
// returns how many were accepted. It never blocks; callers retry the rest
// later. Nothing is accepted after Close.
func (c *StreamControl[F]) Write(frames []F) int {
	if c.closed.Load() {
		return 0
	}

	return c.queue.PushSlice(frames)
}

// Close marks the end of the stream. The Stream becomes exhausted once the
// frames already written have been played.
func (c *StreamControl[F]) Close() { c.closed.Store(true) }

// Closed reports whether Close has been called.
func (c *StreamControl[F]) Closed() bool { return c.closed.Load() }

// Free returns how many frames Write would accept now.
func (c *StreamControl[F]) Free() int { return c.queue.Cap() - c.queue.Len() }

// Stream plays frames written from another goroutine, such as decoded
// network audio, resampling to the render rate. Frames that have not arrived
// in time render as silence.
type Stream[F frame.Frame[F]] struct {
	control StreamControl[F]
	rate    int
	t       float64 // fractional offset of the oldest queued frame
}

// NewStream returns a stream of frames recorded at rate Hz that buffers at
// least size frames.
func NewStream[F frame.Frame[F]](rate, size int) *Stream[F] {
	return &Stream[F]{
		control: StreamControl[F]{queue: spsc.New[F](size)},
		rate:    rate,
	}
}

// at returns queued frame i, or silence at or past avail.
func (s *Stream[F]) at(i, avail int) F {
	if i >= avail {
		var zero F
		return zero
	}

	v, _ := s.control.queue.Peek(i)
	return v
}

// Sample renders the next len(out) frames and releases the queued frames
// the cursor has passed.
func (s *Stream[F]) Sample(ctx Context, out []F) {
	avail := s.control.queue.Len()
	step := ctx.Step(s.rate)

	for i := range out {
		pos := s.t + step*float64(i)
		f := math.Floor(pos)
		n := int(f)
		if f < 0 || n >= avail {
			var zero F
			out[i] = zero
			continue
		}

		out[i] = frame.Lerp(s.at(n, avail), s.at(n+1, avail), float32(pos-f))
	}

	adv := min(s.t+step*float64(len(out)), float64(avail))
	if !(adv > 0) {
		adv = 0
	}

	whole := math.Floor(adv)
	s.control.queue.Discard(int(whole))
	s.t = adv - whole
}

// Exhausted reports whether the stream is closed and every written frame
// has been played.
func (s *Stream[F]) Exhausted() bool {
	if !s.control.closed.Load() {
		return false
	}

	return float64(s.control.queue.Len()) <= s.t
}

// Control returns the writer side of the stream.
func (s *Stream[F]) Control() *StreamControl[F] { return &s.control }
