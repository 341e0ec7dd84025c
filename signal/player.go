// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"math"
	"sync/atomic"

	"github.com/ik5/audmix/frame"
)

// PlayerControl reports the playback position of a Player. It is safe to
// use from any goroutine.
type PlayerControl struct {
	seconds atomic.Uint64
}

// Position returns the playback position in seconds as of the last
// rendered block. It is negative during a leading delay.
func (c *PlayerControl) Position() float64 {
	return math.Float64frombits(c.seconds.Load())
}

func (c *PlayerControl) set(seconds float64) {
	c.seconds.Store(math.Float64bits(seconds))
}

// Player plays a Samples buffer once, resampling to the render rate with
// linear interpolation.
type Player[F frame.Frame[F]] struct {
	data    *Samples[F]
	cursor  float64 // in source frames
	control PlayerControl
}

// NewPlayer plays data from the start.
func NewPlayer[F frame.Frame[F]](data *Samples[F]) *Player[F] {
	return NewPlayerAt(data, 0)
}

// NewPlayerAt plays data from start seconds. A negative start delays the
// first frame by that long.
func NewPlayerAt[F frame.Frame[F]](data *Samples[F], start float64) *Player[F] {
	p := &Player[F]{
		data:   data,
		cursor: start * float64(data.rate),
	}
	p.control.set(start)

	return p
}

// Sample renders the next len(out) frames and advances the position.
func (p *Player[F]) Sample(ctx Context, out []F) {
	step := ctx.Step(p.data.rate)
	for i := range out {
		out[i] = p.data.Interpolate(p.cursor)
		p.cursor += step
	}

	p.control.set(p.cursor / float64(p.data.rate))
}

// Exhausted reports whether the cursor has passed the last frame.
func (p *Player[F]) Exhausted() bool {
	return p.cursor >= float64(p.data.Len())
}

// Control returns the position reporter shared with other goroutines.
func (p *Player[F]) Control() *PlayerControl { return &p.control }

// Cycle loops a Samples buffer forever.
type Cycle[F frame.Frame[F]] struct {
	data   *Samples[F]
	cursor float64
}

// NewCycle loops data as is.
func NewCycle[F frame.Frame[F]](data *Samples[F]) *Cycle[F] {
	return &Cycle[F]{data: data}
}

// NewCycleCrossfade builds a loop from frames whose last fade seconds are
// blended into its start, so the seam is inaudible. The result is shorter
// than frames by the crossfade length. A non-positive fade loops frames as
// they are.
func NewCycleCrossfade[F frame.Frame[F]](fade float64, rate int, frames []F) *Cycle[F] {
	if len(frames) == 0 {
		return NewCycle(&Samples[F]{rate: rate})
	}

	buf := append([]F(nil), frames...)

	size := max(0, min(int(fade*float64(rate)), len(buf)-1))
	end := len(buf) - size
	for i := range size {
		t := float32(i+1) / float32(size+1)
		buf[i] = buf[end+i].Lerp(buf[i], t)
	}

	return NewCycle(&Samples[F]{rate: rate, frames: buf[:end]})
}

// Sample renders the next len(out) frames, wrapping at either end of the
// buffer so negative speeds loop backwards.
func (c *Cycle[F]) Sample(ctx Context, out []F) {
	n := float64(c.data.Len())
	if n == 0 {
		frame.Silence(out)
		return
	}

	step := ctx.Step(c.data.rate)
	for i := range out {
		a := int(c.cursor)
		b := (a + 1) % c.data.Len()
		t := float32(c.cursor - float64(a))
		out[i] = frame.Lerp(c.data.frames[a], c.data.frames[b], t)

		c.cursor = math.Mod(c.cursor+step, n)
		if c.cursor < 0 {
			c.cursor += n
		}
		// NaN from an infinite step, or a tiny negative rounding up to n.
		if !(c.cursor < n) {
			c.cursor = 0
		}
	}
}

// Exhausted is always false; a Cycle never ends on its own.
func (c *Cycle[F]) Exhausted() bool { return false }
