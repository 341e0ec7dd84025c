// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"math"
	"sync"

	"github.com/ik5/audmix/cell"
	"github.com/ik5/audmix/frame"
)

const faderChunk = 256

type fade[F frame.Frame[F]] struct {
	to       Signal[F]
	duration float64
}

// FaderControl starts crossfades on a Fader. It may be used from several
// goroutines; calls are serialised.
type FaderControl[F frame.Frame[F]] struct {
	mu   sync.Mutex
	next *cell.Cell[*fade[F]]
}

// FadeTo replaces the current signal with sig, crossfading over seconds.
// A fade already in progress completes before this one starts.
func (c *FaderControl[F]) FadeTo(sig Signal[F], seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next.Publish(&fade[F]{to: sig, duration: max(seconds, 1e-6)})
}

// Fader crossfades between signals with a constant-power curve. It never
// ends on its own.
type Fader[F frame.Frame[F]] struct {
	inner    Signal[F]
	control  FaderControl[F]
	pending  *fade[F]
	progress float64
	scratch  [faderChunk]F
}

// NewFader starts out playing inner.
func NewFader[F frame.Frame[F]](inner Signal[F]) *Fader[F] {
	f := &Fader[F]{
		inner:    inner,
		progress: 1,
	}
	f.control.next = cell.New[*fade[F]](nil)

	return f
}

// Sample renders the current signal, equal-power crossfading into a
// pending one when FadeTo was called.
func (f *Fader[F]) Sample(ctx Context, out []F) {
	if f.progress >= 1 {
		if !f.control.next.Refresh() || f.control.next.Load() == nil {
			f.inner.Sample(ctx, out)
			return
		}
		f.pending = f.control.next.Load()
		f.progress = 0
	}

	step := ctx.Interval() / f.pending.duration
	for len(out) > 0 {
		n := min(len(out), faderChunk)
		old := f.scratch[:n]
		f.inner.Sample(ctx, old)
		f.pending.to.Sample(ctx, out[:n])

		for i := range n {
			fadeOut := float32(math.Sqrt(1 - f.progress))
			fadeIn := float32(math.Sqrt(f.progress))
			out[i] = old[i].Scale(fadeOut).Add(out[i].Scale(fadeIn))
			f.progress = min(f.progress+step, 1)
		}
		out = out[n:]
	}

	if f.progress >= 1 {
		f.inner = f.pending.to
		f.pending = nil
	}
}

// Exhausted is always false; the current signal is replaced, never retired.
func (f *Fader[F]) Exhausted() bool { return false }

// Unwrap returns the signal currently playing.
func (f *Fader[F]) Unwrap() any { return f.inner }

// Control returns the handle used to start fades.
func (f *Fader[F]) Control() *FaderControl[F] { return &f.control }
