// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/signal"
)

// Counter is a mono signal whose n-th frame is n. With a positive Limit it
// is exhausted after Limit frames.
type Counter struct {
	Limit int
	next  int
}

func (c *Counter) Sample(_ signal.Context, out []frame.Mono) {
	for i := range out {
		out[i] = frame.Mono(c.next)
		c.next++
	}
}

func (c *Counter) Exhausted() bool { return c.Limit > 0 && c.next >= c.Limit }

// Frames returns how many frames have been produced.
func (c *Counter) Frames() int { return c.next }

// Clock is a mono signal whose value is its own elapsed source time in
// seconds, starting at Start.
type Clock struct {
	Start float64
	t     float64
}

func (c *Clock) Sample(ctx signal.Context, out []frame.Mono) {
	dt := ctx.Interval()
	for i := range out {
		out[i] = frame.Mono(c.Start + c.t)
		c.t += dt
	}
}

func (c *Clock) Exhausted() bool { return false }

// Finished is a silent signal that is exhausted from the start.
type Finished[F frame.Frame[F]] struct{}

func (Finished[F]) Sample(_ signal.Context, out []F) { frame.Silence(out) }
func (Finished[F]) Exhausted() bool                  { return true }

// Tone returns a mono buffer of n frames holding a sine wave at hz.
func Tone(rate, n int, hz float64) *signal.Samples[frame.Mono] {
	src := Sine(rate, 1, n, hz)
	buf := make([]float32, n)
	src.ReadSamples(buf)

	frames := make([]frame.Mono, n)
	for i, x := range buf {
		frames[i] = frame.Mono(x)
	}

	return signal.NewSamples(rate, frames)
}
