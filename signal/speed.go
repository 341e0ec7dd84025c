// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"github.com/ik5/audmix/cell"
	"github.com/ik5/audmix/frame"
)

// SpeedControl changes a Speed's playback rate from any goroutine.
type SpeedControl struct {
	factor cell.Float
}

// Speed returns the current rate multiplier.
func (c *SpeedControl) Speed() float32 { return c.factor.Load() }

// SetSpeed sets the rate multiplier. 2 plays an octave up and twice as fast.
// Negative factors run a Cycle backwards; a Player moving backwards past
// its start renders silence.
func (c *SpeedControl) SetSpeed(f float32) { c.factor.Store(f) }

// Speed plays its inner signal faster or slower, shifting its pitch.
type Speed[F frame.Frame[F]] struct {
	inner   Signal[F]
	control SpeedControl
}

// NewSpeed wraps inner at normal speed.
func NewSpeed[F frame.Frame[F]](inner Signal[F]) *Speed[F] {
	s := &Speed[F]{inner: inner}
	s.control.SetSpeed(1)

	return s
}

// Sample renders inner with the context's speed scaled by the factor.
func (s *Speed[F]) Sample(ctx Context, out []F) {
	s.inner.Sample(ctx.Scaled(float64(s.control.Speed())), out)
}

// Exhausted reports whether inner is exhausted.
func (s *Speed[F]) Exhausted() bool { return s.inner.Exhausted() }

// Unwrap returns the wrapped signal.
func (s *Speed[F]) Unwrap() any { return s.inner }

// Control returns the handle used to change the factor.
func (s *Speed[F]) Control() *SpeedControl { return &s.control }
