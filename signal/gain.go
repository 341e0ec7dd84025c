// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"math"

	"github.com/ik5/audmix/cell"
	"github.com/ik5/audmix/frame"
)

// DBToAmplitude converts decibels to a linear amplitude ratio.
func DBToAmplitude(db float32) float32 {
	return float32(math.Pow(10, float64(db)/20))
}

// AmplitudeToDB converts a linear amplitude ratio to decibels.
func AmplitudeToDB(r float32) float32 {
	return float32(20 * math.Log10(float64(r)))
}

// GainControl adjusts a Gain from any goroutine.
type GainControl struct {
	amplitude cell.Float
}

// Gain returns the target gain in decibels.
func (c *GainControl) Gain() float32 { return AmplitudeToDB(c.Amplitude()) }

// SetGain sets the target gain in decibels.
func (c *GainControl) SetGain(db float32) { c.SetAmplitude(DBToAmplitude(db)) }

// Amplitude returns the target amplitude ratio.
func (c *GainControl) Amplitude() float32 { return c.amplitude.Load() }

// SetAmplitude sets the target amplitude ratio.
func (c *GainControl) SetAmplitude(r float32) { c.amplitude.Store(r) }

// Gain scales its inner signal by a gain that can change while playing.
// Changes are ramped over a tenth of a second to avoid clicks.
type Gain[F frame.Frame[F]] struct {
	inner   Signal[F]
	control GainControl
	ramp    Smoothed
}

// NewGain wraps inner at unity gain.
func NewGain[F frame.Frame[F]](inner Signal[F]) *Gain[F] {
	g := &Gain[F]{
		inner: inner,
		ramp:  NewSmoothed(1),
	}
	g.control.SetAmplitude(1)

	return g
}

// Sample renders inner, ramping towards the control's amplitude.
func (g *Gain[F]) Sample(ctx Context, out []F) {
	g.inner.Sample(ctx, out)

	if target := g.control.Amplitude(); target != g.ramp.Target() {
		g.ramp.Set(target)
	}

	if g.ramp.Done() {
		frame.ScaleInto(out, g.ramp.Get())
		return
	}

	step := float32(ctx.Interval() / rampSeconds)
	for i := range out {
		out[i] = out[i].Scale(g.ramp.Get())
		g.ramp.Advance(step)
	}
}

// Exhausted reports whether inner is exhausted.
func (g *Gain[F]) Exhausted() bool { return g.inner.Exhausted() }

// Unwrap returns the wrapped signal.
func (g *Gain[F]) Unwrap() any { return g.inner }

// Control returns the handle used to change the gain.
func (g *Gain[F]) Control() *GainControl { return &g.control }

// FixedGain scales its inner signal by a constant factor.
type FixedGain[F frame.Frame[F]] struct {
	inner Signal[F]
	gain  float32
}

// NewFixedGain wraps inner with a gain of db decibels.
func NewFixedGain[F frame.Frame[F]](inner Signal[F], db float32) *FixedGain[F] {
	return &FixedGain[F]{inner: inner, gain: DBToAmplitude(db)}
}

// Sample renders inner scaled by the fixed gain.
func (g *FixedGain[F]) Sample(ctx Context, out []F) {
	g.inner.Sample(ctx, out)
	frame.ScaleInto(out, g.gain)
}

// Exhausted reports whether inner is exhausted.
func (g *FixedGain[F]) Exhausted() bool { return g.inner.Exhausted() }

// Unwrap returns the wrapped signal.
func (g *FixedGain[F]) Unwrap() any { return g.inner }
