// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"math"

	"github.com/ik5/audmix/cell"
	"github.com/ik5/audmix/frame"
)

// PanControl positions a Pan from any goroutine.
type PanControl struct {
	pan cell.Float
}

// Pan returns the target position, -1 for hard left through 1 for hard right.
func (c *PanControl) Pan() float32 { return c.pan.Load() }

// SetPan sets the target position. Values are clamped to [-1, 1].
func (c *PanControl) SetPan(p float32) { c.pan.Store(max(-1, min(p, 1))) }

// Pan places a stereo signal between the speakers with an equal-power law.
// Centred, each channel is scaled by √½. Each channel gain is ramped
// independently when the position changes.
type Pan struct {
	inner   Signal[frame.Stereo]
	control PanControl
	current float32
	gains   [2]Smoothed
}

// NewPan wraps inner at the centre position.
func NewPan(inner Signal[frame.Stereo]) *Pan {
	l, r := panGains(0)

	return &Pan{
		inner: inner,
		gains: [2]Smoothed{NewSmoothed(l), NewSmoothed(r)},
	}
}

func panGains(p float32) (l, r float32) {
	theta := (float64(p) + 1) * math.Pi / 4
	return float32(math.Cos(theta)), float32(math.Sin(theta))
}

// Sample renders inner with constant-power gains, ramping after a change.
func (p *Pan) Sample(ctx Context, out []frame.Stereo) {
	p.inner.Sample(ctx, out)

	if target := p.control.Pan(); target != p.current {
		p.current = target
		l, r := panGains(target)
		p.gains[0].Set(l)
		p.gains[1].Set(r)
	}

	step := float32(ctx.Interval() / rampSeconds)
	for i := range out {
		out[i][0] *= p.gains[0].Get()
		out[i][1] *= p.gains[1].Get()
		p.gains[0].Advance(step)
		p.gains[1].Advance(step)
	}
}

// Exhausted reports whether inner is exhausted.
func (p *Pan) Exhausted() bool { return p.inner.Exhausted() }

// Unwrap returns the wrapped signal.
func (p *Pan) Unwrap() any { return p.inner }

// Control returns the handle used to move the pan.
func (p *Pan) Control() *PanControl { return &p.control }
