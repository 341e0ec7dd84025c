// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"math"

	"github.com/ik5/audmix/frame"
)

const convertChunk = 256

// MonoToStereo copies a mono signal to both channels.
type MonoToStereo struct {
	inner   Signal[frame.Mono]
	scratch [convertChunk]frame.Mono
}

// NewMonoToStereo wraps a mono signal for a stereo mixer.
func NewMonoToStereo(inner Signal[frame.Mono]) *MonoToStereo {
	return &MonoToStereo{inner: inner}
}

// Sample renders inner in chunks and duplicates each frame.
func (m *MonoToStereo) Sample(ctx Context, out []frame.Stereo) {
	for len(out) > 0 {
		n := min(len(out), convertChunk)
		buf := m.scratch[:n]
		m.inner.Sample(ctx, buf)
		for i, x := range buf {
			out[i] = frame.Stereo{float32(x), float32(x)}
		}
		out = out[n:]
	}
}

// Exhausted reports whether inner is exhausted.
func (m *MonoToStereo) Exhausted() bool { return m.inner.Exhausted() }

// Unwrap returns the mono signal.
func (m *MonoToStereo) Unwrap() any { return m.inner }

// Downmix sums every channel of its inner signal into one.
type Downmix[F frame.Frame[F]] struct {
	inner   Signal[F]
	scratch [convertChunk]F
}

// NewDownmix wraps inner for a mono mixer or a spatial scene.
func NewDownmix[F frame.Frame[F]](inner Signal[F]) *Downmix[F] {
	return &Downmix[F]{inner: inner}
}

// Sample renders inner in chunks and sums each frame's channels.
func (d *Downmix[F]) Sample(ctx Context, out []frame.Mono) {
	for len(out) > 0 {
		n := min(len(out), convertChunk)
		buf := d.scratch[:n]
		d.inner.Sample(ctx, buf)
		for i, x := range buf {
			out[i] = frame.Mono(x.Sum())
		}
		out = out[n:]
	}
}

// Exhausted reports whether inner is exhausted.
func (d *Downmix[F]) Exhausted() bool { return d.inner.Exhausted() }

// Unwrap returns the wrapped signal.
func (d *Downmix[F]) Unwrap() any { return d.inner }

// Sine is a sine wave oscillator.
type Sine struct {
	phase float64
	omega float64
}

// NewSine returns an oscillator at hz starting at phase radians.
func NewSine(phase, hz float64) *Sine {
	return &Sine{phase: phase, omega: hz * 2 * math.Pi}
}

// Sample renders the next len(out) frames. The phase is kept in [0, 2π).
func (s *Sine) Sample(ctx Context, out []frame.Mono) {
	dt := ctx.Interval()
	for i := range out {
		out[i] = frame.Mono(math.Sin(s.phase + float64(i)*dt*s.omega))
	}

	s.phase = math.Mod(s.phase+float64(len(out))*dt*s.omega, 2*math.Pi)
}

// Exhausted is always false.
func (s *Sine) Exhausted() bool { return false }
