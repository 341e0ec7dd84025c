// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"math"

	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/signal"
)

// ring is a delay line holding the most recent output of a mono signal.
// Positions are counted in frames since the line was created.
type ring struct {
	buf []frame.Mono
	pos float64 // end of the written range, possibly fractional
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]frame.Mono, capacity)}
}

// written returns the number of whole frames written so far.
func (r *ring) written() int {
	return int(math.Ceil(r.pos - 1e-9))
}

// write advances the line by dt seconds, sampling sig at ctx.Rate into the
// frames that come due. dt*ctx.Rate must not exceed the capacity.
func (r *ring) write(sig signal.Signal[frame.Mono], ctx signal.Context, dt float64) {
	start := r.written()
	r.pos += dt * float64(ctx.Rate)
	end := r.written()

	n := end - start
	if n <= 0 {
		return
	}
	if n > len(r.buf) {
		start = end - len(r.buf)
		n = len(r.buf)
	}

	i := start % len(r.buf)
	first := min(n, len(r.buf)-i)
	sig.Sample(ctx, r.buf[i:i+first])
	if first < n {
		sig.Sample(ctx, r.buf[:n-first])
	}
}

// at returns frame i, or silence if it was never written or has been
// overwritten.
func (r *ring) at(i int) frame.Mono {
	w := r.written()
	if i < 0 || i >= w || i < w-len(r.buf) {
		return 0
	}

	return r.buf[i%len(r.buf)]
}

// sample returns the signal t seconds before the end of the written range,
// interpolated linearly. t must be zero or negative.
func (r *ring) sample(rate int, t float64) float32 {
	s := r.pos + t*float64(rate)
	x := math.Floor(s)
	i := int(x)

	return float32(r.at(i).Lerp(r.at(i+1), float32(s-x)))
}
