// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"math"
	"time"

	"github.com/ik5/audmix/frame"
)

// Samples is decoded audio at a fixed rate. It is never modified after
// construction, so any number of voices may play it at once.
type Samples[F frame.Frame[F]] struct {
	rate   int
	frames []F
}

// NewSamples copies frames into a new buffer recorded at rate Hz.
func NewSamples[F frame.Frame[F]](rate int, frames []F) *Samples[F] {
	return &Samples[F]{
		rate:   rate,
		frames: append([]F(nil), frames...),
	}
}

// Rate returns the sample rate in Hz.
func (s *Samples[F]) Rate() int { return s.rate }

// Len returns the number of frames.
func (s *Samples[F]) Len() int { return len(s.frames) }

// Duration returns the playing time at the native rate.
func (s *Samples[F]) Duration() time.Duration {
	return time.Duration(float64(len(s.frames)) / float64(s.rate) * float64(time.Second))
}

// At returns frame i, or silence when i is out of range.
func (s *Samples[F]) At(i int) F {
	if i < 0 || i >= len(s.frames) {
		var zero F
		return zero
	}

	return s.frames[i]
}

// Interpolate returns the frame at fractional position pos using linear
// interpolation. Positions outside the buffer fade to silence over one
// frame.
func (s *Samples[F]) Interpolate(pos float64) F {
	i := math.Floor(pos)
	t := float32(pos - i)
	n := int(i)

	return frame.Lerp(s.At(n), s.At(n+1), t)
}
