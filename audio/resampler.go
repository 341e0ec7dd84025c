// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audmix/frame"
)

// maxEmptyReads is how many (0, nil) reads in a row the resampler accepts
// from its source before giving up.
const maxEmptyReads = 100

// Resampler streams from src to a target sample rate using cubic
// interpolation. It works on interleaved samples and preserves the channel
// count. When downsampling, a one-pole low-pass filter runs ahead of the
// interpolation.
type Resampler struct {
	src      Source
	srcRate  int64
	dstRate  int64
	channels int

	// window holds source frames t-1, t, t+1 and t+2; real marks those that
	// came from the source rather than padding past its end.
	window [4][]float32
	real   [4]bool
	primed bool

	// Output frame k sits at source position k*srcRate/dstRate, kept in
	// integers so long streams do not drift.
	emitted int64
	index   int64 // source index of window[1]

	in         []float32
	head, tail int
	eof        bool

	lowpass bool
	settled bool
	alpha   float32
	state   []float32
}

// NewResampler converts src to dstRate Hz.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		srcRate:  int64(src.SampleRate()),
		dstRate:  int64(dstRate),
		channels: channels,
		in:       make([]float32, max(src.BufSize(), 1)*channels),
		lowpass:  step > 1,
		state:    make([]float32, channels),
	}
	if r.lowpass {
		// Cutoff just under the destination Nyquist frequency.
		r.alpha = float32(1 - math.Exp(-2*math.Pi*0.45/step))
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}

	return nil
}

// next copies the next source frame into dst and reports whether there was
// one.
func (r *Resampler) next(dst []float32) (bool, error) {
	for empty := 0; r.head >= r.tail; empty++ {
		if r.eof {
			return false, nil
		}
		if empty >= maxEmptyReads {
			return false, io.ErrNoProgress
		}

		n, err := r.src.ReadSamples(r.in)
		r.head, r.tail = 0, n-n%r.channels
		if errors.Is(err, io.EOF) {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("resampler: %w", err)
		}
	}

	copy(dst, r.in[r.head:r.head+r.channels])
	r.head += r.channels

	switch {
	case r.lowpass && !r.settled:
		// Start the filter settled on the first frame.
		copy(r.state, dst)
		r.settled = true
	case r.lowpass:
		for c, x := range dst {
			r.state[c] += r.alpha * (x - r.state[c])
			dst[c] = r.state[c]
		}
	}

	return true, nil
}

// shift slides the window one frame forward, padding with the last frame
// once the source is exhausted.
func (r *Resampler) shift() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.real[:], r.real[1:])
	r.window[3] = first

	ok, err := r.next(r.window[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}
	r.real[3] = ok

	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.next(r.window[1])
	if err != nil || !ok {
		return err
	}
	copy(r.window[0], r.window[1])
	r.real[1] = true

	for i := 2; i < len(r.window); i++ {
		if ok, err = r.next(r.window[i]); err != nil {
			return err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.real[i] = ok
	}

	r.primed = true
	return nil
}

// ReadSamples produces samples at the target rate. len(dst) must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
		if !r.primed {
			return 0, io.EOF
		}
	}

	written := 0
	for written < len(dst) {
		num := r.emitted * r.srcRate
		for ; r.index < num/r.dstRate; r.index++ {
			if err := r.shift(); err != nil {
				return written, err
			}
		}

		if !r.real[1] {
			return written, io.EOF
		}

		x := float32(num%r.dstRate) / float32(r.dstRate)
		for c := range r.channels {
			dst[written+c] = frame.Cubic(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}
		written += r.channels
		r.emitted++
	}

	return written, nil
}
