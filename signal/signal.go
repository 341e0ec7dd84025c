// SPDX-License-Identifier: EPL-2.0

package signal

import "github.com/ik5/audmix/frame"

// Context describes the render that is asking for frames.
type Context struct {
	// Rate is the output sample rate in Hz.
	Rate int
	// Speed scales how much source time passes per output frame.
	Speed float64
}

// NewContext returns a context for rate at normal speed.
func NewContext(rate int) Context {
	return Context{Rate: rate, Speed: 1}
}

// Interval returns the source time in seconds covered by one output frame.
func (c Context) Interval() float64 {
	return c.Speed / float64(c.Rate)
}

// Step returns how many source frames recorded at rate Hz pass per output
// frame.
func (c Context) Step(rate int) float64 {
	return float64(rate) * c.Speed / float64(c.Rate)
}

// Scaled returns c with its speed multiplied by f.
func (c Context) Scaled(f float64) Context {
	c.Speed *= f
	return c
}

// Signal produces successive frames of audio.
//
// Sample fills every frame of out and advances the signal. It runs on the
// render goroutine and must not block or allocate.
//
// Exhausted reports whether the signal has nothing more to produce. Once it
// returns true a scene retires the voice.
type Signal[F frame.Frame[F]] interface {
	Sample(ctx Context, out []F)
	Exhausted() bool
}

// Wrapper is implemented by signals that wrap another signal.
type Wrapper interface {
	Unwrap() any
}

// ControlOf walks a stack of wrappers starting at s and returns the first
// control of type C. Signals expose their control through a
// Control() C method.
//
//	gain, ok := signal.ControlOf[*signal.GainControl](voice)
func ControlOf[C any](s any) (C, bool) {
	for s != nil {
		if c, ok := s.(interface{ Control() C }); ok {
			return c.Control(), true
		}

		w, ok := s.(Wrapper)
		if !ok {
			break
		}
		s = w.Unwrap()
	}

	var zero C
	return zero, false
}

// Func adapts a function to a Signal that never ends. The function runs on
// the render goroutine.
type Func[F frame.Frame[F]] func(ctx Context, out []F)

// Sample calls f.
func (f Func[F]) Sample(ctx Context, out []F) { f(ctx, out) }

// Exhausted is always false.
func (f Func[F]) Exhausted() bool { return false }

// Constant produces the same frame forever.
type Constant[F frame.Frame[F]] struct {
	Frame F
}

// NewConstant returns a signal that repeats f.
func NewConstant[F frame.Frame[F]](f F) *Constant[F] {
	return &Constant[F]{Frame: f}
}

// Sample fills out with the frame.
func (c *Constant[F]) Sample(_ Context, out []F) {
	for i := range out {
		out[i] = c.Frame
	}
}

// Exhausted is always false.
func (c *Constant[F]) Exhausted() bool { return false }
