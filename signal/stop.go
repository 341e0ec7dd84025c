// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"sync/atomic"

	"github.com/ik5/audmix/frame"
)

const (
	statePlaying int32 = iota
	statePaused
	stateStopped
)

// StopControl pauses, resumes or stops a voice from any goroutine.
type StopControl struct {
	state atomic.Int32
}

// Pause silences a playing voice and keeps it alive. It has no effect once
// stopped.
func (c *StopControl) Pause() { c.state.CompareAndSwap(statePlaying, statePaused) }

// Resume continues a paused voice.
func (c *StopControl) Resume() { c.state.CompareAndSwap(statePaused, statePlaying) }

// Stop ends the voice for good. It takes effect at the next block.
func (c *StopControl) Stop() { c.state.Store(stateStopped) }

// Paused reports whether the voice is paused.
func (c *StopControl) Paused() bool { return c.state.Load() == statePaused }

// Stopped reports whether Stop has been called.
func (c *StopControl) Stopped() bool { return c.state.Load() == stateStopped }

// Stop lets a voice be paused or ended independently of its inner signal.
// Scenes wrap every voice in one.
type Stop[F frame.Frame[F]] struct {
	inner   Signal[F]
	control StopControl
}

// NewStop wraps inner in the playing state.
func NewStop[F frame.Frame[F]](inner Signal[F]) *Stop[F] {
	return &Stop[F]{inner: inner}
}

// Sample renders silence while paused or stopped.
func (s *Stop[F]) Sample(ctx Context, out []F) {
	if s.control.state.Load() != statePlaying {
		frame.Silence(out)
		return
	}

	s.inner.Sample(ctx, out)
}

// Exhausted reports true once stopped, or once the inner signal ends while
// playing. A paused voice is never exhausted.
func (s *Stop[F]) Exhausted() bool {
	switch s.control.state.Load() {
	case stateStopped:
		return true
	case statePaused:
		return false
	default:
		return s.inner.Exhausted()
	}
}

// Paused reports whether the control is paused.
func (s *Stop[F]) Paused() bool { return s.control.Paused() }

// Unwrap returns the wrapped signal.
func (s *Stop[F]) Unwrap() any { return s.inner }

// Control returns the handle used to pause or stop the voice.
func (s *Stop[F]) Control() *StopControl { return &s.control }
