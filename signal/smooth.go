// SPDX-License-Identifier: EPL-2.0

package signal

// rampSeconds is how long gain and pan changes take to settle.
const rampSeconds = 0.1

// Smoothed ramps a parameter linearly from its previous value to a target.
type Smoothed struct {
	prev     float32
	next     float32
	progress float32
}

// NewSmoothed returns a ramp resting at v.
func NewSmoothed(v float32) Smoothed {
	return Smoothed{prev: v, next: v, progress: 1}
}

// Get returns the current value.
func (s *Smoothed) Get() float32 {
	return s.prev + s.progress*(s.next-s.prev)
}

// Target returns the value being approached.
func (s *Smoothed) Target() float32 {
	return s.next
}

// Set starts a new ramp from the current value towards v.
func (s *Smoothed) Set(v float32) {
	s.prev = s.Get()
	s.next = v
	s.progress = 0
}

// Advance moves the ramp forward by p, a fraction of its full length.
func (s *Smoothed) Advance(p float32) {
	s.progress = min(s.progress+p, 1)
}

// Done reports whether the target has been reached.
func (s *Smoothed) Done() bool {
	return s.progress >= 1
}
