// SPDX-License-Identifier: EPL-2.0

/*
Package signal defines the Signal interface and the built-in signals that
scenes mix.

A Signal fills caller-provided buffers with frames:

	type Signal[F frame.Frame[F]] interface {
	    Sample(ctx Context, out []F)
	    Exhausted() bool
	}

Sample runs on the render goroutine. Implementations must not block,
allocate or do unbounded work there; any buffers they need are allocated when
the signal is built.

# Playback

Decoded audio is wrapped once in an immutable Samples buffer and shared by
every voice that plays it:

	samples := signal.NewSamples(44100, frames)
	voice := signal.NewPlayer(samples)

Player resamples to the render rate with linear interpolation and is
exhausted after its last frame. Cycle loops forever.

Stream plays frames produced on another goroutine, such as a network feed.
The producer writes through its StreamControl without blocking and closes it
at the end; gaps render as silence:

	s := signal.NewStream[frame.Stereo](48000, 4096)
	n := s.Control().Write(decoded) // frames that did not fit are retried later

# Wrappers and controls

Wrappers such as Gain, Pan, Speed, Stop and Fader change what their inner
signal sounds like. Each exposes a control object, safe to use from the
control goroutine, through a Control method. ControlOf finds a control by its
type anywhere in a stack of wrappers:

	sig := signal.NewGain(signal.NewSpeed(signal.NewPlayer(samples)))
	speed, _ := signal.ControlOf[*signal.SpeedControl](sig)
	speed.SetSpeed(1.5)

Controls are lock-free; changes are picked up by the render goroutine at the
start of its next block. Gain and Pan ramp their changes over 100 ms.

# User-defined signals

Func turns a callback into a signal:

	noise := signal.Func[frame.Mono](func(ctx signal.Context, out []frame.Mono) {
	    for i := range out {
	        out[i] = frame.Mono(rng.Float32()*2 - 1)
	    }
	})
*/
package signal
