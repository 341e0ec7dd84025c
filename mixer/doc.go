// SPDX-License-Identifier: EPL-2.0

/*
Package mixer implements a mixing scene: a set of voices summed into one
output on a real-time render goroutine while another goroutine starts, stops
and adjusts them.

New returns the two halves of a scene. The Handle belongs to control code
and may block, allocate and log. The Mixer belongs to the audio callback; its
Render method never blocks, allocates, logs or waits for the Handle:

	handle, mix, err := mixer.New[frame.Stereo](mixer.DefaultConfig())
	if err != nil {
	    return err
	}

	// audio callback
	mix.Render(48000, out)

	// game logic
	voice, err := handle.Play(signal.NewPlayer(samples))
	if errors.Is(err, mixer.ErrCapacityExceeded) {
	    // scene full; already playing voices are unaffected
	}
	handle.Stop(voice)

Voices that finish on their own or are stopped are retired by the render
goroutine at the end of the block. Their memory is released on the control
side the next time Play or Collect runs. Operations on a Voice that has
already ended do nothing.
*/
package mixer
