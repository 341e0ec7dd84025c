// SPDX-License-Identifier: EPL-2.0

// Package audmix is a real-time audio mixing and 3D spatialization engine
// that performs no I/O of its own.
//
// The engine is split into a control side and a render side. Control code
// starts, stops and moves voices through a Handle from any goroutine. A
// single render goroutine pulls audio from the matching scene, which never
// blocks, allocates or logs. The host supplies the audio device, or a file
// writer as Render does here.
//
// # Packages
//
//   - frame: Mono and Stereo frames and buffer helpers
//   - signal: the Signal interface and its building blocks (playback,
//     gain, pan, pause/stop, speed, crossfades, synthesis)
//   - cell: the lock-free triple buffer that carries control updates
//   - slot: the voice table shared by both sides
//   - mixer: a plain mixing scene for mono or stereo voices
//   - spatial: a scene that places mono voices in 3D space around a
//     stereo listener, with propagation delay and Doppler shift
//   - audio, formats/...: decoding and resampling of sound files
//
// # Quick start
//
//	samples, err := audmix.LoadFile("engine.wav", 44100)
//	if err != nil {
//	    return err
//	}
//
//	handle, scene, err := spatial.New(spatial.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	opts := spatial.DefaultOptions()
//	opts.Position = spatial.Vec3{X: -20, Z: -5}
//	opts.Velocity = spatial.Vec3{X: 10}
//	voice, _ := handle.Play(signal.NewCycle(samples), opts)
//
//	// On the audio thread:
//	scene.Render(44100, out)
//
// Render drives a scene offline and writes the result through a
// StereoWriter such as wav.Encoder.
package audmix
