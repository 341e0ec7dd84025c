// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams with github.com/hajimehoshi/go-mp3.
//
// The decoder always produces interleaved stereo float32 samples in
// [-1, 1] at the stream's sample rate. Wrap the source in
// audio.NewMonoMixer for mono voices:
//
//	file, _ := os.Open("engine.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	mono := audio.NewMonoMixer(source)
package mp3
