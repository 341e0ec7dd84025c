// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/audiotest"
)

// Example_resampler demonstrates how to use the Resampler to change sample rates.
func Example_resampler() {
	// One second of a 440Hz tone at 44.1kHz.
	source := audiotest.Sine(44100, 1, 44100, 440.0)

	resampler := audio.NewResampler(source, 16000)

	fmt.Printf("Output sample rate: %d Hz\n", resampler.SampleRate())
	fmt.Printf("Channels: %d\n", resampler.Channels())

	buf := make([]float32, 4096)
	totalSamples := 0

	for {
		n, err := resampler.ReadSamples(buf)
		totalSamples += n

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	fmt.Printf("Total samples read: %d\n", totalSamples)
	// Output:
	// Output sample rate: 16000 Hz
	// Channels: 1
	// Total samples read: 16000
}

// Example_processingChain resamples stereo audio and folds it to mono
// before loading it in full.
func Example_processingChain() {
	source := audiotest.Sine(44100, 2, 44100, 440.0)

	mono := audio.NewMonoMixer(audio.Resample(source, 8000))

	samples, err := audio.ReadAll(mono)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("%d mono samples at %d Hz\n", len(samples), mono.SampleRate())
	// Output:
	// 8000 mono samples at 8000 Hz
}

// ExampleRegistry_Lookup picks a decoder from a file name.
func ExampleRegistry_Lookup() {
	registry := audio.NewRegistry()
	registry.Register("wav", nil, ".wav", ".wave")
	registry.Register("mp3", nil, ".mp3")

	_, format, ok := registry.Lookup("sounds/Engine.WAV")
	fmt.Println(format, ok)

	_, _, ok = registry.Lookup("sounds/engine.flac")
	fmt.Println(ok)

	fmt.Println(registry.Formats())
	// Output:
	// wav true
	// false
	// [mp3 wav]
}
