// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding side of the engine: streams of PCM
// samples that are read once, converted, and loaded into sample buffers
// before anything is played.
//
// # Source Interface
//
// Every decoder and converter is a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1, 1]. ReadSamples returns
// io.EOF once the stream is finished, possibly together with its last
// samples.
//
// # Conversion
//
// The Resampler changes the sample rate using cubic interpolation, with a
// low-pass filter when downsampling. The MonoMixer averages channels:
//
//	mono := audio.NewMonoMixer(audio.Resample(src, 48000))
//	samples, err := audio.ReadAll(mono)
//
// # Format Registry
//
// A Registry maps format names and file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, ".wav", ".wave")
//	decoder, format, ok := registry.Lookup("intro.WAV")
//
// None of this runs on the render goroutine. Decode and convert ahead of
// time, then hand the result to the signal package.
package audio
