// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/signal"
)

var defaultRegistry = sync.OnceValue(func() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{}, "wav", "wave")
	r.Register("aiff", aiff.Decoder{}, "aiff", "aif")
	r.Register("mp3", mp3.Decoder{}, "mp3")
	r.Register("vorbis", vorbis.Decoder{}, "ogg", "oga")

	return r
})

// Registry returns the registry of every decoder shipped with this module.
// It is shared, so registering more decoders affects LoadFile.
func Registry() *audio.Registry { return defaultRegistry() }

// LoadMono reads src to the end, averages its channels and returns the
// result as a playable buffer. A positive rate resamples to that rate;
// zero keeps the source rate. src is closed on return.
func LoadMono(src audio.Source, rate int) (*signal.Samples[frame.Mono], error) {
	defer src.Close()

	var pipe audio.Source = audio.NewMonoMixer(src)
	if rate > 0 {
		pipe = audio.Resample(pipe, rate)
	}

	samples, err := audio.ReadAll(pipe)
	if err != nil {
		return nil, fmt.Errorf("load mono: %w", err)
	}

	frames := make([]frame.Mono, len(samples))
	for i, x := range samples {
		frames[i] = frame.Mono(x)
	}

	return signal.NewSamples(pipe.SampleRate(), frames), nil
}

// LoadStereo is LoadMono for stereo buffers. Mono sources are copied to
// both channels; sources with more than two channels are rejected with
// audio.ErrChannelMismatch.
func LoadStereo(src audio.Source, rate int) (*signal.Samples[frame.Stereo], error) {
	defer src.Close()

	channels := src.Channels()
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("load stereo: %w: %d channels", audio.ErrChannelMismatch, channels)
	}

	var pipe audio.Source = src
	if rate > 0 {
		pipe = audio.Resample(pipe, rate)
	}

	samples, err := audio.ReadAll(pipe)
	if err != nil {
		return nil, fmt.Errorf("load stereo: %w", err)
	}

	var frames []frame.Stereo
	if channels == 1 {
		frames = make([]frame.Stereo, len(samples))
		for i, x := range samples {
			frames[i] = frame.Stereo{x, x}
		}
	} else {
		frames = make([]frame.Stereo, len(samples)/2)
		frame.Deinterleave(frames, samples)
	}

	return signal.NewSamples(pipe.SampleRate(), frames), nil
}

// LoadFile decodes the file at path, picking the decoder from its
// extension, and loads it with LoadMono.
func LoadFile(path string, rate int) (*signal.Samples[frame.Mono], error) {
	return loadFS(afero.NewOsFs(), path, rate)
}

func loadFS(fs afero.Fs, path string, rate int) (*signal.Samples[frame.Mono], error) {
	dec, _, ok := Registry().Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, audio.ErrUnknownFormat)
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s, err := LoadMono(src, rate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}
