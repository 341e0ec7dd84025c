// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer PCM decoders of go-audio to audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

const bufSize = 4096

// Reader is the part of a go-audio decoder that yields PCM data.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM to float32 samples in [-1, 1].
type Source struct {
	dec      Reader
	format   *goaudio.Format
	scale    float32
	offset   int
	intBuf   *goaudio.IntBuffer
	finished bool
}

// NewSource reads bitDepth-bit samples from dec. Unsigned sources, such as
// 8-bit WAV, are centred on zero first.
func NewSource(dec Reader, format *goaudio.Format, bitDepth int, unsigned bool) *Source {
	s := &Source{
		dec:    dec,
		format: format,
		scale:  1 / float32(int64(1)<<(bitDepth-1)),
	}
	if unsigned {
		s.offset = 1 << (bitDepth - 1)
	}

	return s
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data) / max(s.format.NumChannels, 1)
	}
	return bufSize
}

// Close does nothing; the caller owns the underlying reader.
func (s *Source) Close() error { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.finished {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.format,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.offset) * s.scale
	}

	switch {
	case err != nil && !errors.Is(err, io.EOF):
		return n, fmt.Errorf("pcm: %w", err)
	case n < len(dst) || err != nil:
		s.finished = true
		return n, io.EOF
	}

	return n, nil
}

// Seekable returns r as an io.ReadSeeker, reading it into memory when it
// cannot seek.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
