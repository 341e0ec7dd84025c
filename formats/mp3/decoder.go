// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audmix/audio"
)

// go-mp3 always yields 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
	bufSize        = 4096
)

// mp3Reader is the part of gomp3.Decoder the source reads from.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec mp3Reader
	buf []byte

	// odd holds a sample split across two reads.
	odd      [1]byte
	hasOdd   bool
	finished bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return bufSize }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.finished {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	head := 0
	if s.hasOdd {
		s.buf[0] = s.odd[0]
		head, s.hasOdd = 1, false
	}

	n, err := s.dec.Read(s.buf[head:])
	n += head
	if n%bytesPerSample != 0 {
		n--
		s.odd[0], s.hasOdd = s.buf[n], true
	}

	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}

	switch {
	case errors.Is(err, io.EOF):
		s.finished = true
		return samples, io.EOF
	case err != nil:
		s.finished = true
		return samples, fmt.Errorf("mp3: %w", err)
	}

	return samples, nil
}

// Decoder reads MPEG-1/2 layer III streams. The output is always stereo;
// mono files are duplicated onto both channels.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return &source{dec: dec}, nil
}
