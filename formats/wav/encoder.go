// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audmix/frame"
)

// Encoder streams float32 samples to a 16-bit PCM WAV file. The header is
// completed by Close, so the destination must be seekable.
type Encoder struct {
	enc    *gowav.Encoder
	buf    *goaudio.IntBuffer
	frames int
}

// NewEncoder writes a 16-bit PCM WAV stream to w. Close must be called to
// finalize the header.
func NewEncoder(w io.WriteSeeker, sampleRate, channels int) (*Encoder, error) {
	if channels <= 0 {
		return nil, ErrChannelCount
	}

	return &Encoder{
		enc: gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// WriteSamples appends interleaved samples, clamped to [-1, 1].
func (e *Encoder) WriteSamples(samples []float32) error {
	if len(samples) == 0 {
		return nil
	}

	if cap(e.buf.Data) < len(samples) {
		e.buf.Data = make([]int, len(samples))
	}
	e.buf.Data = e.buf.Data[:len(samples)]
	for i, x := range samples {
		e.buf.Data[i] = int(frame.ToInt16(x))
	}

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("wav encode: %w", err)
	}
	e.frames += len(samples) / e.buf.Format.NumChannels

	return nil
}

// WriteStereo appends stereo frames. The encoder must have two channels.
func (e *Encoder) WriteStereo(frames []frame.Stereo) error {
	if e.buf.Format.NumChannels != 2 {
		return fmt.Errorf("%w: stereo frames into %d channels", ErrChannelCount, e.buf.Format.NumChannels)
	}

	var tmp [512]float32
	for len(frames) > 0 {
		n := frame.Interleave(tmp[:], frames)
		if err := e.WriteSamples(tmp[:2*n]); err != nil {
			return err
		}
		frames = frames[n:]
	}

	return nil
}

// Frames returns the number of frames written so far.
func (e *Encoder) Frames() int { return e.frames }

// Close finalises the header. It does not close the writer.
func (e *Encoder) Close() error {
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("wav encode: %w", err)
	}

	return nil
}

// WriteWAV16 writes a complete 16-bit PCM WAV holding interleaved samples.
// Unlike Encoder it needs no seeking, so w may be a pipe or buffer.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 {
		return ErrChannelCount
	}

	const bytesPerSample = 2
	dataSize := uint32(len(samples) * bytesPerSample)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*channels*bytesPerSample))
	binary.LittleEndian.PutUint16(header[32:34], uint16(channels*bytesPerSample))
	binary.LittleEndian.PutUint16(header[34:36], 16)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("wav header: %w", err)
	}

	const chunkSize = 8192
	buf := make([]byte, min(len(samples), chunkSize)*bytesPerSample)
	for len(samples) > 0 {
		chunk := samples[:min(len(samples), chunkSize)]
		b := buf[:len(chunk)*bytesPerSample]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(b[2*j:], uint16(s))
		}

		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("wav data: %w", err)
		}
		samples = samples[len(chunk):]
	}

	return nil
}
