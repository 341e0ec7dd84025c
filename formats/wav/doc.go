// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// Decoding uses github.com/go-audio/wav and accepts integer PCM at 8, 16,
// 24 or 32 bits, with any channel count and sample rate. Samples come out
// as interleaved float32 in [-1, 1]:
//
//	file, _ := os.Open("voice.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	samples, err := audio.ReadAll(source)
//
// Non-seekable readers are buffered in memory first.
//
// # Writing
//
// Encoder streams float32 samples or stereo frames into a 16-bit file and
// needs an io.WriteSeeker to patch the header on Close:
//
//	enc, _ := wav.NewEncoder(file, 44100, 2)
//	_ = enc.WriteStereo(frames)
//	_ = enc.Close()
//
// WriteWAV16 writes an already complete int16 buffer in one go and works
// on any io.Writer.
package wav
