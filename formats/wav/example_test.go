// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/formats/wav"
)

// Example_roundTrip writes a WAV into memory and decodes it again.
func Example_roundTrip() {
	original := []int16{-1000, -500, 0, 500, 1000}

	var data bytes.Buffer
	if err := wav.WriteWAV16(&data, 8000, 1, original); err != nil {
		fmt.Println(err)
		return
	}

	source, err := wav.Decoder{}.Decode(&data)
	if err != nil {
		fmt.Println(err)
		return
	}

	buf := make([]float32, len(original))
	n, _ := source.ReadSamples(buf)

	recovered := make([]int16, n)
	for i := range n {
		recovered[i] = int16(buf[i] * 32768)
	}

	fmt.Printf("%d Hz, %d channel\n", source.SampleRate(), source.Channels())
	fmt.Println(recovered)
	// Output:
	// 8000 Hz, 1 channel
	// [-1000 -500 0 500 1000]
}

// Example_streamingRead reads a stereo file in fixed chunks.
func Example_streamingRead() {
	var data bytes.Buffer
	_ = wav.WriteWAV16(&data, 8000, 2, make([]int16, 10000))

	source, _ := wav.Decoder{}.Decode(&data)

	buf := make([]float32, 1000)
	chunks, total := 0, 0
	for {
		n, err := source.ReadSamples(buf)
		if n > 0 {
			chunks++
			total += n
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Println(err)
			}
			break
		}
	}

	fmt.Printf("read %d samples in %d chunks\n", total, chunks)
	// Output: read 10000 samples in 10 chunks
}

// Example_sampleConversion shows how 16-bit samples map onto [-1, 1].
func Example_sampleConversion() {
	samples := []int16{-32768, -16384, 0, 16384, 32767}

	var data bytes.Buffer
	_ = wav.WriteWAV16(&data, 8000, 1, samples)

	source, _ := wav.Decoder{}.Decode(&data)
	buf := make([]float32, len(samples))
	n, _ := source.ReadSamples(buf)

	for i := range n {
		fmt.Printf("%6d → %+.3f\n", samples[i], buf[i])
	}
	// Output:
	// -32768 → -1.000
	// -16384 → -0.500
	//      0 → +0.000
	//  16384 → +0.500
	//  32767 → +1.000
}

// Example_errorNotWAV shows the error for input that is not a WAV file.
func Example_errorNotWAV() {
	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("This is not a WAV file")))

	fmt.Println(errors.Is(err, wav.ErrNotWavFile))
	// Output: true
}
