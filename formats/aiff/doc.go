// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files through
// github.com/go-audio/aiff.
//
// Signed integer PCM at 8, 16, 24 or 32 bits is supported, for any channel
// count and sample rate. Samples come out interleaved as float32 in
// [-1, 1]:
//
//	file, _ := os.Open("loop.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//
// Readers that cannot seek are buffered in memory before decoding.
package aiff
