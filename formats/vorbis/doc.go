// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with
// github.com/jfreymuth/oggvorbis.
//
// Samples are interleaved float32 at the stream's rate and channel count:
//
//	file, _ := os.Open("rain.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
package vorbis
