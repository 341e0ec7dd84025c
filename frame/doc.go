// SPDX-License-Identifier: EPL-2.0

// Package frame defines the per-sample channel layouts mixed by the engine.
//
// A frame holds one sample per channel:
//
//	var m frame.Mono = 0.5
//	s := frame.Stereo{0.25, -0.25}
//
// Both layouts satisfy the generic Frame constraint, which lets signals and
// scenes be written once for any layout:
//
//	func mixAll[F frame.Frame[F]](dst []F, voices ...[]F) {
//	    frame.Silence(dst)
//	    for _, v := range voices {
//	        frame.MixInto(dst, v)
//	    }
//	}
//
// Samples are float32 values nominally in [-1, 1]. Mixing is unclamped; use
// ToInt16 when handing output to 16-bit sinks.
//
// Nothing in this package allocates.
package frame
