// SPDX-License-Identifier: EPL-2.0

package frame

// Interleave writes src into dst as L,R,L,R... and returns the number of
// float32 values written. dst must hold at least 2*len(src) values; extra
// frames that do not fit are dropped.
func Interleave(dst []float32, src []Stereo) int {
	n := min(len(src), len(dst)/2)
	for i := range n {
		dst[2*i] = src[i][0]
		dst[2*i+1] = src[i][1]
	}
	return n * 2
}

// Deinterleave is the inverse of Interleave and returns the number of frames
// written to dst.
func Deinterleave(dst []Stereo, src []float32) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		dst[i] = Stereo{src[2*i], src[2*i+1]}
	}
	return n
}

// ToInt16 converts a sample in [-1, 1] to 16-bit PCM, clamping out of range
// input.
func ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return 32767
	case x <= -1:
		return -32768
	}
	return int16(x * 32767)
}

// Cubic is a Catmull-Rom interpolation between y1 and y2; x is the
// fractional position in [0, 1] and y0, y3 are the outer neighbours.
func Cubic(y0, y1, y2, y3, x float32) float32 {
	a := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := -0.5*y0 + 0.5*y2

	return ((a*x+b)*x+c)*x + y1
}
