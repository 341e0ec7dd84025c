// SPDX-License-Identifier: EPL-2.0

package frame

// Mono is a single-channel frame.
type Mono float32

// Stereo is a two-channel frame, left then right.
type Stereo [2]float32

// Frame is the set of channel layouts the engine mixes.
//
// Every method is a pure value operation so frames can be combined inside
// render loops without allocating.
type Frame[F any] interface {
	Mono | Stereo

	// Add returns the channel-wise sum of the receiver and o.
	Add(o F) F
	// Scale returns the receiver with every channel multiplied by g.
	Scale(g float32) F
	// Lerp interpolates from the receiver towards o by t in [0, 1].
	Lerp(o F, t float32) F
	// Channels reports the frame arity.
	Channels() int
	// Channel returns the sample for channel i.
	Channel(i int) float32
	// Sum returns the sum of all channels.
	Sum() float32
}

func (m Mono) Add(o Mono) Mono      { return m + o }
func (m Mono) Scale(g float32) Mono { return Mono(float32(m) * g) }
func (m Mono) Channels() int        { return 1 }
func (m Mono) Channel(int) float32  { return float32(m) }
func (m Mono) Sum() float32         { return float32(m) }
func (m Mono) Lerp(o Mono, t float32) Mono {
	return m + Mono(t)*(o-m)
}

func (s Stereo) Add(o Stereo) Stereo {
	return Stereo{s[0] + o[0], s[1] + o[1]}
}

func (s Stereo) Scale(g float32) Stereo {
	return Stereo{s[0] * g, s[1] * g}
}

func (s Stereo) Lerp(o Stereo, t float32) Stereo {
	return Stereo{
		s[0] + t*(o[0]-s[0]),
		s[1] + t*(o[1]-s[1]),
	}
}

func (s Stereo) Channels() int         { return 2 }
func (s Stereo) Channel(i int) float32 { return s[i] }
func (s Stereo) Sum() float32          { return s[0] + s[1] }

// Left returns the left channel.
func (s Stereo) Left() float32 { return s[0] }

// Right returns the right channel.
func (s Stereo) Right() float32 { return s[1] }

// Silence zeroes every frame in buf.
func Silence[F Frame[F]](buf []F) {
	var zero F
	for i := range buf {
		buf[i] = zero
	}
}

// MixInto adds src into dst frame by frame. Only min(len(dst), len(src))
// frames are touched.
func MixInto[F Frame[F]](dst, src []F) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = dst[i].Add(src[i])
	}
}

// ScaleInto multiplies every frame of buf by g in place.
func ScaleInto[F Frame[F]](buf []F, g float32) {
	for i := range buf {
		buf[i] = buf[i].Scale(g)
	}
}

// Lerp interpolates between a and b.
func Lerp[F Frame[F]](a, b F, t float32) F {
	return a.Lerp(b, t)
}
