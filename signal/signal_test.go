// SPDX-License-Identifier: EPL-2.0

package signal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/signal"
)

func monoSamples(rate int, xs ...float32) *signal.Samples[frame.Mono] {
	frames := make([]frame.Mono, len(xs))
	for i, x := range xs {
		frames[i] = frame.Mono(x)
	}

	return signal.NewSamples(rate, frames)
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := signal.NewContext(100)
	assert.InDelta(t, 0.01, ctx.Interval(), 1e-12)
	assert.InDelta(t, 0.02, ctx.Scaled(2).Interval(), 1e-12)
	assert.Equal(t, 1.0, ctx.Speed, "Scaled must not modify the receiver")
	assert.Equal(t, 1.0, signal.NewContext(44100).Step(44100), "equal rates step exactly")
	assert.Equal(t, 0.5, ctx.Step(50))
}

func TestSamples(t *testing.T) {
	t.Parallel()

	src := []frame.Mono{1, 2, 3}
	s := signal.NewSamples(10, src)
	src[0] = 42

	assert.Equal(t, frame.Mono(1), s.At(0), "buffer is copied")
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 10, s.Rate())
	assert.InDelta(t, 0.3, s.Duration().Seconds(), 1e-9)

	tests := []struct {
		pos  float64
		want frame.Mono
	}{
		{0, 1},
		{0.5, 1.5},
		{1.25, 2.25},
		{2, 3},
		{2.5, 1.5}, // fading out past the end
		{3, 0},
		{-0.5, 0.5}, // fading in before the start
		{-2, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, float64(tt.want), float64(s.Interpolate(tt.pos)), 1e-6, "pos %v", tt.pos)
	}
}

func TestPlayer_ExhaustedAfterExactlyKFrames(t *testing.T) {
	t.Parallel()

	const (
		rate = 44100
		k    = 4410
	)

	p := signal.NewPlayer(signal.NewSamples(rate, make([]frame.Stereo, k)))
	ctx := signal.NewContext(rate)
	buf := make([]frame.Stereo, 441)

	for range k/len(buf) - 1 {
		p.Sample(ctx, buf)
		require.False(t, p.Exhausted())
	}

	p.Sample(ctx, buf[:len(buf)-1])
	assert.False(t, p.Exhausted(), "one frame left")

	p.Sample(ctx, buf[:1])
	assert.True(t, p.Exhausted(), "exhausted after 0.1s")
	assert.InDelta(t, 0.1, p.Control().Position(), 1e-9)
}

func TestPlayer_Resamples(t *testing.T) {
	t.Parallel()

	p := signal.NewPlayer(monoSamples(10, 0, 2, 4, 6))
	out := make([]frame.Mono, 6)

	// Rendering at twice the native rate halves the step.
	p.Sample(signal.NewContext(20), out)

	assert.Equal(t, []frame.Mono{0, 1, 2, 3, 4, 5}, out)
	assert.False(t, p.Exhausted())
}

func TestPlayer_NegativeStartDelays(t *testing.T) {
	t.Parallel()

	p := signal.NewPlayerAt(monoSamples(1, 5, 5), -2)
	assert.InDelta(t, -2, p.Control().Position(), 1e-9)

	out := make([]frame.Mono, 4)
	p.Sample(signal.NewContext(1), out)

	assert.Equal(t, []frame.Mono{0, 0, 5, 5}, out)
	assert.True(t, p.Exhausted())
}

func TestCycle_Wraps(t *testing.T) {
	t.Parallel()

	ctx := signal.NewContext(1)

	c := signal.NewCycle(monoSamples(1, 1, 2, 3))
	out := make([]frame.Mono, 5)
	c.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{1, 2, 3, 1, 2}, out)

	split := signal.NewCycle(monoSamples(1, 1, 2, 3))
	split.Sample(ctx, out[:2])
	split.Sample(ctx, out[2:])
	assert.Equal(t, []frame.Mono{1, 2, 3, 1, 2}, out)
	assert.False(t, split.Exhausted())
}

func TestCycleCrossfade(t *testing.T) {
	t.Parallel()

	frames := []frame.Mono{0, 0, 0, 0, 0, 1, 1, 1, 1}
	c := signal.NewCycleCrossfade(4, 1, frames)

	out := make([]frame.Mono, 5)
	c.Sample(signal.NewContext(1), out)

	for i, x := range out {
		want := float64(5-(i+1)) / 5
		assert.InDelta(t, want, float64(x), 1e-3, "frame %d", i)
	}
	assert.Equal(t, frame.Mono(0), frames[0], "input untouched")
}

func TestCycle_NegativeSpeedLoopsBackwards(t *testing.T) {
	t.Parallel()

	ctx := signal.NewContext(1)
	out := make([]frame.Mono, 5)

	s := signal.NewSpeed[frame.Mono](signal.NewCycle(monoSamples(1, 1, 2, 3)))
	s.Control().SetSpeed(-1)
	require.NotPanics(t, func() { s.Sample(ctx, out) })
	assert.Equal(t, []frame.Mono{1, 3, 2, 1, 3}, out)

	half := signal.NewSpeed[frame.Mono](signal.NewCycle(monoSamples(1, 1, 2, 3)))
	half.Control().SetSpeed(-0.5)
	half.Sample(ctx, out)
	assert.InDeltaSlice(t, []float64{1, 2, 3, 2.5, 2}, toFloat64(out), 1e-6, "seam interpolates across the wrap")
	assert.False(t, half.Exhausted())
}

func TestCycle_NonFiniteSpeedRestarts(t *testing.T) {
	t.Parallel()

	s := signal.NewSpeed[frame.Mono](signal.NewCycle(monoSamples(1, 1, 2, 3)))
	s.Control().SetSpeed(float32(math.Inf(1)))

	out := make([]frame.Mono, 3)
	require.NotPanics(t, func() { s.Sample(signal.NewContext(1), out) })
	assert.Equal(t, []frame.Mono{1, 1, 1}, out)
}

func TestCycleCrossfade_DegenerateInput(t *testing.T) {
	t.Parallel()

	ctx := signal.NewContext(44100)
	out := []frame.Mono{9, 9, 9}

	var empty *signal.Cycle[frame.Mono]
	require.NotPanics(t, func() { empty = signal.NewCycleCrossfade[frame.Mono](0.1, 44100, nil) })
	empty.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{0, 0, 0}, out)
	assert.False(t, empty.Exhausted())

	var neg *signal.Cycle[frame.Mono]
	require.NotPanics(t, func() { neg = signal.NewCycleCrossfade(-1, 1, []frame.Mono{1, 2, 3}) })
	out = make([]frame.Mono, 4)
	neg.Sample(signal.NewContext(1), out)
	assert.Equal(t, []frame.Mono{1, 2, 3, 1}, out, "negative fade loops frames unchanged")
}

func TestStream_PartialWritesAndUnderrun(t *testing.T) {
	t.Parallel()

	ctx := signal.NewContext(1)
	s := signal.NewStream[frame.Mono](1, 4)
	w := s.Control()

	assert.Equal(t, 2, w.Write([]frame.Mono{1, 2}))
	assert.Equal(t, 2, w.Write([]frame.Mono{3, 4, 5}), "accepts only what fits")
	assert.Zero(t, w.Write([]frame.Mono{5}), "full queue")
	assert.Zero(t, w.Free())

	out := make([]frame.Mono, 6)
	s.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{1, 2, 3, 4, 0, 0}, out, "underrun renders silence")
	assert.Equal(t, 4, w.Free())

	assert.Equal(t, 4, w.Write([]frame.Mono{5, 6, 7, 8, 9}))

	out = make([]frame.Mono, 1)
	s.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{5}, out)

	out = make([]frame.Mono, 4)
	s.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{6, 7, 8, 0}, out)

	out = make([]frame.Mono, 2)
	s.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{0, 0}, out)
	assert.False(t, s.Exhausted(), "open streams never end")
}

func TestStream_Resamples(t *testing.T) {
	t.Parallel()

	s := signal.NewStream[frame.Mono](10, 8)
	s.Control().Write([]frame.Mono{0, 2, 4, 6})

	out := make([]frame.Mono, 3)
	s.Sample(signal.NewContext(20), out)
	assert.InDeltaSlice(t, []float64{0, 1, 2}, toFloat64(out), 1e-6)

	// Half a frame is carried into the next block.
	s.Sample(signal.NewContext(20), out)
	assert.InDeltaSlice(t, []float64{3, 4, 5}, toFloat64(out), 1e-6)
}

func TestStream_CloseThenDrain(t *testing.T) {
	t.Parallel()

	ctx := signal.NewContext(1)
	s := signal.NewStream[frame.Stereo](1, 4)
	w := s.Control()

	require.Equal(t, 2, w.Write([]frame.Stereo{{1, 1}, {2, 2}}))
	w.Close()
	assert.True(t, w.Closed())
	assert.Zero(t, w.Write([]frame.Stereo{{3, 3}}), "closed streams reject writes")
	assert.False(t, s.Exhausted(), "queued frames still play")

	out := make([]frame.Stereo, 1)
	s.Sample(ctx, out)
	assert.Equal(t, frame.Stereo{1, 1}, out[0])
	assert.False(t, s.Exhausted())

	s.Sample(ctx, out)
	assert.Equal(t, frame.Stereo{2, 2}, out[0])
	assert.True(t, s.Exhausted())

	s.Sample(ctx, out)
	assert.Equal(t, frame.Stereo{}, out[0])
	assert.True(t, s.Exhausted(), "stays exhausted")
}

func TestStream_ConcurrentWriter(t *testing.T) {
	t.Parallel()

	const total = 20000

	s := signal.NewStream[frame.Mono](1, 64)
	w := s.Control()

	done := make(chan struct{})
	go func() {
		defer close(done)

		buf := make([]frame.Mono, 16)
		for next := 0; next < total; {
			n := 0
			for n < len(buf) && next+n < total {
				buf[n] = frame.Mono(next + n + 1)
				n++
			}
			next += w.Write(buf[:n])
		}
		w.Close()
	}()

	ctx := signal.NewContext(1)
	out := make([]frame.Mono, 1)
	want := frame.Mono(1)
	for !s.Exhausted() {
		s.Sample(ctx, out)
		if out[0] == 0 {
			continue // underrun
		}
		require.Equal(t, want, out[0])
		want++
	}
	<-done

	assert.Equal(t, frame.Mono(total+1), want)
}

func TestGain_Smoothing(t *testing.T) {
	t.Parallel()

	g := signal.NewGain[frame.Mono](signal.NewConstant[frame.Mono](1))
	g.Control().SetAmplitude(5)

	// 40 Hz gives 25 ms per frame, a quarter of the ramp.
	ctx := signal.NewContext(40)
	out := make([]frame.Mono, 6)

	g.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{1, 2, 3, 4, 5, 5}, out)

	g.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{5, 5, 5, 5, 5, 5}, out)
}

func TestGainControl_Decibels(t *testing.T) {
	t.Parallel()

	g := signal.NewGain[frame.Mono](signal.NewConstant[frame.Mono](1))
	c := g.Control()

	c.SetGain(-6)
	assert.InDelta(t, 0.501, c.Amplitude(), 1e-3)
	assert.InDelta(t, -6, c.Gain(), 1e-4)

	c.SetAmplitude(1)
	assert.InDelta(t, 0, c.Gain(), 1e-6)
}

func TestFixedGain(t *testing.T) {
	t.Parallel()

	g := signal.NewFixedGain[frame.Stereo](signal.NewConstant(frame.Stereo{1, -1}), 20)
	out := make([]frame.Stereo, 2)
	g.Sample(signal.NewContext(10), out)

	assert.InDelta(t, 10, out[1][0], 1e-4)
	assert.InDelta(t, -10, out[1][1], 1e-4)
}

func TestPan(t *testing.T) {
	t.Parallel()

	p := signal.NewPan(signal.NewConstant(frame.Stereo{1, 1}))
	ctx := signal.NewContext(1000)
	out := make([]frame.Stereo, 200)

	p.Sample(ctx, out)
	assert.InDelta(t, math.Sqrt2/2, out[0][0], 1e-6, "centre is equal power")
	assert.InDelta(t, math.Sqrt2/2, out[0][1], 1e-6)

	p.Control().SetPan(-3)
	assert.Equal(t, float32(-1), p.Control().Pan(), "clamped")

	p.Sample(ctx, out)
	assert.Greater(t, out[50][0], out[0][0], "left rises during the ramp")
	assert.Less(t, out[50][1], out[0][1], "right falls during the ramp")
	assert.InDelta(t, 1, out[199][0], 1e-6)
	assert.InDelta(t, 0, out[199][1], 1e-6)
}

func TestStop(t *testing.T) {
	t.Parallel()

	s := signal.NewStop[frame.Mono](&audiotest.Counter{Limit: 4})
	c := s.Control()
	ctx := signal.NewContext(1)
	out := make([]frame.Mono, 2)

	c.Pause()
	assert.True(t, s.Paused())
	s.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{0, 0}, out, "paused renders silence")
	assert.False(t, s.Exhausted())

	c.Resume()
	s.Sample(ctx, out)
	assert.Equal(t, []frame.Mono{0, 1}, out, "inner did not advance while paused")
	assert.False(t, s.Exhausted())

	c.Stop()
	assert.True(t, s.Exhausted())
	assert.True(t, c.Stopped())

	c.Resume()
	assert.True(t, c.Stopped(), "stop is final")
}

func TestStop_PausedHidesInnerExhaustion(t *testing.T) {
	t.Parallel()

	s := signal.NewStop[frame.Mono](audiotest.Finished[frame.Mono]{})
	assert.True(t, s.Exhausted())

	s.Control().Pause()
	assert.False(t, s.Exhausted())
}

func TestSpeed(t *testing.T) {
	t.Parallel()

	clock := &audiotest.Clock{}
	s := signal.NewSpeed[frame.Mono](clock)
	s.Control().SetSpeed(2)

	out := make([]frame.Mono, 3)
	s.Sample(signal.NewContext(10), out)

	assert.InDeltaSlice(t, []float64{0, 0.2, 0.4}, toFloat64(out), 1e-6)
	assert.Equal(t, float32(2), s.Control().Speed())
}

func TestFader(t *testing.T) {
	t.Parallel()

	f := signal.NewFader[frame.Mono](signal.NewConstant[frame.Mono](1))
	ctx := signal.NewContext(10)
	out := make([]frame.Mono, 12)

	f.Sample(ctx, out)
	for _, x := range out {
		require.Equal(t, frame.Mono(1), x)
	}

	f.Control().FadeTo(signal.NewConstant[frame.Mono](0), 1)
	f.Sample(ctx, out)

	assert.Equal(t, frame.Mono(1), out[0])
	assert.InDelta(t, math.Sqrt(0.5), float64(out[5]), 1e-6)
	assert.Equal(t, frame.Mono(0), out[11])

	f.Sample(ctx, out)
	assert.Equal(t, frame.Mono(0), out[0], "new signal took over")
	assert.False(t, f.Exhausted())
}

func TestMonoToStereo(t *testing.T) {
	t.Parallel()

	m := signal.NewMonoToStereo(&audiotest.Counter{})
	out := make([]frame.Stereo, 300)
	m.Sample(signal.NewContext(1), out)

	assert.Equal(t, frame.Stereo{0, 0}, out[0])
	assert.Equal(t, frame.Stereo{3, 3}, out[3])
	assert.Equal(t, frame.Stereo{299, 299}, out[299], "spans more than one chunk")
}

func TestDownmix(t *testing.T) {
	t.Parallel()

	d := signal.NewDownmix[frame.Stereo](signal.NewConstant(frame.Stereo{1, 2}))
	out := make([]frame.Mono, 384)
	d.Sample(signal.NewContext(1), out)

	for _, x := range out {
		require.Equal(t, frame.Mono(3), x)
	}
}

func TestSine(t *testing.T) {
	t.Parallel()

	s := signal.NewSine(0, 1)
	out := make([]frame.Mono, 4)
	s.Sample(signal.NewContext(4), out)

	assert.InDeltaSlice(t, []float64{0, 1, 0, -1}, toFloat64(out), 1e-6)

	s.Sample(signal.NewContext(4), out[:1])
	assert.InDelta(t, 0, float64(out[0]), 1e-6, "phase carries over")
}

func TestFunc(t *testing.T) {
	t.Parallel()

	calls := 0
	f := signal.Func[frame.Mono](func(_ signal.Context, out []frame.Mono) {
		calls++
		frame.Silence(out)
	})

	f.Sample(signal.NewContext(1), make([]frame.Mono, 1))
	assert.Equal(t, 1, calls)
	assert.False(t, f.Exhausted())
}

func TestControlOf_ReachesThroughWrappers(t *testing.T) {
	t.Parallel()

	player := signal.NewPlayer(monoSamples(1, 1, 2, 3))
	speed := signal.NewSpeed[frame.Mono](player)
	gain := signal.NewGain[frame.Mono](speed)
	stop := signal.NewStop[frame.Mono](gain)

	sc, ok := signal.ControlOf[*signal.SpeedControl](stop)
	require.True(t, ok)
	assert.Same(t, speed.Control(), sc)

	pc, ok := signal.ControlOf[*signal.PlayerControl](stop)
	require.True(t, ok)
	assert.Same(t, player.Control(), pc)

	gc, ok := signal.ControlOf[*signal.GainControl](stop)
	require.True(t, ok)
	assert.Same(t, gain.Control(), gc)

	_, ok = signal.ControlOf[*signal.PanControl](stop)
	assert.False(t, ok)

	_, ok = signal.ControlOf[*signal.GainControl](nil)
	assert.False(t, ok)

	stream := signal.NewStream[frame.Mono](44100, 16)
	wc, ok := signal.ControlOf[*signal.StreamControl[frame.Mono]](signal.NewGain[frame.Mono](stream))
	require.True(t, ok)
	assert.Same(t, stream.Control(), wc)
}

func TestSignals_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	samples := audiotest.Tone(44100, 44100, 440)
	fader := signal.NewFader[frame.Mono](signal.NewCycle(samples))
	mono := signal.NewStop[frame.Mono](signal.NewGain[frame.Mono](signal.NewSpeed[frame.Mono](fader)))
	stereo := signal.NewPan(signal.NewMonoToStereo(signal.NewPlayer(samples)))
	stream := signal.NewStream[frame.Mono](44100, 1024)

	ctx := signal.NewContext(48000)
	monoBuf := make([]frame.Mono, 512)
	stereoBuf := make([]frame.Stereo, 512)

	fader.Control().FadeTo(signal.NewSine(0, 220), 0.05)

	allocs := testing.AllocsPerRun(100, func() {
		mono.Sample(ctx, monoBuf)
		stereo.Sample(ctx, stereoBuf)
		stream.Control().Write(monoBuf)
		stream.Sample(ctx, monoBuf)
	})

	assert.Zero(t, allocs)
}

func toFloat64(xs []frame.Mono) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}

	return out
}

func BenchmarkPlayer(b *testing.B) {
	p := signal.NewCycle(audiotest.Tone(44100, 44100, 440))
	ctx := signal.NewContext(48000)
	buf := make([]frame.Mono, 1024)

	b.ReportAllocs()

	for b.Loop() {
		p.Sample(ctx, buf)
	}
}
