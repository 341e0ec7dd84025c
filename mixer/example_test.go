// SPDX-License-Identifier: EPL-2.0

package mixer_test

import (
	"fmt"

	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/signal"
)

func Example() {
	handle, mix, err := mixer.New[frame.Mono](mixer.DefaultConfig())
	if err != nil {
		panic(err)
	}

	samples := signal.NewSamples(8, []frame.Mono{0.5, 0.5, 0.5, 0.5})
	if _, err := handle.Play(signal.NewPlayer(samples)); err != nil {
		panic(err)
	}
	if _, err := handle.Play(signal.NewConstant[frame.Mono](0.25)); err != nil {
		panic(err)
	}

	out := make([]frame.Mono, 6)
	mix.Render(8, out)

	fmt.Println(out)
	fmt.Println("voices:", mix.Voices())

	// Output:
	// [0.75 0.75 0.75 0.75 0.25 0.25]
	// voices: 1
}

func ExampleControlAs() {
	handle, mix, err := mixer.New[frame.Mono](mixer.DefaultConfig())
	if err != nil {
		panic(err)
	}

	voice, err := handle.Play(signal.NewGain[frame.Mono](signal.NewConstant[frame.Mono](1)))
	if err != nil {
		panic(err)
	}

	view, _ := handle.Control(voice)
	gain, _ := mixer.ControlAs[*signal.GainControl](view)
	gain.SetAmplitude(1)

	out := make([]frame.Mono, 2)
	mix.Render(44100, out)
	fmt.Println(out)

	// Output:
	// [1 1]
}
