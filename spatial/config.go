// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audmix/slot"
)

// DelayPolicy decides what a voice sounds like once its propagation delay
// exceeds what its delay line can hold, that is beyond Options.MaxDistance.
type DelayPolicy int

const (
	// CapDistance plays the source as if it were at MaxDistance in time,
	// while its loudness still follows the true distance.
	CapDistance DelayPolicy = iota
	// MuteBeyond silences an ear whose delay exceeds the line.
	MuteBeyond
)

// String returns the policy's lower-case name.
func (p DelayPolicy) String() string {
	switch p {
	case CapDistance:
		return "cap-distance"
	case MuteBeyond:
		return "mute-beyond"
	default:
		return fmt.Sprintf("DelayPolicy(%d)", int(p))
	}
}

// Config sizes a spatial scene.
type Config struct {
	Capacity  int
	MaxVoices int
	// PropagationSpeed of sound in metres per second.
	PropagationSpeed float64
	// MaxBlock is the longest stretch in seconds rendered in one pass.
	// Longer renders are split. Every delay line has this much headroom.
	MaxBlock    float64
	DelayPolicy DelayPolicy
	// Logger receives control-side events. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used by New when none is given.
func DefaultConfig() Config {
	return Config{
		Capacity:         128,
		MaxVoices:        4096,
		PropagationSpeed: SpeedOfSound,
		MaxBlock:         0.1,
		DelayPolicy:      CapDistance,
	}
}

// Validate reports the first field that is out of range.
func (c Config) Validate() error {
	if err := c.slots().Validate(); err != nil {
		return err
	}
	if c.PropagationSpeed <= 0 {
		return fmt.Errorf("%w: propagation speed %v", ErrInvalidConfig, c.PropagationSpeed)
	}
	if c.MaxBlock <= 0 {
		return fmt.Errorf("%w: max block %v", ErrInvalidConfig, c.MaxBlock)
	}
	if c.DelayPolicy != CapDistance && c.DelayPolicy != MuteBeyond {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.DelayPolicy)
	}

	return nil
}

func (c Config) slots() slot.Config {
	return slot.Config{
		Capacity:  c.Capacity,
		MaxVoices: c.MaxVoices,
		Logger:    c.logger(),
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Options describe a new spatial voice.
type Options struct {
	Position Vec3
	Velocity Vec3
	// Radius of the source in metres. Closer than this it is not louder.
	Radius float32
	// MaxDistance is the farthest distance in metres whose delay the
	// voice's delay line can represent.
	MaxDistance float64
	// Rate in Hz at which the source signal is sampled.
	Rate int
}

// DefaultOptions returns options for a stationary voice at the origin with a
// 10 cm radius, sampled at 44.1 kHz and audible up to 100 m.
func DefaultOptions() Options {
	return Options{
		Radius:      0.1,
		MaxDistance: 100,
		Rate:        44100,
	}
}

func (o Options) validate() error {
	if o.Radius <= 0 || o.MaxDistance <= 0 || o.Rate <= 0 {
		return fmt.Errorf("%w: radius %v, max distance %v, rate %d",
			ErrInvalidOptions, o.Radius, o.MaxDistance, o.Rate)
	}

	return nil
}

// Listener is the position and orientation of the ears.
type Listener struct {
	Position Vec3
	Velocity Vec3
	// Rotation turns the unrotated listener, facing -Z, to its actual
	// orientation. The zero value means no rotation.
	Rotation Quat
}
