// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audmix/slot"
)

// Config sizes a mixer.
type Config struct {
	// Capacity is the number of voice slots allocated up front.
	Capacity int
	// MaxVoices bounds simultaneous voices; Play fails beyond it.
	MaxVoices int
	// BlockFrames is the size of the per-voice scratch buffer. Longer
	// renders are processed in pieces of this size.
	BlockFrames int
	// Logger receives control-side events. Nil discards them. The render
	// path never logs.
	Logger *slog.Logger
}

// DefaultConfig returns 128 slots growing to 4096 voices with 1024-frame
// scratch.
func DefaultConfig() Config {
	return Config{
		Capacity:    128,
		MaxVoices:   4096,
		BlockFrames: 1024,
	}
}

// Validate reports the first field that is out of range.
func (c Config) Validate() error {
	if err := c.slots().Validate(); err != nil {
		return err
	}
	if c.BlockFrames <= 0 {
		return fmt.Errorf("%w: block frames %d", ErrInvalidConfig, c.BlockFrames)
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
