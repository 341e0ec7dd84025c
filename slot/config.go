// SPDX-License-Identifier: EPL-2.0

package slot

import (
	"fmt"
	"io"
	"log/slog"
)

// Config sizes a Table.
type Config struct {
	// Capacity is the number of slots allocated up front and the size of
	// every chunk added when the table grows.
	Capacity int
	// MaxVoices bounds the number of simultaneously live voices.
	MaxVoices int
	// Logger receives control-side events. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns 128 initial slots growing to at most 4096.
func DefaultConfig() Config {
	return Config{
		Capacity:  128,
		MaxVoices: 4096,
	}
}

// Validate reports whether the limits are usable.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity %d", ErrInvalidConfig, c.Capacity)
	}
	if c.MaxVoices < c.Capacity {
		return fmt.Errorf("%w: max voices %d below capacity %d",
			ErrInvalidConfig, c.MaxVoices, c.Capacity)
	}

	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
