// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadAll drains src and returns all of its interleaved samples. A source
// that ends without producing any sample yields ErrEmptySource.
func ReadAll(src Source) ([]float32, error) {
	buf := make([]float32, max(src.BufSize(), 1)*src.Channels())

	var out []float32
	for empty := 0; ; {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}

		if n > 0 {
			empty = 0
		} else if empty++; empty >= maxEmptyReads {
			return nil, io.ErrNoProgress
		}
	}

	if len(out) == 0 {
		return nil, ErrEmptySource
	}

	return out, nil
}

// Resample wraps src so it produces samples at rate, or returns src itself
// when it already does.
func Resample(src Source, rate int) Source {
	if src.SampleRate() == rate {
		return src
	}

	return NewResampler(src, rate)
}
