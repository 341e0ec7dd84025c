// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/signal"
)

// ErrInvalidRender is returned for render options that cannot produce audio.
var ErrInvalidRender = errors.New("invalid render options")

// StereoWriter receives rendered blocks. wav.Encoder implements it.
type StereoWriter interface {
	WriteStereo(frames []frame.Stereo) error
}

// RenderOptions controls an offline render.
type RenderOptions struct {
	Rate     int
	Block    int           // frames per block
	Duration time.Duration // zero renders until the signal is exhausted

	// Progress, when set, receives the rendered time after every block.
	// The send blocks, so a receiver can publish control changes that the
	// next block is guaranteed to observe.
	Progress chan<- time.Duration
}

// DefaultRenderOptions renders at 44.1 kHz in 512-frame blocks until the
// signal is exhausted.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Rate: 44100, Block: 512}
}

// Render pulls blocks from sig and writes them to w until the duration is
// reached, sig is exhausted or ctx is cancelled. It returns the number of
// frames written.
func Render(ctx context.Context, sig signal.Signal[frame.Stereo], w StereoWriter, opts RenderOptions) (int, error) {
	if opts.Rate <= 0 || opts.Block <= 0 || opts.Duration < 0 {
		return 0, fmt.Errorf("%w: rate %d, block %d, duration %s",
			ErrInvalidRender, opts.Rate, opts.Block, opts.Duration)
	}

	limit := -1
	if opts.Duration > 0 {
		limit = int(opts.Duration.Seconds() * float64(opts.Rate))
	}

	sctx := signal.NewContext(opts.Rate)
	buf := make([]frame.Stereo, opts.Block)
	written := 0

	for limit < 0 || written < limit {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if limit < 0 && sig.Exhausted() {
			break
		}

		n := opts.Block
		if limit >= 0 {
			n = min(n, limit-written)
		}

		sig.Sample(sctx, buf[:n])
		if err := w.WriteStereo(buf[:n]); err != nil {
			return written, fmt.Errorf("render: %w", err)
		}
		written += n

		if opts.Progress != nil {
			at := time.Duration(float64(written) / float64(opts.Rate) * float64(time.Second))
			select {
			case opts.Progress <- at:
			case <-ctx.Done():
				return written, ctx.Err()
			}
		}
	}

	return written, nil
}
