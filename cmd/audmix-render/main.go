// SPDX-License-Identifier: EPL-2.0

// Command audmix-render renders a sound moving past a listener into a
// stereo WAV file.
//
// Usage:
//
//	audmix-render [flags] <output.wav>
//
// Without -in a 440 Hz tone is used.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/signal"
	"github.com/ik5/audmix/spatial"
)

type options struct {
	in       string
	out      string
	path     string
	rate     int
	block    int
	duration time.Duration
	speed    float64
	distance float64
	verbose  bool
}

func parseFlags(args []string) (options, error) {
	var o options

	fs := flag.NewFlagSet("audmix-render", flag.ContinueOnError)
	fs.StringVar(&o.in, "in", "", "input sound `file` (wav, aiff, mp3, ogg)")
	fs.StringVar(&o.path, "path", "line", "source path: line or orbit")
	fs.IntVar(&o.rate, "rate", 44100, "output sample rate")
	fs.IntVar(&o.block, "block", 512, "frames rendered per block")
	fs.DurationVar(&o.duration, "duration", 6*time.Second, "length of the output")
	fs.Float64Var(&o.speed, "speed", 20, "source speed in m/s")
	fs.Float64Var(&o.distance, "distance", 5, "closest distance to the listener in m")
	fs.BoolVar(&o.verbose, "v", false, "log debug output")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		return o, errors.New("exactly one output file is required")
	}
	o.out = fs.Arg(0)

	switch {
	case o.path != "line" && o.path != "orbit":
		return o, fmt.Errorf("unknown path %q", o.path)
	case o.speed <= 0 || o.distance <= 0:
		return o, errors.New("speed and distance must be positive")
	}

	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "usage: audmix-render [flags] <output.wav>")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, logger); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, logger *slog.Logger) error {
	src, err := source(o)
	if err != nil {
		return err
	}

	cfg := spatial.DefaultConfig()
	cfg.Logger = logger
	handle, scene, err := spatial.New(cfg)
	if err != nil {
		return err
	}

	track := newPath(o)
	pos, vel := track.at(0)
	vopts := spatial.DefaultOptions()
	vopts.Position, vopts.Velocity, vopts.Rate = pos, vel, o.rate
	vopts.MaxDistance = max(vopts.MaxDistance, float64(pos.Len())*2)

	voice, err := handle.Play(src, vopts)
	if err != nil {
		return err
	}

	f, err := os.Create(o.out)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := wav.NewEncoder(f, o.rate, 2)
	if err != nil {
		return err
	}

	progress := make(chan time.Duration)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(progress)

		ropts := audmix.RenderOptions{
			Rate:     o.rate,
			Block:    o.block,
			Duration: o.duration,
			Progress: progress,
		}
		n, err := audmix.Render(gctx, scene, enc, ropts)
		logger.Debug("render finished", "frames", n)
		return err
	})

	g.Go(func() error {
		lead := time.Duration(float64(o.block) / float64(o.rate) * float64(time.Second))
		next := time.Second
		for at := range progress {
			pos, vel := track.at(at + lead)
			handle.SetMotion(voice, pos, vel, true)

			if at >= next {
				logger.Debug("rendering", "at", at, "position", pos)
				next += time.Second
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if err := enc.Close(); err != nil {
		return err
	}
	handle.Stop(voice)
	handle.Collect()

	logger.Info("wrote file", "path", o.out, "frames", enc.Frames(), "rate", o.rate)
	return f.Close()
}

func source(o options) (signal.Signal[frame.Mono], error) {
	if o.in == "" {
		return signal.NewSine(0, 440), nil
	}

	samples, err := audmix.LoadFile(o.in, o.rate)
	if err != nil {
		return nil, err
	}

	return signal.NewCycle(samples), nil
}
