// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/signal"
	"github.com/ik5/audmix/slot"
)

type voice[F frame.Frame[F]] struct {
	stop *signal.Stop[F]
}

// Mixer is the render side of a mixing scene. It sums every playing voice
// into the output buffer. All of its methods must be called from a single
// render goroutine.
type Mixer[F frame.Frame[F]] struct {
	table   *slot.Table[*voice[F]]
	scratch []F
}

// New builds a mixing scene and returns its control and render halves.
func New[F frame.Frame[F]](cfg Config) (*Handle[F], *Mixer[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	table, err := slot.New[*voice[F]](cfg.slots())
	if err != nil {
		return nil, nil, err
	}

	h := &Handle[F]{
		table:  table,
		logger: cfg.logger(),
	}
	m := &Mixer[F]{
		table:   table,
		scratch: make([]F, cfg.BlockFrames),
	}

	return h, m, nil
}

// Render fills out with the mix of all voices at rate Hz. Frames with no
// voice playing are silent.
func (m *Mixer[F]) Render(rate int, out []F) {
	m.Sample(signal.NewContext(rate), out)
}

// Sample implements signal.Signal so a mixer can itself be played. An empty
// buffer renders nothing and leaves every voice as it was.
func (m *Mixer[F]) Sample(ctx signal.Context, out []F) {
	if len(out) == 0 {
		return
	}

	m.table.Sync()
	frame.Silence(out)

	for i := 0; i < m.table.Len(); {
		v := m.table.Active(i)

		if !v.stop.Exhausted() && !v.stop.Paused() {
			m.mix(ctx, v, out)
		}

		if v.stop.Exhausted() {
			m.table.Retire(i)
			continue
		}
		i++
	}
}

func (m *Mixer[F]) mix(ctx signal.Context, v *voice[F], out []F) {
	for len(out) > 0 {
		n := min(len(out), len(m.scratch))
		buf := m.scratch[:n]
		v.stop.Sample(ctx, buf)
		frame.MixInto(out[:n], buf)
		out = out[n:]
	}
}

// Exhausted always reports false; a mixer plays until dropped.
func (m *Mixer[F]) Exhausted() bool { return false }

// Voices returns the number of voices in the current block.
func (m *Mixer[F]) Voices() int { return m.table.Len() }
