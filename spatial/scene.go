// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"math"

	"github.com/ik5/audmix/cell"
	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/signal"
	"github.com/ik5/audmix/slot"
)

var silence signal.Signal[frame.Mono] = signal.NewConstant[frame.Mono](0)

type voice struct {
	stop   *signal.Stop[frame.Mono]
	motion *cell.Cell[motion]
	radius float32
	ctx    signal.Context
	ring   *ring
	reach  float64 // longest delay in seconds the ring can represent
	track  track

	// finished is set once the signal is exhausted; the voice stays until
	// its last sound has reached the listener.
	finished    bool
	finishedFor float64
}

func newVoice(sig signal.Signal[frame.Mono], opts Options, cfg Config) *voice {
	reach := opts.MaxDistance / cfg.PropagationSpeed
	frames := int(math.Ceil((reach+cfg.MaxBlock)*float64(opts.Rate))) + 2

	return &voice{
		stop: signal.NewStop(sig),
		motion: cell.New(motion{
			position: opts.Position,
			velocity: opts.Velocity,
		}),
		radius: opts.Radius,
		ctx:    signal.NewContext(opts.Rate),
		ring:   newRing(frames),
		reach:  reach,
		track:  track{prev: opts.Position},
	}
}

type listenerState struct {
	motion
	inv Quat
}

// view is the listener's pose at the start and end of a block.
type view struct {
	prev, next       Vec3
	prevInv, nextInv Quat
}

func (w view) relative(prev, next Vec3) (Vec3, Vec3) {
	return w.prevInv.Rotate(prev.Sub(w.prev)), w.nextInv.Rotate(next.Sub(w.next))
}

// Scene is the render side of a spatial scene. It renders every voice as
// heard by a stereo listener, delayed by the time sound takes to travel.
// All of its methods must be called from a single render goroutine.
type Scene struct {
	table    *slot.Table[*voice]
	listener *cell.Cell[listenerState]
	lisTrack track

	speed    float64
	maxBlock float64
	policy   DelayPolicy
}

// New builds a spatial scene and returns its control and render halves.
func New(cfg Config) (*Handle, *Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	table, err := slot.New[*voice](cfg.slots())
	if err != nil {
		return nil, nil, err
	}

	listener := cell.New(listenerState{inv: Identity()})
	h := &Handle{
		table:    table,
		listener: listener,
		cfg:      cfg,
		logger:   cfg.logger(),
	}
	s := &Scene{
		table:    table,
		listener: listener,
		speed:    cfg.PropagationSpeed,
		maxBlock: cfg.MaxBlock,
		policy:   cfg.DelayPolicy,
	}

	return h, s, nil
}

// Render fills out with the scene heard at rate Hz.
func (s *Scene) Render(rate int, out []frame.Stereo) {
	s.Sample(signal.NewContext(rate), out)
}

// Sample implements signal.Signal. Buffers covering more than the
// configured MaxBlock are rendered in several passes. An empty buffer
// renders nothing and leaves the scene as it was.
func (s *Scene) Sample(ctx signal.Context, out []frame.Stereo) {
	if len(out) == 0 {
		return
	}

	frame.Silence(out)

	chunk := len(out)
	if iv := ctx.Interval(); iv > 0 {
		chunk = min(chunk, int(s.maxBlock/iv+1e-6))
	}
	chunk = max(chunk, 1)

	for {
		n := min(chunk, len(out))
		s.block(ctx, out[:n])
		out = out[n:]
		if len(out) == 0 {
			return
		}
	}
}

func (s *Scene) block(ctx signal.Context, out []frame.Stereo) {
	s.table.Sync()
	elapsed := float64(len(out)) * ctx.Interval()

	old, fresh := s.listener.Update()
	cur := s.listener.Load()
	s.lisTrack.follow(old.motion, cur.motion, fresh)
	w := view{
		prev:    s.lisTrack.at(0, cur.motion),
		next:    s.lisTrack.at(elapsed, cur.motion),
		prevInv: old.inv,
		nextInv: cur.inv,
	}
	s.lisTrack.dt += elapsed

	for i := 0; i < s.table.Len(); {
		if s.render(s.table.Active(i), w, elapsed, out) {
			i++
			continue
		}
		s.table.Retire(i)
	}
}

// render mixes one voice into out and reports whether it should be kept.
func (s *Scene) render(v *voice, w view, elapsed float64, out []frame.Stereo) bool {
	old, fresh := v.motion.Update()
	cur := v.motion.Load()
	v.track.follow(old, cur, fresh)
	prev, next := w.relative(v.track.at(0, cur), v.track.at(elapsed, cur))
	v.track.dt += elapsed

	var ps, ns [2]earState
	for e := range ears {
		ps[e] = hear(prev, ears[e], v.radius, s.speed)
		ns[e] = hear(next, ears[e], v.radius, s.speed)
	}

	ctl := v.stop.Control()
	switch {
	case ctl.Stopped():
		return false
	case v.finished:
		if v.finishedFor > min(max(ps[0].delay, ps[1].delay), v.reach) {
			return false
		}
		v.finishedFor += elapsed
	case v.stop.Exhausted():
		v.finished = true
		v.finishedFor = elapsed
	}

	if ctl.Paused() || len(out) == 0 || elapsed <= 0 {
		return true
	}

	src := signal.Signal[frame.Mono](v.stop)
	if v.finished {
		src = silence
	}
	v.ring.write(src, v.ctx, elapsed)

	n := float64(len(out))
	for e := range ears {
		pd, nd := ps[e].delay, ns[e].delay
		if s.policy == MuteBeyond && (pd > v.reach || nd > v.reach) {
			continue
		}
		pd, nd = min(pd, v.reach), min(nd, v.reach)

		t := -pd - elapsed
		step := elapsed * readRate(pd, nd, elapsed) / n
		pg, ng := ps[e].gain, ns[e].gain
		for i := range out {
			g := pg + (ng-pg)*float32(float64(i)/n)
			out[i][e] += v.ring.sample(v.ctx.Rate, t+float64(i)*step) * g
		}
	}

	return true
}

// Exhausted always reports false; a scene plays until dropped.
func (s *Scene) Exhausted() bool { return false }

// Voices returns the number of voices in the current block.
func (s *Scene) Voices() int { return s.table.Len() }
