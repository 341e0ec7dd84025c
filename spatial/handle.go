// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ik5/audmix/cell"
	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/signal"
	"github.com/ik5/audmix/slot"
)

// Voice refers to a spatial voice. Once the voice is gone every operation
// on it is a no-op.
type Voice struct {
	key slot.Key
}

// Handle is the control side of a spatial scene. It is safe for concurrent
// use; calls are serialised by a mutex the render side never takes.
type Handle struct {
	mu       sync.Mutex
	table    *slot.Table[*voice]
	listener *cell.Cell[listenerState]
	cfg      Config
	logger   *slog.Logger
}

// Play starts sig as a point source described by opts.
func (h *Handle) Play(sig signal.Signal[frame.Mono], opts Options) (Voice, error) {
	if err := opts.validate(); err != nil {
		return Voice{}, fmt.Errorf("play: %w", err)
	}

	v := newVoice(sig, opts, h.cfg)

	h.mu.Lock()
	defer h.mu.Unlock()

	key, err := h.table.Insert(v)
	if err != nil {
		return Voice{}, fmt.Errorf("play: %w", err)
	}

	return Voice{key: key}, nil
}

func (h *Handle) lookup(v Voice) (*voice, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.table.Get(v.key)
}

// SetMotion moves v. With smooth set the source glides to the new
// trajectory; otherwise it jumps there at the next block.
func (h *Handle) SetMotion(v Voice, position, velocity Vec3, smooth bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	vc, ok := h.table.Get(v.key)
	if !ok {
		return
	}

	vc.motion.Publish(motion{
		position:      position,
		velocity:      velocity,
		discontinuity: !smooth,
	})
}

// SetListener moves and turns the listener. Position changes glide like a
// smooth SetMotion.
func (h *Handle) SetListener(l Listener) {
	rot := l.Rotation
	if rot.isZero() {
		rot = Identity()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.listener.Publish(listenerState{
		motion: motion{position: l.Position, velocity: l.Velocity},
		inv:    rot.Inverse(),
	})
}

// Stop ends v at the next block. Sound already on its way is dropped.
func (h *Handle) Stop(v Voice) {
	if vc, ok := h.lookup(v); ok {
		vc.stop.Control().Stop()
	}
}

// Pause silences v until Resume. A paused voice keeps its slot and is
// never retired. Unknown voices are ignored.
func (h *Handle) Pause(v Voice) {
	if vc, ok := h.lookup(v); ok {
		vc.stop.Control().Pause()
	}
}

// Resume continues a voice paused with Pause.
func (h *Handle) Resume(v Voice) {
	if vc, ok := h.lookup(v); ok {
		vc.stop.Control().Resume()
	}
}

// Playing reports whether v is still live.
func (h *Handle) Playing(v Voice) bool {
	_, ok := h.lookup(v)
	return ok
}

// Control returns a view on the controls of v's signal.
func (h *Handle) Control(v Voice) (mixer.ControlView, bool) {
	vc, ok := h.lookup(v)
	if !ok {
		return mixer.ControlView{}, false
	}

	return mixer.ViewOf(vc.stop), true
}

// Collect releases the signals and delay lines of voices that have ended.
func (h *Handle) Collect() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.table.Reclaim(nil)
	if n > 0 {
		h.logger.Debug("spatial voices reclaimed", "count", n, "live", h.table.Live())
	}

	return n
}

// Live returns the number of voices not yet collected.
func (h *Handle) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.table.Live()
}
