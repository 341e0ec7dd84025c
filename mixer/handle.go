// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ik5/audmix/frame"
	"github.com/ik5/audmix/signal"
	"github.com/ik5/audmix/slot"
)

// Voice refers to a playing signal. It stays valid until the signal ends or
// is stopped; after that every operation on it is a no-op.
type Voice struct {
	key slot.Key
}

// ControlView gives access to the controls of a voice's signal and any
// signals it wraps.
type ControlView struct {
	sig any
}

// ControlAs returns the control of type C found in the voice's signal stack.
func ControlAs[C any](v ControlView) (C, bool) {
	return signal.ControlOf[C](v.sig)
}

// Handle is the control side of a mixing scene. It is safe for concurrent
// use; calls are serialised by a mutex the render side never takes.
type Handle[F frame.Frame[F]] struct {
	mu     sync.Mutex
	table  *slot.Table[*voice[F]]
	logger *slog.Logger
}

// Play starts sig. It is heard from the next rendered block.
func (h *Handle[F]) Play(sig signal.Signal[F]) (Voice, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key, err := h.table.Insert(&voice[F]{stop: signal.NewStop(sig)})
	if err != nil {
		return Voice{}, fmt.Errorf("play: %w", err)
	}

	return Voice{key: key}, nil
}

func (h *Handle[F]) lookup(v Voice) (*voice[F], bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.table.Get(v.key)
}

// Stop ends v at the next block boundary.
func (h *Handle[F]) Stop(v Voice) {
	if vc, ok := h.lookup(v); ok {
		vc.stop.Control().Stop()
	}
}

// Pause silences v without ending it. Paused voices keep their slot.
func (h *Handle[F]) Pause(v Voice) {
	if vc, ok := h.lookup(v); ok {
		vc.stop.Control().Pause()
	}
}

// Resume continues a voice paused with Pause. Unknown voices are ignored.
func (h *Handle[F]) Resume(v Voice) {
	if vc, ok := h.lookup(v); ok {
		vc.stop.Control().Resume()
	}
}

// Playing reports whether v is still live.
func (h *Handle[F]) Playing(v Voice) bool {
	_, ok := h.lookup(v)
	return ok
}

// Control returns a view on v's controls, or false if v has ended.
func (h *Handle[F]) Control(v Voice) (ControlView, bool) {
	vc, ok := h.lookup(v)
	if !ok {
		return ControlView{}, false
	}

	return ControlView{sig: vc.stop}, true
}

// Collect releases the signals of voices that have ended. Play does this
// too; call Collect to free memory sooner when no new voices are coming.
func (h *Handle[F]) Collect() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.table.Reclaim(nil)
	if n > 0 {
		h.logger.Debug("voices reclaimed", "count", n, "live", h.table.Live())
	}

	return n
}

// Live returns the number of voices not yet collected.
func (h *Handle[F]) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.table.Live()
}

// ViewOf returns a view on the controls of sig and the signals it wraps.
func ViewOf(sig any) ControlView {
	return ControlView{sig: sig}
}
