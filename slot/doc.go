// SPDX-License-Identifier: EPL-2.0

// Package slot provides the voice table behind a mixing scene.
//
// A Table is shared by a control goroutine, which inserts voices and looks
// them up by Key, and a render goroutine, which iterates the active voices
// once per block and retires finished ones. Neither side blocks the other:
// inserts and retirements cross over through two bounded wait-free queues,
// and slot storage grows only on the control side in chunks that never move.
//
// Keys carry a generation. Retiring a voice bumps its slot's generation, so a
// key held by control code stops resolving the moment the voice ends and can
// never reach a later occupant of the same slot.
//
// A typical render pass:
//
//	table.Sync()
//	table.ForEachActive(func(v *voice) bool {
//	    v.render(out)
//	    return v.done()
//	})
//
// and on the control side:
//
//	key, err := table.Insert(v)
//	if errors.Is(err, slot.ErrCapacityExceeded) {
//	    // scene full
//	}
package slot
