// SPDX-License-Identifier: EPL-2.0

// Package cell provides wait-free shared values for passing parameters from a
// control goroutine to the real-time render goroutine.
//
// A Cell is written by exactly one producer and read by exactly one consumer:
//
//	motion := cell.New(Motion{})
//
//	// control goroutine
//	motion.Publish(Motion{Position: p})
//
//	// render goroutine, once per block
//	if prev, fresh := motion.Update(); fresh {
//	    start := prev
//	    end := motion.Load()
//	    // ramp from start to end across the block
//	}
//
// A value published before the render goroutine calls Refresh is visible
// after that call; a value published concurrently is seen by this call or the
// next one, never partially. No method blocks, spins or allocates.
//
// Float is a simpler cell for a single float32 that may be shared freely.
package cell
