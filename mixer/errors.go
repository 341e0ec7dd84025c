// SPDX-License-Identifier: EPL-2.0

package mixer

import "github.com/ik5/audmix/slot"

var (
	// ErrCapacityExceeded is returned by Play when the mixer is full.
	ErrCapacityExceeded = slot.ErrCapacityExceeded

	ErrInvalidConfig = slot.ErrInvalidConfig
)
