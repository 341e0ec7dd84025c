// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"errors"

	"github.com/ik5/audmix/slot"
)

var (
	// ErrCapacityExceeded is returned by Play when the scene is full.
	ErrCapacityExceeded = slot.ErrCapacityExceeded

	ErrInvalidConfig  = slot.ErrInvalidConfig
	ErrInvalidOptions = errors.New("invalid spatial voice options")
)
