// SPDX-License-Identifier: EPL-2.0

package slot

import "errors"

var (
	// ErrCapacityExceeded is returned by Insert when MaxVoices voices are
	// live or still awaiting reclamation.
	ErrCapacityExceeded = errors.New("voice capacity exceeded")

	// ErrInvalidConfig is returned for non-positive or inconsistent limits.
	ErrInvalidConfig = errors.New("invalid slot table configuration")
)
