// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat   = errors.New("unknown audio format")
	ErrEmptySource     = errors.New("source holds no samples")
	ErrChannelMismatch = errors.New("unsupported channel count")
)
