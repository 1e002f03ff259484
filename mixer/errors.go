// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrZeroDuration = errors.New("playback duration must not be zero")
	ErrNoSamples    = errors.New("playback has no source samples")
	ErrBadChannels  = errors.New("source must have 1 or 2 channels")
	ErrTableFull    = errors.New("active playback table is full")
	ErrNilHandle    = errors.New("handle must not be nil")
)
