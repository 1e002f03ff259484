// SPDX-License-Identifier: EPL-2.0

package sink

import "errors"

var (
	ErrNotOpen       = errors.New("sink is not open")
	ErrAlreadyOpen   = errors.New("sink is already open")
	ErrBadBufferSize = errors.New("buffer size must be a positive multiple of the frame size")
)
