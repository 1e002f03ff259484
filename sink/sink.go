// SPDX-License-Identifier: EPL-2.0

package sink

// BytesPerFrame is the size of one stereo 16-bit PCM frame.
const BytesPerFrame = 4

// Sink is a looping stereo 16-bit little-endian PCM ring with device
// cursors. Implementations consume the ring continuously once Init
// succeeds and keep playing until Close.
type Sink interface {
	// Init opens the device and allocates a ring of bufferBytes bytes.
	// bufferBytes must be a multiple of BytesPerFrame.
	Init(sampleRate, bufferBytes int) error

	// Cursors reports the play and write byte cursors, both in
	// [0, bufferBytes). The region between them has been handed to the
	// device; the region from the write cursor to the play cursor is
	// writable.
	Cursors() (play, write int)

	// Write copies data into the ring starting at offsetBytes modulo the
	// ring size, wrapping internally.
	Write(offsetBytes int, data []byte) error

	// Close stops playback and releases the device.
	Close() error
}
