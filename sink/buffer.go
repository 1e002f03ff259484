// SPDX-License-Identifier: EPL-2.0

package sink

import "encoding/binary"

// Buffer is an in-memory Sink with a manually driven clock. The play
// cursor only moves when Advance is called, which makes it fully
// deterministic: tests and offline renders can interleave writes and
// simulated device progress however they like.
//
// The write cursor stays a fixed lead ahead of the play cursor, the way
// hardware ring buffers report a small unsafe region after the play
// position.
type Buffer struct {
	ring       []byte
	play       int // bytes
	lead       int // bytes
	leadFrames int
	sampleRate int
}

// NewBuffer returns an unopened Buffer whose write cursor leads the play
// cursor by leadFrames frames.
func NewBuffer(leadFrames int) *Buffer {
	return &Buffer{leadFrames: leadFrames}
}

// Init allocates the ring. The ring starts zeroed with both cursors at
// their initial positions.
func (b *Buffer) Init(sampleRate, bufferBytes int) error {
	if b.ring != nil {
		return ErrAlreadyOpen
	}
	if bufferBytes <= 0 || bufferBytes%BytesPerFrame != 0 {
		return ErrBadBufferSize
	}

	b.ring = make([]byte, bufferBytes)
	b.play = 0
	b.lead = b.leadFrames * BytesPerFrame
	b.sampleRate = sampleRate
	return nil
}

// Cursors reports the current play and write byte positions.
func (b *Buffer) Cursors() (play, write int) {
	if b.ring == nil {
		return 0, 0
	}
	return b.play, (b.play + b.lead) % len(b.ring)
}

// Write copies data into the ring at offsetBytes, wrapping as needed.
func (b *Buffer) Write(offsetBytes int, data []byte) error {
	if b.ring == nil {
		return ErrNotOpen
	}

	offset := offsetBytes % len(b.ring)
	n := copy(b.ring[offset:], data)
	if n < len(data) {
		copy(b.ring, data[n:])
	}
	return nil
}

// Close releases the ring.
func (b *Buffer) Close() error {
	b.ring = nil
	return nil
}

// Advance moves the play cursor forward by frames, simulating the device
// consuming that much audio.
func (b *Buffer) Advance(frames int) {
	if b.ring == nil {
		return
	}
	b.play = (b.play + frames*BytesPerFrame) % len(b.ring)
}

// Frame decodes the stereo frame at the given frame index of the ring.
func (b *Buffer) Frame(index int) (left, right int16) {
	off := (index * BytesPerFrame) % len(b.ring)
	left = int16(binary.LittleEndian.Uint16(b.ring[off : off+2]))
	right = int16(binary.LittleEndian.Uint16(b.ring[off+2 : off+4]))
	return left, right
}

// Frames returns the number of frames the ring holds.
func (b *Buffer) Frames() int {
	return len(b.ring) / BytesPerFrame
}
