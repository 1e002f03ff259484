// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// writeLeadMillis is how far the write cursor stays ahead of the play
// cursor, mirroring the unsafe region hardware ring buffers report.
const writeLeadMillis = 15

// Oto is a Sink backed by an ebitengine/oto v3 player. The player pulls
// PCM out of an internal ring; the play cursor advances with every pull
// and the write cursor keeps a fixed lead ahead of it.
//
// Playback loops over the ring forever, so a producer that stops writing
// will hear stale ring content repeat; keep the ring topped up.
type Oto struct {
	mu     sync.Mutex
	ring   []byte
	play   int // bytes
	lead   int // bytes
	ctx    *oto.Context
	player *oto.Player
}

// NewOto returns an unopened Oto sink.
func NewOto() *Oto {
	return &Oto{}
}

// Init opens the audio device for stereo 16-bit output at sampleRate and
// starts the looping playback.
func (o *Oto) Init(sampleRate, bufferBytes int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return ErrAlreadyOpen
	}
	if bufferBytes <= 0 || bufferBytes%BytesPerFrame != 0 {
		return ErrBadBufferSize
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   20 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	o.ctx = ctx
	o.ring = make([]byte, bufferBytes)
	o.play = 0
	o.lead = sampleRate * writeLeadMillis / 1000 * BytesPerFrame

	o.player = ctx.NewPlayer(&otoRingReader{sink: o})
	o.player.Play()

	return nil
}

// Cursors reports the play and write byte positions of the ring.
func (o *Oto) Cursors() (play, write int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ring == nil {
		return 0, 0
	}
	return o.play, (o.play + o.lead) % len(o.ring)
}

// Write copies data into the ring at offsetBytes, wrapping as needed.
func (o *Oto) Write(offsetBytes int, data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ring == nil {
		return ErrNotOpen
	}

	offset := offsetBytes % len(o.ring)
	n := copy(o.ring[offset:], data)
	if n < len(data) {
		copy(o.ring, data[n:])
	}
	return nil
}

// Close stops the player and releases the device.
func (o *Oto) Close() error {
	o.mu.Lock()
	player := o.player
	o.player = nil
	o.ring = nil
	o.mu.Unlock()

	if player != nil {
		if err := player.Close(); err != nil {
			return fmt.Errorf("closing audio player: %w", err)
		}
	}
	return nil
}

// otoRingReader adapts the ring to the pull-based oto player. Reads never
// block and never end: the ring loops, exactly like a hardware buffer
// that keeps playing whatever is in it.
type otoRingReader struct {
	sink *Oto
}

func (r *otoRingReader) Read(p []byte) (int, error) {
	o := r.sink

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ring == nil {
		// Device shut down; feed silence until the player is closed.
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	total := 0
	for total < len(p) {
		n := copy(p[total:], o.ring[o.play:])
		total += n
		o.play = (o.play + n) % len(o.ring)
	}
	return total, nil
}
