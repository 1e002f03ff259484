// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/audmix/sink"
)

// engineSampleRate is the fixed output rate the engine runs the sink at.
const engineSampleRate = 44100

// prestepThreshold and prestepFrames implement the low-latency warm-up:
// a large Step first pushes a short buffer so sound reaches the device
// before the long mix runs.
const (
	prestepThreshold = 1200
	prestepFrames    = 800
)

// Engine drives a Mixer against an audio sink: it tracks the sink's
// write cursor to advance the mixer clock, extracts freshly rendered
// frames and writes them just ahead of the cursor. Like the Mixer it
// assumes a single logical caller.
type Engine struct {
	mix *Mixer
	snk sink.Sink

	time              uint64
	prevWrite         int // frames
	writeCursorOffset int // frames
	ringFrames        int

	staging []int16
	scratch []byte
}

// NewEngine builds a Mixer with the given pre-mix capacity, opens the
// sink with a ring of bufferBytes bytes at 44100Hz, and primes the
// pipeline. timeOffset (seconds) pads the write position past the sink's
// write cursor to absorb scheduling jitter.
func NewEngine(premixSamples int, timeOffset float64, bufferBytes int, snk sink.Sink) (*Engine, error) {
	m := New(premixSamples)
	if err := snk.Init(engineSampleRate, bufferBytes); err != nil {
		m.Close()
		return nil, fmt.Errorf("initializing sink: %w", err)
	}

	e := &Engine{
		mix:               m,
		snk:               snk,
		writeCursorOffset: int(timeOffset * engineSampleRate),
		ringFrames:        bufferBytes / sink.BytesPerFrame,
		staging:           make([]int16, 2*premixSamples),
		scratch:           make([]byte, sink.BytesPerFrame*premixSamples),
	}

	_, write := snk.Cursors()
	e.prevWrite = write / sink.BytesPerFrame

	e.Step(1)
	return e, nil
}

// Mixer exposes the engine's mixer for scheduling.
func (e *Engine) Mixer() *Mixer { return e.mix }

// Time reports the engine's global tick, which the mixer clock follows.
func (e *Engine) Time() uint64 { return e.time }

// Close shuts down the mixer and the sink.
func (e *Engine) Close() {
	e.mix.Close()
	e.snk.Close()
	e.time = 0
}

// Step advances time by however much the sink has played since the last
// step, renders up to n new frames and hands them to the sink. It
// returns the engine time after the advance.
func (e *Engine) Step(n int) uint64 {
	if n > prestepThreshold {
		e.step(prestepFrames)
	}
	return e.step(n)
}

func (e *Engine) step(n int) uint64 {
	playBytes, writeBytes := e.snk.Cursors()
	play := playBytes / sink.BytesPerFrame
	write := writeBytes / sink.BytesPerFrame

	// Sound time is measured by how far the write cursor travelled.
	advance := e.dist(e.prevWrite, write)
	e.time += uint64(advance)
	e.mix.SetTime(e.time)
	e.prevWrite = write

	available := e.dist(write, play) - e.writeCursorOffset
	if n > available {
		n = available
	}
	if maxFrames := len(e.staging) / 2; n > maxFrames {
		n = maxFrames
	}
	if n <= 0 {
		return e.time
	}

	mixed := e.mix.Mix(e.staging, e.time, n)

	// The cursors may have moved while we mixed; drop any prefix the
	// device has already played past.
	_, writeBytes = e.snk.Cursors()
	write = writeBytes / sink.BytesPerFrame
	d := e.dist(e.prevWrite, write)
	if d >= mixed {
		return e.time
	}

	where := (write + e.writeCursorOffset + d) % e.ringFrames
	pcm := e.staging[2*d : 2*mixed]
	buf := e.scratch[:2*len(pcm)]
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	_ = e.snk.Write(where*sink.BytesPerFrame, buf)

	return e.time
}

// dist measures how many frames late is ahead of early on the ring.
func (e *Engine) dist(early, late int) int {
	if early > late {
		late += e.ringFrames
	}
	return late - early
}
