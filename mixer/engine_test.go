package mixer

import (
	"testing"

	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/sink"
)

const testLeadFrames = 16

// newTestEngine builds an engine over a deterministic in-memory sink
// with a 1024-frame ring.
func newTestEngine(t *testing.T, timeOffset float64) (*Engine, *sink.Buffer) {
	t.Helper()

	buf := sink.NewBuffer(testLeadFrames)
	eng, err := NewEngine(1024, timeOffset, 1024*sink.BytesPerFrame, buf)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(eng.Close)
	return eng, buf
}

func TestEngine_WritesAheadOfWriteCursor(t *testing.T) {
	t.Parallel()

	eng, buf := newTestEngine(t, 0)

	if err := eng.Mixer().Add(Playback{
		Samples:  Int16Samples(audiotest.Const16(300, 1000), 1),
		Start:    0,
		Duration: 200,
		Step:     1,
		Vol:      1,
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if got := eng.Step(100); got != 0 {
		t.Fatalf("Step() time = %d, want 0 (sink has not played)", got)
	}

	// The mixed frames land right at the sink's write cursor.
	for f := 0; f < 100; f++ {
		l, r := buf.Frame(testLeadFrames + f)
		if l != 1000 || r != 1000 {
			t.Fatalf("ring frame %d = (%d, %d), want (1000, 1000)", testLeadFrames+f, l, r)
		}
	}
	if l, _ := buf.Frame(testLeadFrames + 100); l != 0 {
		t.Errorf("ring frame past the write = %d, want untouched 0", l)
	}
}

func TestEngine_TimeFollowsSink(t *testing.T) {
	t.Parallel()

	eng, buf := newTestEngine(t, 0)

	if err := eng.Mixer().Add(Playback{
		Samples:  Int16Samples(audiotest.Const16(600, 1000), 1),
		Start:    0,
		Duration: 500,
		Step:     1,
		Vol:      1,
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	eng.Step(100)

	// Simulate the device consuming 50 frames, then step again.
	buf.Advance(50)
	if got := eng.Step(100); got != 50 {
		t.Fatalf("Step() time = %d, want 50", got)
	}
	if got := eng.Mixer().Time(); got != 50 {
		t.Errorf("mixer Time() = %d, want 50", got)
	}

	// The new write cursor moved with the play cursor; fresh frames are
	// written after it and still carry the playback.
	_, write := buf.Cursors()
	writeFrame := write / sink.BytesPerFrame
	for f := 0; f < 100; f++ {
		l, _ := buf.Frame(writeFrame + f)
		if l != 1000 {
			t.Fatalf("ring frame %d = %d, want 1000", writeFrame+f, l)
		}
	}
}

func TestEngine_MatchesDirectMix(t *testing.T) {
	t.Parallel()

	eng, buf := newTestEngine(t, 0)

	p := Playback{
		Samples:  Int16Samples(audiotest.Ramp16(700), 1),
		Start:    0,
		Duration: 600,
		Step:     1,
		Vol:      0.5,
		Pan:      0.5,
	}
	if err := eng.Mixer().Add(p); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	eng.Step(300)

	// The sink ring must hold exactly what a standalone mixer renders
	// for the same schedule.
	ref := New(1024)
	defer ref.Close()
	if err := ref.Add(p); err != nil {
		t.Fatalf("reference Add() error = %v", err)
	}
	want := make([]int16, 2*300)
	if n := ref.Mix(want, 0, 300); n != 300 {
		t.Fatalf("reference Mix() = %d, want 300", n)
	}

	for f := 0; f < 300; f++ {
		l, r := buf.Frame(testLeadFrames + f)
		if l != want[2*f] || r != want[2*f+1] {
			t.Fatalf("ring frame %d = (%d, %d), want (%d, %d)",
				f, l, r, want[2*f], want[2*f+1])
		}
	}
}

func TestEngine_WriteCursorOffsetShiftsPlacement(t *testing.T) {
	t.Parallel()

	// 0.01s at 44100Hz is 441 frames of extra padding.
	eng, buf := newTestEngine(t, 0.01)

	if err := eng.Mixer().Add(Playback{
		Samples:  Int16Samples(audiotest.Const16(100, 3000), 1),
		Start:    0,
		Duration: 50,
		Step:     1,
		Vol:      1,
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	eng.Step(50)

	if l, _ := buf.Frame(testLeadFrames + 441); l != 3000 {
		t.Errorf("ring frame at write+offset = %d, want 3000", l)
	}
	if l, _ := buf.Frame(testLeadFrames); l != 0 {
		t.Errorf("ring frame at bare write cursor = %d, want 0", l)
	}
}

func TestEngine_ClampsToAvailableSpace(t *testing.T) {
	t.Parallel()

	// With a 1024-frame ring, a 16-frame lead and a 441-frame offset,
	// only 1024-16-441 = 567 frames are writable per step.
	eng, _ := newTestEngine(t, 0.01)

	if err := eng.Mixer().Add(Playback{
		Samples:  Int16Samples(audiotest.Const16(3000, 1000), 1),
		Start:    0,
		Duration: 2500,
		Step:     1,
		Vol:      1,
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	eng.Step(5000)

	// The mixer window only advanced by what fit into the sink.
	if got := eng.Mixer().premixLen; got > 1024-testLeadFrames-441 {
		t.Errorf("premix window grew to %d frames, more than the sink could take", got)
	}
}

func TestEngine_InitFailurePropagates(t *testing.T) {
	t.Parallel()

	buf := sink.NewBuffer(0)
	// Misaligned ring size makes the sink refuse to open.
	if _, err := NewEngine(256, 0, 1023, buf); err == nil {
		t.Fatal("NewEngine() succeeded with a sink that cannot open")
	}
}
