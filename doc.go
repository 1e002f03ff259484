// SPDX-License-Identifier: EPL-2.0

// Package audmix provides a real-time audio mixing core and a small tone
// synthesizer for Go applications.
//
// The package is split into focused subpackages:
//   - mixer: the incremental pre-mix engine (schedule, cancel, extract) and
//     the Engine orchestrator that drives an audio sink
//   - synth: an ADSR-enveloped, shape-morphing waveform synthesizer
//   - sink: the audio output contract plus in-memory and oto-backed rings
//   - utils: PCM conversion and interpolation helpers
//
// # Quick Start
//
// The simplest way to produce audio is RenderTone16, which synthesizes a
// single note and returns it as 16-bit PCM:
//
//	pcm := audmix.RenderTone16(44100, 0.5, 69, 1.0, nil, &synth.Square, nil)
//	// pcm is now mono []int16 at 44.1kHz: an A4 square-wave note
//
// # Scheduled Playback
//
// For real-time output, build a mixer and schedule playbacks on its global
// sample clock:
//
//	m := mixer.New(20000)
//	defer m.Close()
//
//	err := m.Add(mixer.Playback{
//	    Samples:  mixer.Int16Samples(pcm, 1),
//	    Start:    4410, // 0.1s into the future
//	    Duration: uint64(len(pcm)),
//	    Step:     1,
//	    Vol:      0.8,
//	})
//
//	out := make([]int16, 2*1024)
//	n := m.Mix(out, 0, 1024) // extract 1024 stereo frames at time 0
//
// The mixer avoids re-mixing regions it has already computed: asking for
// overlapping slices repeatedly is cheap, and newly added playbacks are
// folded into the computed window incrementally.
//
// # Driving a Sound Device
//
// The mixer.Engine ties a Mixer to a sink.Sink and keeps the device ring
// topped up:
//
//	eng, err := mixer.NewEngine(20000, 0.005, 88200*4, sink.NewOto())
//	if err != nil { ... }
//	defer eng.Close()
//
//	for eng.Mixer().NumActive() > 0 {
//	    eng.Step(5000)
//	    time.Sleep(time.Millisecond)
//	}
package audmix
