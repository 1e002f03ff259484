// SPDX-License-Identifier: EPL-2.0

// Package synth renders ADSR-enveloped tones into mono float32 buffers.
//
// A tone is described by one or two Waveform shapes and an ADSR volume
// envelope. When two shapes are given, the wave morphs linearly from the
// first to the second over the note's life, which gives cheap movement to
// otherwise static timbres.
//
// # Waveform Shapes
//
// A Waveform describes the first half of one oscillation cycle with three
// normalized parameters plus a symmetry flag:
//
//   - ZeroWait: time spent flat at zero before the wave starts (PWM effect)
//   - PeakTime: where the peak (value 1) lands within the half, 0..1
//   - HalfHeight: the value at the halfway point, before the wave flips
//   - Reflect: how the second half is derived; false inverts the first
//     half, true mirrors and inverts it
//
// The canonical shapes are provided as package variables (Triangle, Square,
// Saw, SawPhased) and as PWM constructors (PWMSquare, PWMSaw, PWMTriangle).
//
// # Rendering
//
//	buf := make([]float32, 44100)
//	n := synth.Synth(buf, 44100, 0.5, 69, 1.0, nil, &synth.Square, nil)
//	// buf[:n] holds an A4 square note with the default click-free envelope
//
// SynthAdd accumulates into the buffer instead of overwriting it, which
// lets several tones be layered without an intermediate mix pass. The
// release phase extends the note past its nominal duration, clamped to
// the buffer limit.
package synth
