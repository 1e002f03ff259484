// SPDX-License-Identifier: EPL-2.0

package synth

import "math"

// Waveform describes the shape of one oscillation cycle. See the package
// documentation for the geometry of the four fields.
type Waveform struct {
	ZeroWait   float32 // 0 to 1, PWM effect
	PeakTime   float32 // 0 to 1
	HalfHeight float32 // 0 to 1
	Reflect    bool    // symmetry of the second half: mirror or identity
}

// ADSR is a classic attack-decay-sustain-release volume envelope. All
// times are in seconds; SustainLevel is relative to the attack peak.
type ADSR struct {
	AttackTime   float32
	DecayTime    float32
	SustainLevel float32 // 0 to 1
	ReleaseTime  float32 // faux-exponential decay time
}

// DefaultADSR is used when Synth is called with a nil envelope. The tiny
// attack and release keep note edges click-free without audibly shaping
// the tone.
var DefaultADSR = ADSR{AttackTime: 0.001, DecayTime: 0, SustainLevel: 1, ReleaseTime: 0.002}

// Canonical shapes.
var (
	Triangle  = Waveform{ZeroWait: 0, PeakTime: 0.5, HalfHeight: 0}
	Square    = Waveform{ZeroWait: 0, PeakTime: 0, HalfHeight: 1}
	Saw       = Waveform{ZeroWait: 0, PeakTime: 0, HalfHeight: 0, Reflect: true}
	SawPhased = Waveform{ZeroWait: 0, PeakTime: 1, HalfHeight: 0.5, Reflect: true}
)

// PWMSquare returns a pulse-width-modulated square wave. width runs from
// 0 (full width) to 1 (narrow pulse).
func PWMSquare(width float32) Waveform {
	return Waveform{ZeroWait: width, PeakTime: 0, HalfHeight: 1}
}

// PWMSaw returns a pulse-width-modulated saw wave.
func PWMSaw(width float32) Waveform {
	return Waveform{ZeroWait: width, PeakTime: 0, HalfHeight: 0, Reflect: true}
}

// PWMTriangle returns a pulse-width-modulated triangle wave.
func PWMTriangle(width float32) Waveform {
	return Waveform{ZeroWait: width, PeakTime: 0.5, HalfHeight: 0}
}

// PitchToFreq converts a MIDI note number (middle C is 60, A4 is 69) to a
// frequency in Hz. Fractional pitches select microtones.
func PitchToFreq(pitch float32) float32 {
	return float32(440.0 * math.Pow(2.0, (float64(pitch)-69.0)/12.0))
}
