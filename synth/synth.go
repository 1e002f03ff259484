// SPDX-License-Identifier: EPL-2.0

package synth

import "github.com/ik5/audmix/utils"

// blockSize is how many samples are shaped, enveloped and written per
// inner-loop pass.
const blockSize = 256

// rightHalf is the second half of a cycle, derived from a Waveform. Its
// positions live in [1, 2) on the phase axis.
type rightHalf struct {
	startHeight float32
	startZero   float32
	peakTime    float32
	endHeight   float32
	endZero     float32
}

func makeRight(src *Waveform) rightHalf {
	p := utils.Lerp(src.PeakTime, src.ZeroWait, 1)

	var w rightHalf
	if src.Reflect {
		w.startHeight = -src.HalfHeight
		w.startZero = 0
		w.peakTime = 1 - p
		w.endHeight = 0
		w.endZero = 1 - src.ZeroWait
	} else {
		w.startHeight = 0
		w.startZero = src.ZeroWait
		w.peakTime = p
		w.endHeight = -src.HalfHeight
		w.endZero = 1
	}
	w.startZero += 1
	w.peakTime += 1
	w.endZero += 1
	return w
}

func makeLeft(src *Waveform) Waveform {
	left := *src
	left.PeakTime = utils.Lerp(src.PeakTime, src.ZeroWait, 1)
	return left
}

// Synth renders a tone into out and returns the number of samples written.
//
// The note sounds for duration seconds (including the attack and decay
// phases) and then decays for the envelope's release time; the total is
// clamped to len(out). pitch is a MIDI note number, possibly fractional.
// volume scales the output, normally 0..1. A nil adsr selects DefaultADSR.
// wave2, when non-nil, is the shape the tone morphs into over the note's
// life; nil holds wave1 throughout.
//
// Synth returns 0 when out is empty, sampleRate is not positive, or wave1
// is nil.
func Synth(out []float32, sampleRate int, duration, pitch, volume float32, adsr *ADSR, wave1, wave2 *Waveform) int {
	return synthRaw(out, true, sampleRate, duration, pitch, volume, adsr, wave1, wave2)
}

// SynthAdd is Synth, accumulating into out instead of overwriting it.
func SynthAdd(out []float32, sampleRate int, duration, pitch, volume float32, adsr *ADSR, wave1, wave2 *Waveform) int {
	return synthRaw(out, false, sampleRate, duration, pitch, volume, adsr, wave1, wave2)
}

func synthRaw(out []float32, zero bool, sampleRate int, duration, pitch, volume float32, adsr *ADSR, wave1, wave2 *Waveform) int {
	if len(out) == 0 || sampleRate <= 0 || wave1 == nil {
		return 0
	}

	env := DefaultADSR
	if adsr != nil {
		env = *adsr
	}
	// Fold the decay boundary into an absolute time from note start.
	env.DecayTime += env.AttackTime

	length := int((duration + env.ReleaseTime) * float32(sampleRate))
	if length > len(out) {
		length = len(out)
	}

	freq := PitchToFreq(pitch)
	wavelength := float32(sampleRate) / freq // samples per cycle
	wavesteps := 2 / wavelength              // phase advance per sample

	leftA := makeLeft(wave1)
	rightA := makeRight(wave1)
	leftB, rightB := leftA, rightA
	if wave2 != nil {
		leftB = makeLeft(wave2)
		rightB = makeRight(wave2)
	}

	left, right := leftA, rightA

	// Morph position advances once per completed cycle.
	var t float32
	dt := 1 / ((duration + env.ReleaseTime/4) * float32(sampleRate))
	dt *= wavelength

	r0 := utils.Reciprocal(right.startZero, right.peakTime)
	r1 := utils.Reciprocal(right.peakTime, right.endZero)
	r2 := utils.Reciprocal(left.ZeroWait, left.PeakTime)
	r3 := utils.Reciprocal(left.PeakTime, 1)
	r4 := utils.Reciprocal(0, env.AttackTime)
	r5 := utils.Reciprocal(env.AttackTime, env.DecayTime)
	r6 := utils.Reciprocal(0, env.ReleaseTime)

	var p float32
	var sec float32
	dsec := 1 / float32(sampleRate)
	scale := float32(0)
	releaseLevel := float32(-1)

	var data [blockSize]float32
	for j := 0; j < length; j += blockSize {
		end := j + blockSize
		if end > length {
			end = length
		}

		// Shape pass.
		for i := j; i < end; i++ {
			var pcm float32
			if p >= 1 {
				switch {
				case p < right.startZero || p > right.endZero:
					pcm = 0
				case p < right.peakTime:
					pcm = utils.RemapR(p, right.startZero, r0, right.startHeight, -1)
				default:
					pcm = utils.RemapR(p, right.peakTime, r1, -1, right.endHeight)
				}
			} else {
				switch {
				case p < left.ZeroWait:
					pcm = 0
				case p < left.PeakTime:
					pcm = utils.RemapR(p, left.ZeroWait, r2, 0, 1)
				default:
					pcm = utils.RemapR(p, left.PeakTime, r3, 1, left.HalfHeight)
				}
			}
			data[i-j] = pcm

			p += wavesteps
			if p >= 2 {
				p -= 2

				t += dt
				if t > 1 {
					t = 1
				}
				left.ZeroWait = utils.Lerp(t, leftA.ZeroWait, leftB.ZeroWait)
				left.PeakTime = utils.Lerp(t, leftA.PeakTime, leftB.PeakTime)
				left.HalfHeight = utils.Lerp(t, leftA.HalfHeight, leftB.HalfHeight)
				right.startHeight = utils.Lerp(t, rightA.startHeight, rightB.startHeight)
				right.startZero = utils.Lerp(t, rightA.startZero, rightB.startZero)
				right.peakTime = utils.Lerp(t, rightA.peakTime, rightB.peakTime)
				right.endHeight = utils.Lerp(t, rightA.endHeight, rightB.endHeight)
				right.endZero = utils.Lerp(t, rightA.endZero, rightB.endZero)

				r0 = utils.Reciprocal(right.startZero, right.peakTime)
				r1 = utils.Reciprocal(right.peakTime, right.endZero)
				r2 = utils.Reciprocal(left.ZeroWait, left.PeakTime)
				r3 = utils.Reciprocal(left.PeakTime, 1)
			}
		}

		// Envelope pass.
		for i := j; i < end; i++ {
			switch {
			case sec < env.AttackTime:
				scale = utils.RemapR(sec, 0, r4, 0, 1)
			case sec < env.DecayTime:
				scale = utils.RemapR(sec, env.AttackTime, r5, 1, env.SustainLevel)
			case sec > duration:
				if releaseLevel == -1 {
					releaseLevel = scale
				}
				x := sec - duration
				x = 1 - x*r6
				scale = x * x * x * releaseLevel
			default:
				scale = env.SustainLevel
			}
			data[i-j] *= scale
			sec += dsec
		}

		if zero {
			for i := j; i < end; i++ {
				out[i] = data[i-j] * volume
			}
		} else {
			for i := j; i < end; i++ {
				out[i] += data[i-j] * volume
			}
		}
	}

	return length
}
