// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"

	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/synth"
	"github.com/ik5/audmix/utils"
)

// RenderTone16 is a high-level convenience function that synthesizes a
// single note and collects it as mono 16-bit PCM data.
//
// This function runs the full tone pipeline:
//  1. Sizes a float buffer for the note plus its release tail
//  2. Synthesizes the note with synth.Synth
//  3. Converts the float32 samples to int16 PCM format
//
// Parameters:
//   - sampleRate: output rate in Hz (e.g. 44100)
//   - duration: note length in seconds, up to the release phase
//   - pitch: MIDI note number (60 = middle C); can be fractional
//   - volume: scale factor, normally 0..1
//   - adsr: volume envelope, or nil for synth.DefaultADSR
//   - wave1: the note's waveform shape
//   - wave2: optional shape to morph toward, or nil
//
// Note: This is a convenience function for common use cases. For more
// control (accumulating layers, reusing buffers) call synth.Synth and
// synth.SynthAdd directly.
func RenderTone16(sampleRate int, duration, pitch, volume float32, adsr *synth.ADSR, wave1, wave2 *synth.Waveform) []int16 {
	if sampleRate <= 0 || wave1 == nil {
		return nil
	}

	release := synth.DefaultADSR.ReleaseTime
	if adsr != nil {
		release = adsr.ReleaseTime
	}

	buf := make([]float32, int((duration+release)*float32(sampleRate))+1)
	n := synth.Synth(buf, sampleRate, duration, pitch, volume, adsr, wave1, wave2)

	pcm := make([]int16, n)
	for i := range pcm {
		pcm[i] = utils.Float32ToInt16(buf[i])
	}
	return pcm
}

// ScheduleTone synthesizes a note and schedules it on m at the given
// global tick. The synthesized buffer is handed to the mixer as a Safe
// float source, so Add takes no copy of it.
//
// vol and pan are the playback volume and stereo position; the tone
// itself is synthesized at unit volume.
func ScheduleTone(m *mixer.Mixer, start uint64, sampleRate int, duration, pitch float32, adsr *synth.ADSR, wave1, wave2 *synth.Waveform, vol, pan float32, handle mixer.Handle) error {
	if sampleRate <= 0 || wave1 == nil {
		return mixer.ErrNoSamples
	}

	release := synth.DefaultADSR.ReleaseTime
	if adsr != nil {
		release = adsr.ReleaseTime
	}

	buf := make([]float32, int((duration+release)*float32(sampleRate))+1)
	n := synth.Synth(buf, sampleRate, duration, pitch, 1, adsr, wave1, wave2)
	if n == 0 {
		return mixer.ErrNoSamples
	}

	err := m.Add(mixer.Playback{
		Samples:  mixer.Float32Samples(buf[:n], 1),
		Safe:     true, // freshly allocated, nothing else writes it
		Start:    start,
		Duration: uint64(n),
		Step:     1,
		Vol:      vol,
		Pan:      pan,
		Handle:   handle,
	})
	if err != nil {
		return fmt.Errorf("scheduling tone: %w", err)
	}
	return nil
}
