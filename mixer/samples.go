// SPDX-License-Identifier: EPL-2.0

package mixer

import "github.com/go-audio/audio"

// Samples is the source audio of one playback: interleaved PCM in either
// 16-bit integer or float32 form, with one or two channels. Construct it
// with Int16Samples, Float32Samples, or one of the go-audio adapters.
//
// Float32 sources are expected in the usual [-1, 1] range; the mixer
// scales them to the 16-bit output range while mixing.
type Samples struct {
	i16      []int16
	f32      []float32
	channels int
}

// Int16Samples wraps interleaved 16-bit PCM.
func Int16Samples(data []int16, channels int) Samples {
	return Samples{i16: data, channels: channels}
}

// Float32Samples wraps interleaved float32 PCM in [-1, 1].
func Float32Samples(data []float32, channels int) Samples {
	return Samples{f32: data, channels: channels}
}

// FromIntBuffer converts a go-audio integer buffer into 16-bit source
// samples. The buffer data is assumed to hold 16-bit values.
func FromIntBuffer(buf *audio.IntBuffer) Samples {
	data := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = int16(v)
	}
	return Samples{i16: data, channels: buf.Format.NumChannels}
}

// FromFloat32Buffer converts a go-audio float32 buffer into float32
// source samples. The buffer data is referenced, not copied; schedule it
// with Safe set, or leave Handle unset so the mixer takes its own copy.
func FromFloat32Buffer(buf *audio.Float32Buffer) Samples {
	return Samples{f32: buf.Data, channels: buf.Format.NumChannels}
}

// Channels reports the channel count of the source.
func (s Samples) Channels() int { return s.channels }

// Frames reports the number of frames the source holds.
func (s Samples) Frames() int {
	if s.channels == 0 {
		return 0
	}
	if s.i16 != nil {
		return len(s.i16) / s.channels
	}
	return len(s.f32) / s.channels
}

func (s Samples) empty() bool {
	return len(s.i16) == 0 && len(s.f32) == 0
}

// clone returns an owned copy of the first frames frames.
func (s Samples) clone(frames int) Samples {
	if frames > s.Frames() {
		frames = s.Frames()
	}
	n := frames * s.channels

	out := Samples{channels: s.channels}
	if s.i16 != nil {
		out.i16 = make([]int16, n)
		copy(out.i16, s.i16)
	} else {
		out.f32 = make([]float32, n)
		copy(out.f32, s.f32)
	}
	return out
}
