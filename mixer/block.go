// SPDX-License-Identifier: EPL-2.0

package mixer

import "math"

// maxBlocks caps the active playback table.
const maxBlocks = 1000

// block is one scheduled playback in the active table.
type block struct {
	data      Samples
	sampleLen int // frames
	owned     bool
	safe      bool

	first    float64 // fractional starting frame into the source
	start    uint64  // global tick
	duration uint64  // ticks at the output rate
	step     float64 // source frames per output frame

	fadeinMode  Fade
	fadeinStart uint64
	fadeinLen   uint64

	fadeoutMode  Fade
	fadeoutStart uint64
	fadeoutLen   uint64

	vol        float32
	lpan, rpan float32

	handle Handle
}

// copySamples takes ownership of the source data by copying the frames
// the block will actually read. Safe sources stay borrowed; the caller
// has guaranteed their lifetime.
func (b *block) copySamples() {
	if b.safe || b.owned {
		return
	}

	var frames int
	if b.step == 1 {
		frames = int(math.Ceil(b.first)) + int(b.duration)
	} else {
		frames = int(math.Ceil(b.first + float64(b.duration)*b.step + 1))
	}
	if frames > b.sampleLen {
		frames = b.sampleLen
	}

	b.data = b.data.clone(frames)
	b.owned = true
}

// computeFade evaluates the block's envelope at global tick t: 0 outside
// the sounding region, the fade-in curve rising, 1 in the body, the
// fade-out curve falling.
func (b *block) computeFade(t uint64) float32 {
	if t < b.fadeinStart+b.fadeinLen {
		if t < b.fadeinStart {
			return 0
		}
		return fadeValue(b.fadeinMode, float32(t-b.fadeinStart)/float32(b.fadeinLen))
	}
	if t > b.fadeoutStart {
		if t > b.fadeoutStart+b.fadeoutLen {
			return 0
		}
		return fadeValue(b.fadeoutMode, 1-float32(t-b.fadeoutStart)/float32(b.fadeoutLen))
	}
	return 1
}

// panGains converts a pan position in [-1, 1] into per-channel gains.
// Positive pan attenuates the left channel, negative the right.
func panGains(pan float32) (lpan, rpan float32) {
	switch {
	case pan == 0:
		return 1, 1
	case pan < 0:
		if pan < -1 {
			pan = -1
		}
		return 1, 1 + pan
	default:
		if pan > 1 {
			pan = 1
		}
		return 1 - pan, 1
	}
}
