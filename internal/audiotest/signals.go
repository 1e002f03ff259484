// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides PCM test-signal generators shared by the
// package tests. All generators return freshly allocated interleaved
// sample slices.
package audiotest

import "math"

// Silence16 returns frames of mono int16 silence.
func Silence16(frames int) []int16 {
	return make([]int16, frames)
}

// Const16 returns frames of mono int16 samples, all set to v.
func Const16(frames int, v int16) []int16 {
	data := make([]int16, frames)
	for i := range data {
		data[i] = v
	}
	return data
}

// Ramp16 returns mono int16 samples 0, 1, 2, ... frames-1.
func Ramp16(frames int) []int16 {
	data := make([]int16, frames)
	for i := range data {
		data[i] = int16(i)
	}
	return data
}

// StereoConst16 returns frames of interleaved stereo int16 samples with
// the left channel set to l and the right channel set to r.
func StereoConst16(frames int, l, r int16) []int16 {
	data := make([]int16, 2*frames)
	for i := 0; i < frames; i++ {
		data[2*i] = l
		data[2*i+1] = r
	}
	return data
}

// Const32 returns frames of mono float32 samples, all set to v.
func Const32(frames int, v float32) []float32 {
	data := make([]float32, frames)
	for i := range data {
		data[i] = v
	}
	return data
}

// Sine32 returns frames of a mono float32 sine wave in [-1, 1].
func Sine32(frames int, frequency float64, sampleRate int) []float32 {
	data := make([]float32, frames)
	for i := range data {
		t := float64(i) / float64(sampleRate)
		data[i] = float32(math.Sin(2 * math.Pi * frequency * t))
	}
	return data
}
