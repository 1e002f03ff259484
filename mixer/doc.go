// SPDX-License-Identifier: EPL-2.0

// Package mixer combines many scheduled sample playbacks into a single
// stereo 16-bit output stream on a global sample clock.
//
// # The Mixer
//
// A Mixer owns a table of active playbacks and a ring of pre-mixed
// stereo audio indexed by global sample time (one tick per output frame).
// Callers schedule playbacks with Add, advance the clock with SetTime and
// pull rendered audio with Mix. The mixer keeps the rendered window
// around: repeatedly extracting overlapping slices is cheap, and a newly
// added playback that lands inside the window is folded in incrementally
// instead of forcing a re-mix. Only cancelling playbacks (EndSet) or
// changing the global volume invalidates already-rendered audio.
//
// Each playback carries its own source data (16-bit or float32, mono or
// stereo), a fractional start offset and playback-rate step for
// resampling, a volume, a stereo pan, and optional fade-in and fade-out
// envelope segments selected from the Fade curve set.
//
// A Mixer is single-threaded: all operations assume one logical caller
// and perform no locking.
//
// # The Engine
//
// Engine drives a Mixer against a sink.Sink. Each Step reads the sink's
// cursors to find out how much time has passed and how much room there
// is, advances the mixer clock, extracts fresh frames and writes them
// just ahead of the sink's write cursor.
package mixer
