// SPDX-License-Identifier: EPL-2.0

// Package sink defines the audio output contract used by the mixer and
// provides two implementations of it.
//
// A sink is a looping ring of stereo 16-bit little-endian PCM. The device
// side consumes the ring continuously and exposes two byte cursors: the
// play cursor (where the device is reading right now) and the write cursor
// (the earliest position it is safe to write to). Producers query the
// cursors, mix ahead of the write cursor, and copy bytes into the ring at
// an absolute offset; the sink handles wrap-around internally.
//
// # Implementations
//
//   - Buffer: a deterministic in-memory ring whose play cursor is advanced
//     manually with Advance. Intended for tests and offline rendering.
//   - Oto: a real audio device backed by github.com/ebitengine/oto/v3. The
//     device pulls PCM out of the ring and the play cursor tracks its reads.
//
// # Usage
//
//	s := sink.NewBuffer(441)
//	if err := s.Init(44100, 88200*4); err != nil { ... }
//	defer s.Close()
//
//	play, write := s.Cursors()
//	_ = s.Write(write, pcmBytes)
//	s.Advance(1024) // simulate the device consuming 1024 frames
package sink
