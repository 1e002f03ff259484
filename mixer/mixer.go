// SPDX-License-Identifier: EPL-2.0

package mixer

import "math"

// Handle is a caller-supplied identifier grouping playbacks that should
// be cancelled together with EndSet. It must be a comparable value; nil
// means the playback is not cancellable.
type Handle any

// envelopeSampleTime is the envelope evaluation interval in output
// frames: gains are computed at these boundaries (about 100 times per
// second at 44.1kHz) and interpolated linearly in between.
const envelopeSampleTime = 441

// Playback describes one scheduled sound for Mixer.Add.
type Playback struct {
	// Samples is the source audio. When Safe is set the caller promises
	// the underlying data stays valid until the playback ends (or until
	// EndSet is called on its Handle); otherwise the mixer copies the
	// data it needs, immediately if Handle is nil, or at EndSet time.
	Samples Samples
	Safe    bool

	// First is the fractional starting offset into the source, in frames.
	First float64

	// Start is the global tick the playback begins at; Duration is how
	// many output-rate ticks it runs.
	Start    uint64
	Duration uint64

	// Step is the source-to-output rate ratio: 1 plays at the source
	// rate, above 1 faster, below 1 slower. The zero value is treated
	// as 1. With Step other than 1 the source must hold at least
	// ceil(First + Duration*Step + 1) frames.
	Step float64

	// FadeIn describes an optional fade-in segment in global ticks.
	FadeIn      Fade
	FadeInStart uint64
	FadeInLen   uint64

	// Vol is the base attenuation (0 is silent). Pan places the sound in
	// the stereo field, -1 full left to +1 full right.
	Vol float32
	Pan float32

	// Handle groups playbacks for EndSet; nil disables cancellation.
	Handle Handle
}

// Mixer owns the active playback table and a ring of pre-mixed stereo
// audio indexed by global sample time. All methods assume a single
// logical caller; create at most one Mixer per output device.
type Mixer struct {
	blocks []block

	// The materialized window covers ticks
	// [premixTime, premixTime+premixLen) at ring positions
	// [premixOffset, premixOffset+premixLen) mod size. premixInt is the
	// authoritative output; premixFloat is the accumulation scratch.
	premixInt    []int16
	premixFloat  []float32
	size         int
	premixOffset int
	premixLen    int
	premixTime   uint64

	curTime uint64
	volume  float32
	wide    bool
}

// New allocates a mixer whose pre-mix ring holds premixSamples stereo
// frames. The ring bounds how far ahead of the clock Mix can reach.
func New(premixSamples int) *Mixer {
	if premixSamples < 1 {
		premixSamples = 1
	}
	return &Mixer{
		blocks:      make([]block, 0, 64),
		premixInt:   make([]int16, 2*premixSamples),
		premixFloat: make([]float32, 2*premixSamples),
		size:        premixSamples,
		volume:      1,
		wide:        wideConvertSupported(),
	}
}

// Close destroys all playbacks and releases the rings. The mixer must
// not be used afterwards.
func (m *Mixer) Close() {
	m.Reset(0)
	m.premixInt = nil
	m.premixFloat = nil
}

// Reset destroys every playback and restarts the clock at t.
func (m *Mixer) Reset(t uint64) {
	clear(m.blocks)
	m.blocks = m.blocks[:0]
	m.curTime = t
	m.premixTime = t
	m.premixLen = 0
	m.premixOffset = 0
}

// Time reports the current global tick.
func (m *Mixer) Time() uint64 { return m.curTime }

// NumActive reports how many playbacks are scheduled or sounding.
func (m *Mixer) NumActive() int { return len(m.blocks) }

// SetVolume sets the global gain applied on top of every playback's own
// volume. Already-rendered audio is invalidated so the next extract
// re-mixes at the new gain.
func (m *Mixer) SetVolume(v float32) {
	m.volume = v
	m.premixLen = 0
}

// Present reports whether any playback bears the given handle.
func (m *Mixer) Present(h Handle) bool {
	for i := range m.blocks {
		if m.blocks[i].handle == h {
			return true
		}
	}
	return false
}

// SetTime advances the clock to t, destroying playbacks that have fully
// elapsed and discarding rendered audio behind the new time. Moving
// backwards is a no-op.
func (m *Mixer) SetTime(t uint64) {
	if t <= m.curTime {
		return
	}
	m.curTime = t

	for i := 0; i < len(m.blocks); {
		if m.blocks[i].start+m.blocks[i].duration <= t {
			m.removeBlock(i)
		} else {
			i++
		}
	}

	if m.premixTime < t {
		if m.premixTime+uint64(m.premixLen) < t {
			m.premixLen = 0
			m.premixOffset = 0
			m.premixTime = t
		} else {
			shift := int(t - m.premixTime)
			m.premixOffset = m.wrap(m.premixOffset + shift)
			m.premixLen -= shift
			m.premixTime = t
		}
	}
}

// Add schedules a playback. A playback whose start lands inside the
// already-rendered window is folded into it immediately, so following
// extracts see it without a re-mix.
func (m *Mixer) Add(p Playback) error {
	if p.Duration == 0 {
		return ErrZeroDuration
	}
	if p.Samples.empty() {
		return ErrNoSamples
	}
	if ch := p.Samples.Channels(); ch != 1 && ch != 2 {
		return ErrBadChannels
	}
	if len(m.blocks) == maxBlocks {
		return ErrTableFull
	}

	step := p.Step
	if step == 0 {
		step = 1
	}

	b := block{
		data:         p.Samples,
		sampleLen:    p.Samples.Frames(),
		safe:         p.Safe,
		first:        p.First,
		start:        p.Start,
		duration:     p.Duration,
		step:         step,
		fadeinMode:   p.FadeIn,
		fadeinStart:  p.FadeInStart,
		fadeinLen:    p.FadeInLen,
		fadeoutMode:  FadeNone,
		fadeoutStart: math.MaxUint64,
		fadeoutLen:   0,
		vol:          p.Vol,
		handle:       p.Handle,
	}
	b.lpan, b.rpan = panGains(p.Pan)

	// Without a handle there is no EndSet to copy at; take the copy now
	// so the caller may reuse its slice freely.
	if b.handle == nil {
		b.copySamples()
	}

	m.blocks = append(m.blocks, b)

	if p.Start < m.premixTime+uint64(m.premixLen) {
		m.addToPremix(&m.blocks[len(m.blocks)-1])
	}
	return nil
}

// EndSet silences and removes every playback bearing handle h. Playbacks
// that start at or after endStart+endDuration are dropped outright; the
// rest fade out with the given curve over [endStart, endStart+endDuration)
// and end there. endStart of 0 means the current time. After EndSet
// returns, the caller may release the source data it lent to these
// playbacks.
func (m *Mixer) EndSet(h Handle, mode Fade, endStart, endDuration uint64) error {
	if h == nil {
		return ErrNilHandle
	}
	if endStart == 0 {
		endStart = m.curTime
	}
	endFinal := endStart + endDuration

	// Rendered audio from endStart on no longer matches; it is re-mixed
	// on the next extract.
	if endStart < m.premixTime+uint64(m.premixLen) {
		if endStart < m.premixTime {
			m.premixLen = 0
		} else {
			m.premixLen = int(endStart - m.premixTime)
		}
	}

	for i := 0; i < len(m.blocks); {
		if m.blocks[i].handle == h && m.blocks[i].start >= endFinal {
			m.removeBlock(i)
		} else {
			i++
		}
	}

	for i := range m.blocks {
		b := &m.blocks[i]
		if b.handle != h {
			continue
		}
		// The caller's lifetime promise ends here, Safe or not.
		b.safe = false
		b.copySamples()
		b.handle = nil
		b.fadeoutMode = mode
		b.fadeoutStart = endStart
		b.fadeoutLen = endDuration
		if endFinal < b.start+b.duration {
			b.duration = endFinal - b.start
		}
	}
	return nil
}

// Mix renders duration stereo frames starting at global tick start into
// out (which must hold at least 2*duration values) and returns how many
// frames were written. Requests entirely behind the clock, or behind the
// rendered window, return 0; requests reaching further ahead than the
// ring allows are truncated.
func (m *Mixer) Mix(out []int16, start uint64, duration int) int {
	if duration <= 0 {
		return 0
	}
	if start+uint64(duration) <= m.curTime {
		return 0
	}

	m.premixTo(start + uint64(duration))

	if start < m.premixTime {
		return 0
	}
	avail := m.premixLen - int(start-m.premixTime)
	if avail <= 0 {
		return 0
	}
	if duration > avail {
		duration = avail
	}

	offset := m.wrap(m.premixOffset + int(start-m.premixTime))
	if duration > m.size-offset {
		first := m.size - offset
		copy(out[:2*first], m.premixInt[2*offset:])
		copy(out[2*first:2*duration], m.premixInt[:2*(duration-first)])
	} else {
		copy(out[:2*duration], m.premixInt[2*offset:2*(offset+duration)])
	}
	return duration
}

// premixTo extends the rendered window to cover up to tick when, bounded
// by the ring capacity.
func (m *Mixer) premixTo(when uint64) {
	if when < m.curTime {
		return
	}
	if when > m.curTime+uint64(m.size) {
		when = m.curTime + uint64(m.size)
	}

	// The window fronts at the current time by construction; anything
	// else means the call sequence itself is broken.
	if m.premixTime != m.curTime {
		panic("mixer: premix window out of sync with current time")
	}

	if m.premixTime+uint64(m.premixLen) >= when {
		return
	}

	t := m.premixTime + uint64(m.premixLen)
	newlen := int(when - t)
	offset := m.wrap(m.premixOffset + m.premixLen)
	if offset+newlen > m.size {
		left := m.size - offset
		m.mixRange(t, offset, left)
		m.mixRange(t+uint64(left), 0, newlen-left)
	} else {
		m.mixRange(t, offset, newlen)
	}
	m.premixLen += newlen
}

// mixRange renders n frames starting at tick t into the contiguous ring
// region beginning at position off: zero the scratch, accumulate every
// overlapping playback, convert to 16-bit.
func (m *Mixer) mixRange(t uint64, off, n int) {
	scratch := m.premixFloat[2*off : 2*(off+n)]
	for i := range scratch {
		scratch[i] = 0
	}

	for i := range m.blocks {
		b := &m.blocks[i]
		if b.start < t+uint64(n) && b.start+b.duration >= t {
			m.mixBlock(scratch, t, n, b)
		}
	}

	m.integerize(off, n)
}

// mixBlock accumulates one playback into a span of float scratch
// covering ticks [start, start+n). The envelope is evaluated at
// envelopeSampleTime boundaries and interpolated linearly across each
// sub-span.
func (m *Mixer) mixBlock(out []float32, start uint64, n int, b *block) {
	if b.start > start {
		skip := int(b.start - start)
		n -= skip
		out = out[2*skip:]
		start = b.start
	}

	first := b.first + float64(start-b.start)*b.step
	if b.start+b.duration < start+uint64(n) {
		n = int(b.start + b.duration - start)
	}

	att := b.vol * m.volume

	tstart := start
	vstart := b.computeFade(tstart) * att
	tend := tstart + envelopeSampleTime
	for ; tend <= start+uint64(n); tend += envelopeSampleTime {
		vend := b.computeFade(tend) * att
		b.mixSpan(out, envelopeSampleTime, vstart, vend, first)
		out = out[2*envelopeSampleTime:]
		first += envelopeSampleTime * b.step
		vstart = vend
		tstart = tend
	}
	tend = start + uint64(n)
	if tstart != tend {
		vend := b.computeFade(tend) * att
		b.mixSpan(out, int(tend-tstart), vstart, vend, first)
	}
}

// addToPremix folds a freshly scheduled playback into the part of the
// rendered window it overlaps, re-converting only the affected ring
// slices. This is what makes Add inside the window cheap.
func (m *Mixer) addToPremix(b *block) {
	if m.premixOffset+m.premixLen > m.size {
		left := m.size - m.premixOffset
		if b.start < m.premixTime+uint64(left) && b.start+b.duration > m.premixTime {
			m.mixBlock(m.premixFloat[2*m.premixOffset:2*(m.premixOffset+left)], m.premixTime, left, b)
			m.integerize(m.premixOffset, left)
		}
		rest := m.premixLen - left
		t2 := m.premixTime + uint64(left)
		if b.start < m.premixTime+uint64(m.premixLen) && b.start+b.duration > t2 {
			m.mixBlock(m.premixFloat[:2*rest], t2, rest, b)
			m.integerize(0, rest)
		}
	} else {
		if b.start < m.premixTime+uint64(m.premixLen) && b.start+b.duration > m.premixTime {
			m.mixBlock(m.premixFloat[2*m.premixOffset:2*(m.premixOffset+m.premixLen)], m.premixTime, m.premixLen, b)
			m.integerize(m.premixOffset, m.premixLen)
		}
	}
}

func (m *Mixer) removeBlock(i int) {
	last := len(m.blocks) - 1
	m.blocks[i] = m.blocks[last]
	m.blocks[last] = block{}
	m.blocks = m.blocks[:last]
}

func (m *Mixer) wrap(t int) int {
	if t >= m.size {
		return t - m.size
	}
	return t
}
