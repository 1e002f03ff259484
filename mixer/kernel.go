// SPDX-License-Identifier: EPL-2.0

package mixer

import "math"

// mixSpan accumulates n output frames of this block into out, ramping
// the gain linearly from vstart to vend. first is the absolute source
// position (in frames) at the start of the span.
func (b *block) mixSpan(out []float32, n int, vstart, vend float32, first float64) {
	if b.data.f32 != nil {
		// Float sources are unit-range; scale the gain so the
		// accumulated mix lands in the 16-bit output range.
		vstart *= 32767
		vend *= 32767
	}

	var latt, ratt, lstep, rstep float32
	if vstart == vend {
		if vstart == 0 {
			return
		}
		latt = b.lpan * vstart
		ratt = b.rpan * vstart
	} else {
		vstep := (vend - vstart) / float32(n)
		latt = b.lpan * vstart
		ratt = b.rpan * vstart
		lstep = b.lpan * vstep
		rstep = b.rpan * vstep
	}

	if b.data.i16 != nil {
		b.mixSpanInt16(out, n, latt, ratt, lstep, rstep, first)
	} else {
		b.mixSpanFloat32(out, n, latt, ratt, lstep, rstep, first)
	}
}

func (b *block) mixSpanInt16(out []float32, n int, latt, ratt, lstep, rstep float32, first float64) {
	data := b.data.i16

	if b.step == 1 {
		idx := int(first) * b.data.channels
		if b.data.channels == 2 {
			for i := 0; i < n; i++ {
				out[2*i] += float32(data[idx]) * latt
				out[2*i+1] += float32(data[idx+1]) * ratt
				latt += lstep
				ratt += rstep
				idx += 2
			}
		} else {
			for i := 0; i < n; i++ {
				s := float32(data[idx])
				out[2*i] += s * latt
				out[2*i+1] += s * ratt
				latt += lstep
				ratt += rstep
				idx++
			}
		}
		return
	}

	// Resampling tap: integer index plus a running fraction in [0, 1),
	// linearly interpolating between consecutive source frames.
	ff := math.Floor(first)
	idx := int(ff) * b.data.channels
	frac := float32(first - ff)
	istep := int(math.Floor(b.step))
	fstep := float32(b.step - math.Floor(b.step))

	if b.data.channels == 2 {
		istep *= 2
		for i := 0; i < n; i++ {
			l0, l1 := float32(data[idx]), float32(data[idx+2])
			r0, r1 := float32(data[idx+1]), float32(data[idx+3])
			out[2*i] += (l0 + frac*(l1-l0)) * latt
			out[2*i+1] += (r0 + frac*(r1-r0)) * ratt
			latt += lstep
			ratt += rstep
			frac += fstep
			if frac >= 1 {
				frac--
				idx += 2 + istep
			} else {
				idx += istep
			}
		}
	} else {
		for i := 0; i < n; i++ {
			s0, s1 := float32(data[idx]), float32(data[idx+1])
			s := s0 + frac*(s1-s0)
			out[2*i] += s * latt
			out[2*i+1] += s * ratt
			latt += lstep
			ratt += rstep
			frac += fstep
			if frac >= 1 {
				frac--
				idx += 1 + istep
			} else {
				idx += istep
			}
		}
	}
}

func (b *block) mixSpanFloat32(out []float32, n int, latt, ratt, lstep, rstep float32, first float64) {
	data := b.data.f32

	if b.step == 1 {
		idx := int(first) * b.data.channels
		if b.data.channels == 2 {
			for i := 0; i < n; i++ {
				out[2*i] += data[idx] * latt
				out[2*i+1] += data[idx+1] * ratt
				latt += lstep
				ratt += rstep
				idx += 2
			}
		} else {
			for i := 0; i < n; i++ {
				s := data[idx]
				out[2*i] += s * latt
				out[2*i+1] += s * ratt
				latt += lstep
				ratt += rstep
				idx++
			}
		}
		return
	}

	ff := math.Floor(first)
	idx := int(ff) * b.data.channels
	frac := float32(first - ff)
	istep := int(math.Floor(b.step))
	fstep := float32(b.step - math.Floor(b.step))

	if b.data.channels == 2 {
		istep *= 2
		for i := 0; i < n; i++ {
			out[2*i] += (data[idx] + frac*(data[idx+2]-data[idx])) * latt
			out[2*i+1] += (data[idx+1] + frac*(data[idx+3]-data[idx+1])) * ratt
			latt += lstep
			ratt += rstep
			frac += fstep
			if frac >= 1 {
				frac--
				idx += 2 + istep
			} else {
				idx += istep
			}
		}
	} else {
		for i := 0; i < n; i++ {
			s := data[idx] + frac*(data[idx+1]-data[idx])
			out[2*i] += s * latt
			out[2*i+1] += s * ratt
			latt += lstep
			ratt += rstep
			frac += fstep
			if frac >= 1 {
				frac--
				idx += 1 + istep
			} else {
				idx += istep
			}
		}
	}
}
