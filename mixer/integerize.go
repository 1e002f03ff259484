// SPDX-License-Identifier: EPL-2.0

package mixer

import "golang.org/x/sys/cpu"

// wideConvertSupported reports whether the CPU has the vector units the
// four-lane conversion path is laid out for. The scalar path is always
// available and produces bit-identical results.
func wideConvertSupported() bool {
	return cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD
}

// integerize converts n frames of float scratch starting at ring
// position off into the 16-bit ring, truncating toward zero and
// saturating to the int16 range.
func (m *Mixer) integerize(off, n int) {
	if n == 0 {
		return
	}
	src := m.premixFloat[2*off : 2*(off+n)]
	dst := m.premixInt[2*off : 2*(off+n)]

	if m.wide {
		quads := len(src) &^ 3
		convertWide(dst[:quads], src[:quads])
		convertScalar(dst[quads:], src[quads:])
	} else {
		convertScalar(dst, src)
	}
}

func saturate(v float32) int16 {
	if v >= 32767 {
		return 32767
	}
	if v <= -32768 {
		return -32768
	}
	return int16(v) // truncates toward zero
}

func convertScalar(dst []int16, src []float32) {
	for i, v := range src {
		dst[i] = saturate(v)
	}
}

// convertWide processes four lanes per iteration. len(src) must be a
// multiple of 4.
func convertWide(dst []int16, src []float32) {
	for i := 0; i < len(src); i += 4 {
		s := src[i : i+4 : i+4]
		d := dst[i : i+4 : i+4]
		d[0] = saturate(s[0])
		d[1] = saturate(s[1])
		d[2] = saturate(s[2])
		d[3] = saturate(s[3])
	}
}
