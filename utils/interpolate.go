// SPDX-License-Identifier: EPL-2.0

package utils

// Lerp linearly interpolates between a and b.
// t is the fractional position (0 <= t <= 1); t=0 returns a, t=1 returns b.
func Lerp(t, a, b float32) float32 {
	return a + (b-a)*t
}

// Unlerp is the inverse of Lerp: it returns where t sits between a and b
// as a fraction. a and b must differ.
func Unlerp(t, a, b float32) float32 {
	return (t - a) / (b - a)
}

// Reciprocal returns 1/(b-a), or 1 when the interval is empty.
// It lets a remap over a fixed interval run without a per-sample divide;
// see RemapR.
func Reciprocal(a, b float32) float32 {
	if b == a {
		return 1
	}
	return 1.0 / (b - a)
}

// RemapR maps t from the interval starting at a into [c, d], using r, the
// precomputed Reciprocal of the source interval.
func RemapR(t, a, r, c, d float32) float32 {
	return c + (d-c)*(t-a)*r
}
