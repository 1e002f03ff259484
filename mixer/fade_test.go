package mixer

import (
	"math"
	"testing"
)

func TestFadeValue_Endpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mode   Fade
		t      float32
		want   float64
		within float64
	}{
		{name: "linear start", mode: FadeLinear, t: 0, want: 0},
		{name: "linear end", mode: FadeLinear, t: 1, want: 1},
		{name: "linear mid", mode: FadeLinear, t: 0.5, want: 0.5},
		{name: "equal power start", mode: FadeEqualPower, t: 0, want: 0},
		{name: "equal power end", mode: FadeEqualPower, t: 1, want: 1, within: 1e-6},
		{name: "equal power mid", mode: FadeEqualPower, t: 0.5, want: 0.69625, within: 1e-4},
		{name: "release start", mode: FadeRelease, t: 0, want: 0},
		{name: "release end", mode: FadeRelease, t: 1, want: 1},
		{name: "pulse release start", mode: FadePulseRelease, t: 0, want: 0},
		{name: "pulse release end", mode: FadePulseRelease, t: 1, want: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := float64(fadeValue(tt.mode, tt.t))
			if math.Abs(got-tt.want) > tt.within {
				t.Errorf("fadeValue(%v, %v) = %v, want %v", tt.mode, tt.t, got, tt.want)
			}
		})
	}
}

func TestFadeValue_EqualPowerTracksSine(t *testing.T) {
	t.Parallel()

	// The cubic shares endpoints and first derivatives with sin(t*pi/2);
	// in between it should stay within a few percent of it.
	for i := 0; i <= 20; i++ {
		x := float32(i) / 20
		got := float64(fadeValue(FadeEqualPower, x))
		want := math.Sin(float64(x) * math.Pi / 2)

		if math.Abs(got-want) > 0.05 {
			t.Errorf("fadeValue(FadeEqualPower, %v) = %v, too far from sin = %v", x, got, want)
		}
	}
}

func TestFadeValue_ReleaseMonotonic(t *testing.T) {
	t.Parallel()

	prev := float32(-1)
	for i := 0; i <= 100; i++ {
		x := float32(i) / 100
		v := fadeValue(FadeRelease, x)

		if v < prev {
			t.Fatalf("fadeValue(FadeRelease, %v) = %v decreased below %v", x, v, prev)
		}
		if v < 0 || v > 1 {
			t.Fatalf("fadeValue(FadeRelease, %v) = %v out of [0, 1]", x, v)
		}
		prev = v
	}
}

func TestFadeValue_PulseReleaseBump(t *testing.T) {
	t.Parallel()

	// The pre-pulse boosts the curve slightly above 1 near its end.
	got := fadeValue(FadePulseRelease, 0.975)
	if got < 1.05 || got > 1.2 {
		t.Errorf("fadeValue(FadePulseRelease, 0.975) = %v, want a bump in (1.05, 1.2)", got)
	}

	// Outside the bump the curve stays within [0, 1].
	for i := 0; i <= 85; i++ {
		x := float32(i) / 100
		if v := fadeValue(FadePulseRelease, x); v < 0 || v > 1 {
			t.Fatalf("fadeValue(FadePulseRelease, %v) = %v out of [0, 1]", x, v)
		}
	}
}

func TestComputeFade_Regions(t *testing.T) {
	t.Parallel()

	b := &block{
		fadeinMode:   FadeLinear,
		fadeinStart:  100,
		fadeinLen:    200,
		fadeoutMode:  FadeLinear,
		fadeoutStart: 600,
		fadeoutLen:   100,
	}

	tests := []struct {
		name string
		t    uint64
		want float32
	}{
		{name: "before fade-in", t: 50, want: 0},
		{name: "fade-in midpoint", t: 200, want: 0.5},
		{name: "body", t: 400, want: 1},
		{name: "fade-out boundary", t: 600, want: 1},
		{name: "fade-out midpoint", t: 650, want: 0.5},
		{name: "after fade-out", t: 701, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := b.computeFade(tt.t); got != tt.want {
				t.Errorf("computeFade(%d) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestComputeFade_InertFadeout(t *testing.T) {
	t.Parallel()

	// A block that was never cancelled carries the sentinel fade-out; the
	// envelope must read 1 for its whole life.
	b := &block{
		fadeoutMode:  FadeNone,
		fadeoutStart: math.MaxUint64,
	}

	for _, tick := range []uint64{0, 1, 1 << 20, 1 << 40} {
		if got := b.computeFade(tick); got != 1 {
			t.Errorf("computeFade(%d) = %v, want 1", tick, got)
		}
	}
}
