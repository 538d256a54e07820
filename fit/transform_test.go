package fit

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fit/param"
)

func TestTransformRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		tr     transform
		values []float64
	}{
		{
			name:   "two-sided",
			tr:     transform{min: -2, max: 6},
			values: []float64{-1.99, -1, 0, 1.5, 5.99},
		},
		{
			name:   "lower only",
			tr:     transform{min: 0, max: math.Inf(1)},
			values: []float64{0, 0.1, 1, 100, 1e8},
		},
		{
			name:   "upper only",
			tr:     transform{min: math.Inf(-1), max: 10},
			values: []float64{10, 9, 0, -50, -1e6},
		},
		{
			name:   "unbounded",
			tr:     transform{min: math.Inf(-1), max: math.Inf(1)},
			values: []float64{-1e9, -1, 0, 3.25, 7e12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.values {
				z := tt.tr.internal(v)
				back := tt.tr.external(z)

				tol := 1e-9 * math.Max(math.Abs(v), 1)
				if math.Abs(back-v) > tol {
					t.Errorf("round trip %g -> %g -> %g", v, z, back)
				}
			}
		})
	}
}

func TestTransformStaysInBounds(t *testing.T) {
	trs := []transform{
		{min: -2, max: 6},
		{min: 0, max: math.Inf(1)},
		{min: math.Inf(-1), max: 10},
	}

	for _, tr := range trs {
		for _, z := range []float64{-1e6, -37.5, -math.Pi, 0, 0.1, 12, 9e7} {
			v := tr.external(z)
			if v < tr.min || v > tr.max {
				t.Errorf("external(%g) = %g escapes [%g, %g]", z, v, tr.min, tr.max)
			}
		}
	}
}

func TestTransformBoundaryStart(t *testing.T) {
	// A value on the boundary must map to a coordinate whose image is
	// still the boundary, without landing on the exact turning point of
	// the sine.
	tr := transform{min: 1, max: 15}

	z := tr.internal(1)
	if math.Abs(z) >= math.Pi/2 {
		t.Errorf("internal(min) = %g, want strictly inside (-pi/2, pi/2)", z)
	}
	if v := tr.external(z); math.Abs(v-1) > 1e-6 {
		t.Errorf("external(internal(min)) = %g, want ~1", v)
	}
}

func TestNewTransforms(t *testing.T) {
	s := param.NewSet()
	s.Add(param.Bounded("a", 1, 0, 10))
	s.Add(param.Fixed("b", 2))
	s.Add(param.Free("c", 3))

	ts := newTransforms(s)
	if len(ts) != 2 {
		t.Fatalf("newTransforms() length = %d, want 2 (free only)", len(ts))
	}
	if ts[0].min != 0 || ts[0].max != 10 {
		t.Errorf("ts[0] bounds = [%g, %g], want [0, 10]", ts[0].min, ts[0].max)
	}
	if !math.IsInf(ts[1].min, -1) || !math.IsInf(ts[1].max, 1) {
		t.Errorf("ts[1] bounds = [%g, %g], want unbounded", ts[1].min, ts[1].max)
	}
}
