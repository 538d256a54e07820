package fit

import (
	"math"

	"github.com/cwbudde/algo-fit/param"
)

// transform maps one bounded external parameter onto the unbounded
// internal coordinate the solvers work in. The mapping follows the
// classic MINUIT change of variables: sine for two-sided bounds, a
// hyperbola branch for one-sided bounds, identity when unbounded.
type transform struct {
	min, max float64
}

func newTransforms(s *param.Set) []transform {
	lo, hi := s.FreeBounds()
	ts := make([]transform, len(lo))
	for i := range ts {
		ts[i] = transform{min: lo[i], max: hi[i]}
	}
	return ts
}

// maxSinArg keeps starting points off the exact turning points of the
// sine mapping, where its derivative vanishes and a solver could no
// longer move the parameter.
const maxSinArg = 1 - 1e-8

// internal maps an external value into the solver coordinate.
func (t transform) internal(v float64) float64 {
	lower := !math.IsInf(t.min, -1)
	upper := !math.IsInf(t.max, 1)

	switch {
	case lower && upper:
		arg := 2*(v-t.min)/(t.max-t.min) - 1
		if arg < -maxSinArg {
			arg = -maxSinArg
		}
		if arg > maxSinArg {
			arg = maxSinArg
		}
		return math.Asin(arg)
	case lower:
		d := v - t.min + 1
		return math.Sqrt(d*d - 1)
	case upper:
		d := t.max - v + 1
		return math.Sqrt(d*d - 1)
	default:
		return v
	}
}

// external maps a solver coordinate back to the bounded value. The
// result is clamped to the bounds so that rounding can never escape
// them.
func (t transform) external(z float64) float64 {
	lower := !math.IsInf(t.min, -1)
	upper := !math.IsInf(t.max, 1)

	switch {
	case lower && upper:
		v := t.min + (t.max-t.min)/2*(math.Sin(z)+1)
		return clamp(v, t.min, t.max)
	case lower:
		return t.min - 1 + math.Sqrt(z*z+1)
	case upper:
		return t.max + 1 - math.Sqrt(z*z+1)
	default:
		return z
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func internalAll(dst, v []float64, ts []transform) {
	for i, t := range ts {
		dst[i] = t.internal(v[i])
	}
}

func externalAll(dst, z []float64, ts []transform) {
	for i, t := range ts {
		dst[i] = t.external(z[i])
	}
}
