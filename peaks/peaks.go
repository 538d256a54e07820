package peaks

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-fit/param"
)

// Background parameter names used by Params, FromParams and
// InitialParams. Per-peak names are produced by AmpName, LocName and
// SDName.
const (
	ParamA = "a"
	ParamB = "b"
)

// Errors returned by peaks functions.
var (
	ErrNegativePeaks  = errors.New("peaks: peak count must not be negative")
	ErrEmptyData      = errors.New("peaks: data must not be empty")
	ErrLengthMismatch = errors.New("peaks: data lengths differ")
	ErrBadShape       = errors.New("peaks: parameter count does not match background plus peak triples")
)

// AmpName returns the amplitude parameter name for peak i.
func AmpName(i int) string { return fmt.Sprintf("a_max%d", i) }

// LocName returns the center parameter name for peak i.
func LocName(i int) string { return fmt.Sprintf("loc%d", i) }

// SDName returns the width parameter name for peak i.
func SDName(i int) string { return fmt.Sprintf("sd%d", i) }

// Component is a single Gaussian peak.
type Component struct {
	Amp float64 // peak amplitude
	Loc float64 // peak center
	SD  float64 // peak width (1/e half-width, not a standard deviation)
}

// Model is a linear background plus a sum of Gaussian peaks:
//
//	g(x) = a + b*x + sum_i amp_i * exp(-((x-loc_i)/sd_i)^2)
//
// Note that the exponent carries no factor of one half, so SD is the
// 1/e half-width of each peak. With no peaks the model reduces to the
// straight line a + b*x.
type Model struct {
	A     float64     // background offset
	B     float64     // background slope
	Peaks []Component // Gaussian components
}

// Eval computes the model at a single point. Degenerate widths are not
// special-cased; a zero SD propagates through the arithmetic following
// floating-point semantics.
func (m Model) Eval(x float64) float64 {
	y := m.A + m.B*x
	for _, p := range m.Peaks {
		t := (x - p.Loc) / p.SD
		y += p.Amp * math.Exp(-t*t)
	}
	return y
}

// Curve evaluates the model over a grid.
func (m Model) Curve(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = m.Eval(xi)
	}
	return out
}

// CurveInto evaluates the model over a grid into dst. dst and x must
// have the same length.
func (m Model) CurveInto(dst, x []float64) error {
	if len(dst) != len(x) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(dst), len(x))
	}
	for i, xi := range x {
		dst[i] = m.Eval(xi)
	}
	return nil
}

// Residuals computes the uncertainty-weighted residuals
// (g(x[i]) - y[i]) / dy[i] into dst. All four slices must have the same
// length.
func (m Model) Residuals(dst, x, y, dy []float64) error {
	if len(x) != len(y) || len(x) != len(dy) || len(dst) != len(x) {
		return fmt.Errorf("%w: dst=%d x=%d y=%d dy=%d",
			ErrLengthMismatch, len(dst), len(x), len(y), len(dy))
	}
	for i, xi := range x {
		dst[i] = (m.Eval(xi) - y[i]) / dy[i]
	}
	return nil
}

// LogLikelihood returns the Gaussian log-likelihood of observing y with
// per-point uncertainties dy under the model curve:
//
//	-0.5 * sum[ ((g(x)-y)/dy)^2 + log(2*pi*dy^2) ]
//
// The prior over parameters is not included here; posterior assembly is
// the sampler's concern.
func (m Model) LogLikelihood(x, y, dy []float64) (float64, error) {
	if len(x) != len(y) || len(x) != len(dy) {
		return 0, fmt.Errorf("%w: x=%d y=%d dy=%d",
			ErrLengthMismatch, len(x), len(y), len(dy))
	}

	sum := 0.0
	for i, xi := range x {
		r := (m.Eval(xi) - y[i]) / dy[i]
		sum += r*r + math.Log(2*math.Pi*dy[i]*dy[i])
	}
	return -0.5 * sum, nil
}

// Params returns the model's parameter set: a, b, then one
// (a_max{i}, loc{i}, sd{i}) triple per peak, all unconstrained and
// seeded from the current field values.
func (m Model) Params() (*param.Set, error) {
	s := param.NewSet()

	if err := s.Add(param.Free(ParamA, m.A)); err != nil {
		return nil, err
	}
	if err := s.Add(param.Free(ParamB, m.B)); err != nil {
		return nil, err
	}

	for i, p := range m.Peaks {
		if err := s.Add(param.Free(AmpName(i), p.Amp)); err != nil {
			return nil, err
		}
		if err := s.Add(param.Free(LocName(i), p.Loc)); err != nil {
			return nil, err
		}
		if err := s.Add(param.Free(SDName(i), p.SD)); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FromParams builds a model from a parameter set laid out as Params and
// InitialParams produce it: a, b, then peak triples. The peak count is
// inferred from the set size.
func FromParams(s *param.Set) (Model, error) {
	n := s.Len()
	if n < 2 || (n-2)%3 != 0 {
		return Model{}, fmt.Errorf("%w: %d parameters", ErrBadShape, n)
	}

	var m Model
	var err error

	if m.A, err = s.Value(ParamA); err != nil {
		return Model{}, err
	}
	if m.B, err = s.Value(ParamB); err != nil {
		return Model{}, err
	}

	count := (n - 2) / 3
	if count > 0 {
		m.Peaks = make([]Component, count)
	}
	for i := 0; i < count; i++ {
		if m.Peaks[i].Amp, err = s.Value(AmpName(i)); err != nil {
			return Model{}, err
		}
		if m.Peaks[i].Loc, err = s.Value(LocName(i)); err != nil {
			return Model{}, err
		}
		if m.Peaks[i].SD, err = s.Value(SDName(i)); err != nil {
			return Model{}, err
		}
	}

	return m, nil
}

// InitialParams builds the starting parameter set for fitting a trace
// (x, y) with count Gaussian peaks.
//
// The background offset starts at the data mean inside [0, 10] and the
// slope at 1 inside [1, 15]. Every peak starts at half the data maximum
// inside [10, max(y)], centered at the data midpoint inside
// [min(x), max(x)], with a width of half the x range inside
// [0.1, range(x)]. All parameters vary.
//
// The fixed brackets assume counting-style traces whose peaks stand
// well above a small background; data that puts a start value outside
// its bracket surfaces as a parameter set error.
func InitialParams(x, y []float64, count int) (*param.Set, error) {
	if count < 0 {
		return nil, ErrNegativePeaks
	}
	if len(x) == 0 {
		return nil, ErrEmptyData
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: x=%d y=%d", ErrLengthMismatch, len(x), len(y))
	}

	meanY := stat.Mean(y, nil)
	maxY := floats.Max(y)
	minX := floats.Min(x)
	maxX := floats.Max(x)
	meanX := stat.Mean(x, nil)
	rangeX := maxX - minX

	s := param.NewSet()

	if err := s.Add(param.Bounded(ParamA, meanY, 0, 10)); err != nil {
		return nil, err
	}
	if err := s.Add(param.Bounded(ParamB, 1, 1, 15)); err != nil {
		return nil, err
	}

	for i := 0; i < count; i++ {
		if err := s.Add(param.Bounded(AmpName(i), 0.5*maxY, 10, maxY)); err != nil {
			return nil, err
		}
		if err := s.Add(param.Bounded(LocName(i), meanX, minX, maxX)); err != nil {
			return nil, err
		}
		if err := s.Add(param.Bounded(SDName(i), 0.5*rangeX, 0.1, rangeX)); err != nil {
			return nil, err
		}
	}

	return s, nil
}
