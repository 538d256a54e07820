package fit

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fit/param"
)

// Errors returned by problem construction and the fit drivers.
var (
	ErrNilParams       = errors.New("fit: parameter set is nil")
	ErrNilResiduals    = errors.New("fit: residual function is nil")
	ErrNoData          = errors.New("fit: problem has no residuals")
	ErrNoFree          = errors.New("fit: no free parameters")
	ErrUnderdetermined = errors.New("fit: fewer residuals than free parameters")
	ErrLengthMismatch  = errors.New("fit: data lengths differ")
)

// Problem is a weighted least squares problem over a parameter set.
// Residuals fills dst (length Size) with the residual vector for the
// parameter values currently held in s. Drivers clone the set for their
// trial evaluations and write the solution back into Params when they
// finish.
type Problem struct {
	Params    *param.Set
	Size      int
	Residuals func(dst []float64, s *param.Set) error
}

// Validate checks that the problem is well formed and solvable.
func (p *Problem) Validate() error {
	if p.Params == nil {
		return ErrNilParams
	}
	if p.Residuals == nil {
		return ErrNilResiduals
	}
	if p.Size < 1 {
		return ErrNoData
	}
	nfree := p.Params.NFree()
	if nfree == 0 {
		return ErrNoFree
	}
	if p.Size < nfree {
		return fmt.Errorf("%w: %d residuals, %d free parameters", ErrUnderdetermined, p.Size, nfree)
	}
	return nil
}

// CurveProblem builds a least squares problem for fitting a real-valued
// model curve to observations y with per-point uncertainties dy. The
// model callback fills dst with the curve for the parameter values in s.
// A nil dy fits unweighted residuals.
func CurveProblem(s *param.Set, y, dy []float64, model func(s *param.Set, dst []float64) error) (*Problem, error) {
	if s == nil {
		return nil, ErrNilParams
	}
	if model == nil {
		return nil, ErrNilResiduals
	}
	if len(y) == 0 {
		return nil, ErrNoData
	}
	if dy != nil && len(dy) != len(y) {
		return nil, fmt.Errorf("%w: y=%d dy=%d", ErrLengthMismatch, len(y), len(dy))
	}

	scratch := make([]float64, len(y))
	return &Problem{
		Params: s,
		Size:   len(y),
		Residuals: func(dst []float64, s *param.Set) error {
			if err := model(s, scratch); err != nil {
				return err
			}
			for i := range dst {
				r := scratch[i] - y[i]
				if dy != nil {
					r /= dy[i]
				}
				dst[i] = r
			}
			return nil
		},
	}, nil
}

// ComplexProblem builds a least squares problem for fitting a
// complex-valued model to measured data. Real and imaginary residuals
// are stacked pairwise into a vector of twice the data length, so both
// quadratures pull on the fit.
func ComplexProblem(s *param.Set, data []complex128, model func(s *param.Set, dst []complex128) error) (*Problem, error) {
	if s == nil {
		return nil, ErrNilParams
	}
	if model == nil {
		return nil, ErrNilResiduals
	}
	if len(data) == 0 {
		return nil, ErrNoData
	}

	scratch := make([]complex128, len(data))
	return &Problem{
		Params: s,
		Size:   2 * len(data),
		Residuals: func(dst []float64, s *param.Set) error {
			if err := model(s, scratch); err != nil {
				return err
			}
			for i, c := range scratch {
				d := c - data[i]
				dst[2*i] = real(d)
				dst[2*i+1] = imag(d)
			}
			return nil
		},
	}, nil
}
