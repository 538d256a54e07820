package fit

import (
	"fmt"

	"github.com/maorshutman/lm"
)

// LeastSquares refines the problem's free parameters with the
// Levenberg-Marquardt algorithm. Box bounds are honored by optimizing
// in a transformed coordinate space, so trial evaluations never leave
// the parameter brackets. The solution is written back into the
// problem's parameter set.
func LeastSquares(p *Problem, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	ts := newTransforms(p.Params)
	nfree := p.Params.NFree()

	z0 := make([]float64, nfree)
	internalAll(z0, p.Params.FreeValues(), ts)

	scratch := p.Params.Clone()
	ext := make([]float64, nfree)
	var evalErr error

	residFunc := func(dst, z []float64) {
		externalAll(ext, z, ts)
		if err := scratch.SetFreeValues(ext); err != nil {
			if evalErr == nil {
				evalErr = err
			}
			zero(dst)
			return
		}
		if err := p.Residuals(dst, scratch); err != nil {
			if evalErr == nil {
				evalErr = err
			}
			zero(dst)
		}
	}

	numJac := lm.NumJac{Func: residFunc}
	prob := lm.LMProblem{
		Dim:        nfree,
		Size:       p.Size,
		Func:       residFunc,
		Jac:        numJac.Jac,
		InitParams: z0,
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	results, err := lm.LM(prob, &lm.Settings{Iterations: cfg.maxIter, ObjectiveTol: cfg.tol})
	if evalErr != nil {
		return nil, evalErr
	}
	if err != nil {
		return nil, fmt.Errorf("fit: levenberg-marquardt failed: %w", err)
	}

	externalAll(ext, results.X, ts)
	if err := p.Params.SetFreeValues(ext); err != nil {
		return nil, err
	}

	return newResult(p, "levenberg-marquardt")
}

func zero(dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
}
