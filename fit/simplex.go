package fit

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat/distuv"
)

// Simplex minimizes the sum of squared residuals with the Nelder-Mead
// downhill simplex. It needs no derivatives, which keeps it usable for
// curve shapes with badly scaled Jacobians, at the price of finding
// only a local minimum. The solution is written back into the problem's
// parameter set.
func Simplex(p *Problem, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	x, _, err := runSimplex(p, cfg, p.Params.FreeValues())
	if err != nil {
		return nil, err
	}
	if err := p.Params.SetFreeValues(x); err != nil {
		return nil, err
	}

	return newResult(p, "nelder-mead")
}

// MultiStart runs Simplex from randomized start points and keeps the
// best solution. Start points are drawn uniformly inside each bounded
// parameter's bracket; unbounded parameters are perturbed around their
// initial value. The first start is the unperturbed initial set, so
// MultiStart never returns a worse objective than Simplex alone.
func MultiStart(p *Problem, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if cfg.starts < 1 {
		return nil, fmt.Errorf("fit: start count must be >= 1: %d", cfg.starts)
	}

	src := rand.NewPCG(cfg.seed, cfg.seed)
	uni := distuv.Uniform{Min: 0, Max: 1, Src: src}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	x0 := p.Params.FreeValues()
	lo, hi := p.Params.FreeBounds()

	var bestX []float64
	best := math.Inf(1)

	start := make([]float64, len(x0))
	for k := 0; k < cfg.starts; k++ {
		if k == 0 {
			copy(start, x0)
		} else {
			for j := range start {
				if !math.IsInf(lo[j], -1) && !math.IsInf(hi[j], 1) {
					start[j] = lo[j] + (hi[j]-lo[j])*uni.Rand()
				} else {
					scale := math.Max(math.Abs(x0[j]), 1)
					start[j] = clamp(x0[j]+0.1*scale*normal.Rand(), lo[j], hi[j])
				}
			}
		}

		x, chi2, err := runSimplex(p, cfg, start)
		if err != nil {
			return nil, err
		}
		if chi2 < best {
			best = chi2
			bestX = x
		}
	}

	if bestX == nil {
		return nil, fmt.Errorf("fit: no start produced a finite objective")
	}
	if err := p.Params.SetFreeValues(bestX); err != nil {
		return nil, err
	}

	return newResult(p, "nelder-mead multi-start")
}

// runSimplex minimizes from one start point given in external
// coordinates and returns the solution and its objective value.
func runSimplex(p *Problem, cfg config, start []float64) (x []float64, chi2 float64, err error) {
	ts := newTransforms(p.Params)
	nfree := len(start)

	z0 := make([]float64, nfree)
	internalAll(z0, start, ts)

	scratch := p.Params.Clone()
	ext := make([]float64, nfree)
	resid := make([]float64, p.Size)
	var evalErr error

	objective := func(z []float64) float64 {
		externalAll(ext, z, ts)
		if err := scratch.SetFreeValues(ext); err != nil {
			if evalErr == nil {
				evalErr = err
			}
			return math.Inf(1)
		}
		if err := p.Residuals(resid, scratch); err != nil {
			if evalErr == nil {
				evalErr = err
			}
			return math.Inf(1)
		}
		return floats.Dot(resid, resid)
	}

	problem := optimize.Problem{Func: objective}
	settings := optimize.Settings{
		MajorIterations: cfg.maxIter,
		Concurrent:      0,
	}

	result, err := optimize.Minimize(problem, z0, &settings, &optimize.NelderMead{})
	if evalErr != nil {
		return nil, 0, evalErr
	}
	if err != nil {
		return nil, 0, fmt.Errorf("fit: nelder-mead failed: %w", err)
	}

	out := make([]float64, nfree)
	externalAll(out, result.X, ts)
	return out, result.F, nil
}
