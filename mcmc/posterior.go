package mcmc

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-fit/param"
)

// Errors returned by the sampler entry points.
var (
	ErrNilParams      = errors.New("mcmc: parameter set is nil")
	ErrNilLikelihood  = errors.New("mcmc: likelihood function is nil")
	ErrNoFree         = errors.New("mcmc: no free parameters")
	ErrUnknownParam   = errors.New("mcmc: unknown parameter name")
	ErrBadLadder      = errors.New("mcmc: invalid temperature ladder")
	ErrUnboundedPrior = errors.New("mcmc: evidence requires finite bounds on every free parameter")
)

// Posterior is a log-posterior over the free parameters of a set, built
// from a likelihood and the uniform prior implied by the parameter
// bounds. The log-prior is 0 inside every bound and -Inf outside, so
// out-of-bounds proposals are rejected outright.
//
// A Posterior is not safe for concurrent use.
type Posterior struct {
	// Params supplies the free-vector layout, the bounds and the chain
	// starting point. Sampling never writes into it.
	Params *param.Set

	// LogLikelihood evaluates the data log-likelihood for the values
	// held in the given set.
	LogLikelihood func(*param.Set) (float64, error)

	scratch *param.Set
}

// Validate checks that the posterior can be sampled.
func (p *Posterior) Validate() error {
	if p.Params == nil {
		return ErrNilParams
	}
	if p.LogLikelihood == nil {
		return ErrNilLikelihood
	}
	if p.Params.NFree() == 0 {
		return ErrNoFree
	}
	return nil
}

// LogProb returns the unnormalized log-posterior density at the free
// vector x. It implements distmv.LogProber for the sampler. Likelihood
// errors and non-finite likelihood values map to -Inf, which the
// sampler treats as a rejected region.
func (p *Posterior) LogProb(x []float64) float64 {
	return p.logProb(x, 1)
}

func (p *Posterior) logProb(x []float64, beta float64) float64 {
	ok, err := p.Params.InBounds(x)
	if err != nil || !ok {
		return math.Inf(-1)
	}
	if beta == 0 {
		// Prior-only rung: flat inside the bounds.
		return 0
	}
	ll, err := p.logLikeAt(x)
	if err != nil || math.IsNaN(ll) || math.IsInf(ll, 1) {
		return math.Inf(-1)
	}
	return beta * ll
}

// logLikeAt evaluates the likelihood with x written into a scratch copy
// of the parameter set, leaving the caller's set untouched.
func (p *Posterior) logLikeAt(x []float64) (float64, error) {
	if p.scratch == nil {
		p.scratch = p.Params.Clone()
	}
	if err := p.scratch.SetFreeValues(x); err != nil {
		return 0, err
	}
	return p.LogLikelihood(p.scratch)
}

// tempered scales the likelihood part of a posterior by an inverse
// temperature, one rung of a thermodynamic integration ladder.
type tempered struct {
	p    *Posterior
	beta float64
}

func (t tempered) LogProb(x []float64) float64 {
	return t.p.logProb(x, t.beta)
}
