package mcmc

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/cwbudde/algo-fit/param"
)

// Config holds the sampling settings shared by Sample and LogEvidence.
type Config struct {
	Steps  int // kept samples per chain
	BurnIn int // leading steps discarded before keeping samples
	Thin   int // proposals per kept sample

	// StepScale sets the per-parameter random-walk proposal sigma in
	// free-vector order. Nil derives a scale from each parameter's
	// bound width or magnitude.
	StepScale []float64

	Seed uint64
}

// DefaultConfig returns sampling settings sized for nfree free
// parameters. Random-walk chains mix more slowly as dimensions are
// added, so the step count grows with the dimension.
func DefaultConfig(nfree int) Config {
	if nfree < 1 {
		nfree = 1
	}
	steps := 2000 * nfree
	return Config{
		Steps:  steps,
		BurnIn: steps / 4,
		Thin:   1,
		Seed:   1,
	}
}

// Validate checks the settings against a posterior of nfree dimensions.
func (c Config) Validate(nfree int) error {
	if c.Steps < 1 {
		return fmt.Errorf("mcmc: step count must be >= 1: %d", c.Steps)
	}
	if c.BurnIn < 0 {
		return fmt.Errorf("mcmc: burn-in must be >= 0: %d", c.BurnIn)
	}
	if c.Thin < 1 {
		return fmt.Errorf("mcmc: thinning rate must be >= 1: %d", c.Thin)
	}
	if c.StepScale != nil {
		if len(c.StepScale) != nfree {
			return fmt.Errorf("mcmc: step scale length %d, want %d", len(c.StepScale), nfree)
		}
		for i, s := range c.StepScale {
			if !(s > 0) || math.IsInf(s, 1) {
				return fmt.Errorf("mcmc: step scale %d must be positive and finite: %g", i, s)
			}
		}
	}
	return nil
}

// Sample draws from the posterior with a random-walk Metropolis
// Hastings chain starting at the parameter set's current values. The
// set itself is left untouched; summaries live on the returned chain.
func Sample(p *Posterior, cfg Config) (*Chain, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(p.Params.NFree()); err != nil {
		return nil, err
	}
	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	return runChain(p, cfg, 1, src)
}

// Evidence is a thermodynamic-integration estimate of the log marginal
// likelihood, along with the per-rung mean log-likelihoods behind it.
type Evidence struct {
	LogZ     float64
	Betas    []float64
	MeanLogL []float64
}

// LogEvidence estimates the log marginal likelihood by thermodynamic
// integration: a tempered chain runs at every rung of the ladder and
// the mean log-likelihoods are integrated over beta with the
// trapezoidal rule. The ladder must rise from 0 to 1. Evidence is only
// defined when every free parameter carries finite bounds, since the
// uniform prior has to normalize.
func LogEvidence(p *Posterior, cfg Config, betas []float64) (*Evidence, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	nfree := p.Params.NFree()
	if err := cfg.Validate(nfree); err != nil {
		return nil, err
	}

	lo, hi := p.Params.FreeBounds()
	for j := range lo {
		if math.IsInf(lo[j], -1) || math.IsInf(hi[j], 1) {
			return nil, fmt.Errorf("%w: %q", ErrUnboundedPrior, p.Params.FreeNames()[j])
		}
	}
	if err := checkLadder(betas); err != nil {
		return nil, err
	}

	meanLogL := make([]float64, len(betas))
	for k, beta := range betas {
		src := rand.NewPCG(cfg.Seed, cfg.Seed+uint64(k))
		chain, err := runChain(p, cfg, beta, src)
		if err != nil {
			return nil, err
		}
		meanLogL[k] = chain.MeanLogLikelihood()
	}

	return &Evidence{
		LogZ:     integrate.Trapezoidal(betas, meanLogL),
		Betas:    append([]float64(nil), betas...),
		MeanLogL: meanLogL,
	}, nil
}

// DefaultLadder returns an n-rung inverse-temperature ladder with
// beta_k = (k/(n-1))^5, concentrated near 0 where the integrand of
// thermodynamic integration changes fastest.
func DefaultLadder(n int) []float64 {
	if n < 2 {
		n = 2
	}
	betas := make([]float64, n)
	for k := range betas {
		betas[k] = math.Pow(float64(k)/float64(n-1), 5)
	}
	return betas
}

func checkLadder(betas []float64) error {
	if len(betas) < 2 {
		return fmt.Errorf("%w: need at least 2 rungs, got %d", ErrBadLadder, len(betas))
	}
	if betas[0] != 0 || betas[len(betas)-1] != 1 {
		return fmt.Errorf("%w: must span 0 to 1", ErrBadLadder)
	}
	for i := 1; i < len(betas); i++ {
		if betas[i] <= betas[i-1] {
			return fmt.Errorf("%w: rungs must increase strictly", ErrBadLadder)
		}
	}
	return nil
}

// runChain samples one tempered chain and evaluates the untempered
// log-likelihood at every kept sample.
func runChain(p *Posterior, cfg Config, beta float64, src rand.Source) (*Chain, error) {
	nfree := p.Params.NFree()
	x0 := p.Params.FreeValues()

	sigma := cfg.StepScale
	if sigma == nil {
		sigma = defaultStepScale(p.Params)
	}

	cov := mat.NewSymDense(nfree, nil)
	for j, s := range sigma {
		cov.SetSym(j, j, s*s)
	}

	prop, err := samplemv.NewProposalNormal(cov, src)
	if err != nil {
		return nil, fmt.Errorf("mcmc: proposal construction failed: %w", err)
	}

	mh := samplemv.MetropolisHastings{
		Initial:  x0,
		Target:   tempered{p: p, beta: beta},
		Proposal: prop,
		Src:      src,
		BurnIn:   cfg.BurnIn,
		Rate:     cfg.Thin,
	}

	batch := mat.NewDense(cfg.Steps, nfree, nil)
	mh.Sample(batch)

	logL := make([]float64, cfg.Steps)
	row := make([]float64, nfree)
	for i := range logL {
		mat.Row(row, i, batch)
		ll, err := p.logLikeAt(row)
		if err != nil {
			return nil, err
		}
		logL[i] = ll
	}

	return &Chain{names: p.Params.FreeNames(), samples: batch, logL: logL}, nil
}

// defaultStepScale derives a proposal sigma per free parameter: a
// twentieth of the bracket for bounded parameters, a tenth of the
// magnitude otherwise.
func defaultStepScale(s *param.Set) []float64 {
	x0 := s.FreeValues()
	lo, hi := s.FreeBounds()
	out := make([]float64, len(x0))
	for j := range out {
		if !math.IsInf(lo[j], -1) && !math.IsInf(hi[j], 1) {
			out[j] = 0.05 * (hi[j] - lo[j])
		} else {
			out[j] = 0.1 * math.Max(math.Abs(x0[j]), 1)
		}
	}
	return out
}
