package mcmc

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Chain holds the kept posterior samples, one row per step and one
// column per free parameter in set order.
type Chain struct {
	names   []string
	samples *mat.Dense
	logL    []float64
}

// Len returns the number of kept samples.
func (c *Chain) Len() int {
	r, _ := c.samples.Dims()
	return r
}

// Names returns the sampled parameter names in column order.
func (c *Chain) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Chain) column(name string) ([]float64, error) {
	for j, n := range c.names {
		if n == name {
			out := make([]float64, c.Len())
			mat.Col(out, j, c.samples)
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// Param returns the sample trace of one parameter.
func (c *Chain) Param(name string) ([]float64, error) {
	return c.column(name)
}

// Mean returns the posterior mean of one parameter.
func (c *Chain) Mean(name string) (float64, error) {
	col, err := c.column(name)
	if err != nil {
		return 0, err
	}
	return stat.Mean(col, nil), nil
}

// StdDev returns the posterior standard deviation of one parameter.
func (c *Chain) StdDev(name string) (float64, error) {
	col, err := c.column(name)
	if err != nil {
		return 0, err
	}
	return stat.StdDev(col, nil), nil
}

// Quantile returns the q-th empirical quantile of one parameter, with
// q in [0, 1].
func (c *Chain) Quantile(name string, q float64) (float64, error) {
	if q < 0 || q > 1 {
		return 0, fmt.Errorf("mcmc: quantile must be in [0, 1]: %g", q)
	}
	col, err := c.column(name)
	if err != nil {
		return 0, err
	}
	sort.Float64s(col)
	return stat.Quantile(q, stat.Empirical, col, nil), nil
}

// MeanLogLikelihood returns the average log-likelihood over the chain,
// the integrand of thermodynamic integration.
func (c *Chain) MeanLogLikelihood() float64 {
	return stat.Mean(c.logL, nil)
}
