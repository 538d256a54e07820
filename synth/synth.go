package synth

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/algo-fit/peaks"
	"github.com/cwbudde/algo-fit/resonator"
)

// Generator creates deterministic synthetic measurements from a shared
// seed. The same generator produces the same noise on every call.
type Generator struct {
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured measurement generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Resonator simulates a scan of a resonator over a frequency grid.
// Gaussian noise of the given sigma is added independently to the real
// and imaginary parts of each sample. A sigma of zero returns the exact
// model response.
func (g *Generator) Resonator(m resonator.Model, freq []float64, sigma float64) ([]complex128, error) {
	if len(freq) == 0 {
		return nil, fmt.Errorf("scan grid must not be empty")
	}
	if sigma < 0 {
		return nil, fmt.Errorf("scan noise sigma must be >= 0: %f", sigma)
	}

	out := m.Response(freq)
	if sigma == 0 {
		return out, nil
	}

	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewPCG(g.seed, g.seed)}
	for i := range out {
		out[i] += complex(noise.Rand(), noise.Rand())
	}
	return out, nil
}

// Peaks simulates a counting trace of a peak model over x. Each point
// carries its own uncertainty
//
//	dy[i] = sigma + spread*u[i],   u ~ U(0,1)
//	 y[i] = g(x[i]) + dy[i]*n[i],  n ~ N(0,1)
//
// so the returned trace is exactly consistent with the heteroscedastic
// Gaussian noise model the likelihood assumes.
func (g *Generator) Peaks(m peaks.Model, x []float64, sigma, spread float64) (y, dy []float64, err error) {
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("trace grid must not be empty")
	}
	if sigma <= 0 {
		return nil, nil, fmt.Errorf("trace sigma must be > 0: %f", sigma)
	}
	if spread < 0 {
		return nil, nil, fmt.Errorf("trace sigma spread must be >= 0: %f", spread)
	}

	src := rand.NewPCG(g.seed, g.seed)
	uni := distuv.Uniform{Min: 0, Max: 1, Src: src}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	y = m.Curve(x)
	dy = make([]float64, len(x))
	for i := range x {
		dy[i] = sigma + spread*uni.Rand()
		y[i] += dy[i] * normal.Rand()
	}
	return y, dy, nil
}
