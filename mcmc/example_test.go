package mcmc_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fit/mcmc"
	"github.com/cwbudde/algo-fit/param"
)

func ExampleSample() {
	// Posterior of a standard normal likelihood under a flat prior.
	s := param.NewSet()
	s.Add(param.Bounded("c", 0, -10, 10))

	post := &mcmc.Posterior{
		Params: s,
		LogLikelihood: func(ps *param.Set) (float64, error) {
			c, err := ps.Value("c")
			if err != nil {
				return 0, err
			}
			return -0.5 * c * c, nil
		},
	}

	chain, err := mcmc.Sample(post, mcmc.Config{Steps: 4000, BurnIn: 1000, Thin: 1, Seed: 2})
	if err != nil {
		fmt.Println(err)
		return
	}

	mean, _ := chain.Mean("c")
	sd, _ := chain.StdDev("c")
	fmt.Println("samples:", chain.Len())
	fmt.Println("mean near zero:", math.Abs(mean) < 0.2)
	fmt.Println("std near one:", math.Abs(sd-1) < 0.2)

	// Output:
	// samples: 4000
	// mean near zero: true
	// std near one: true
}
