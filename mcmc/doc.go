// Package mcmc samples fit posteriors with Markov chain Monte Carlo
// and estimates model evidence by thermodynamic integration.
//
// A Posterior couples a parameter set with a data log-likelihood; the
// bounds of the set act as a uniform prior. Sample runs a random-walk
// Metropolis Hastings chain over the free parameters and returns a
// Chain with per-parameter summaries. LogEvidence repeats the sampling
// over a tempered ladder of inverse temperatures and integrates the
// mean log-likelihood over beta, yielding the log marginal likelihood
// that ranks competing models.
//
// # Usage
//
//	post := &mcmc.Posterior{
//		Params: set,
//		LogLikelihood: func(s *param.Set) (float64, error) {
//			m, err := peaks.FromParams(s)
//			if err != nil {
//				return 0, err
//			}
//			return m.LogLikelihood(x, y, dy)
//		},
//	}
//
//	cfg := mcmc.DefaultConfig(set.NFree())
//	chain, err := mcmc.Sample(post, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	loc, _ := chain.Mean("loc0")
//
//	ev, err := mcmc.LogEvidence(post, cfg, mcmc.DefaultLadder(8))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("log Z:", ev.LogZ)
package mcmc
