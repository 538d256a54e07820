// Package peaks models a linear background with a variable number of
// Gaussian components, the generative model used for counting peaks in
// noisy traces.
//
// The peak count is the model-selection variable: each added peak
// introduces an (a_max{i}, loc{i}, sd{i}) parameter triple. Candidate
// counts are fitted or sampled independently and ranked by evidence; the
// model itself only provides the curve, the weighted residuals and the
// Gaussian log-likelihood that those stages consume.
//
// # Usage
//
//	s, err := peaks.InitialParams(x, y, 2)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	m, err := peaks.FromParams(s)
//	if err != nil {
//		log.Fatal(err)
//	}
//	ll, err := m.LogLikelihood(x, y, dy)
package peaks
