// Package fit drives nonlinear least squares refinement of bounded
// parameter sets.
//
// A Problem couples a parameter set with a residual function;
// CurveProblem and ComplexProblem build the residual for the two common
// data shapes. LeastSquares refines with Levenberg-Marquardt, Simplex
// with the derivative-free Nelder-Mead method, and MultiStart repeats
// Simplex from randomized points inside the parameter brackets to
// escape local minima. Box bounds are enforced by solving in a MINUIT
// style transformed coordinate space.
//
// Every driver returns a Result carrying the weighted residuals,
// chi-square statistics, information criteria and, when the Jacobian
// permits, parameter standard errors. DurbinWatson and Autocorrelation
// help judge whether the residuals are structureless.
//
// # Usage
//
//	guess, err := resonator.Guess(freqs, measured)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	prob, err := fit.ComplexProblem(guess, measured,
//		func(s *param.Set, dst []complex128) error {
//			m, err := resonator.FromParams(s)
//			if err != nil {
//				return err
//			}
//			return m.ResponseInto(dst, freqs)
//		})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := fit.LeastSquares(prob)
//	if err != nil {
//		log.Fatal(err)
//	}
//	res.Report(os.Stdout)
package fit
