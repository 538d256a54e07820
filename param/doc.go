// Package param provides named, bounded model parameters and the ordered
// sets that fitters and samplers operate on.
//
// A Param couples a name with a value, box bounds and a fixed-or-free
// flag. A Set keeps parameters in insertion order and exposes the varying
// subset as a flat vector, which is the representation optimizers and
// samplers exchange. Models build their parameter sets here, hand them to
// the fit or mcmc packages, and read fitted values back by name.
//
// # Usage
//
//	s := param.NewSet()
//	s.Add(param.Bounded("f_0", 5e9, 4.9e9, 5.1e9))
//	s.Add(param.Bounded("Q", 1e4, 1e3, 1e6))
//	s.Add(param.Fixed("Q_e_imag", 0))
//
//	x := s.FreeValues() // [5e9, 1e4]
//	// ... optimizer adjusts x ...
//	s.SetFreeValues(x)
package param
