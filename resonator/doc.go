// Package resonator models the complex transmission of a notch-type
// microwave resonator and estimates starting parameters from measured
// traces.
//
// The model follows the standard hanger geometry: a resonance at f_0
// with loaded quality factor Q and complex external quality factor Qe
// produces a dip in S21 whose depth and asymmetry encode the coupling.
// Guess implements a grid-based heuristic that brackets Q between the
// values resolvable by the scan span and the scan step, which makes a
// robust starting point for least squares refinement.
//
// # Usage
//
//	m := resonator.Model{F0: 5.0e9, Q: 1.2e4, QeReal: 2.1e4}
//	s21 := m.Response(freqs)
//
//	// Starting values for a fit of measured data:
//	guess, err := resonator.Guess(freqs, measured)
package resonator
