// Package synth generates reproducible synthetic measurements for
// exercising the fitting and sampling pipelines.
//
// A Generator seeds its noise deterministically, so tests and demos can
// assert against stable data. Resonator scans receive independent
// Gaussian noise on the real and imaginary quadratures; peak traces
// receive heteroscedastic noise together with the matching per-point
// uncertainties.
package synth
