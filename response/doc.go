// Package response converts complex transmission traces into the real
// quantities that fitting and reporting work with.
//
// Magnitude and Power use SIMD-accelerated kernels and pooled scratch
// buffers; MagnitudeDB, Phase, PhaseDegrees and UnwrapPhase cover the
// usual display transforms for S-parameter data.
package response
