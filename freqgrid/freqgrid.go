package freqgrid

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by grid constructors.
var (
	ErrInvalidFrequency = errors.New("freqgrid: frequency must be positive")
	ErrFrequencyOrder   = errors.New("freqgrid: start frequency must be less than end frequency")
	ErrInvalidPoints    = errors.New("freqgrid: point count must be at least 2")
)

// Grid is a description of a one-dimensional frequency axis that can
// materialize itself as a slice of sample frequencies.
type Grid interface {
	Validate() error
	Frequencies() ([]float64, error)
}

// Linear describes an evenly spaced frequency grid. The grid includes
// both endpoints.
type Linear struct {
	StartFreq float64 // start frequency in Hz
	EndFreq   float64 // end frequency in Hz
	Points    int     // number of grid points, including endpoints
}

// Validate checks that the Linear grid parameters are valid.
func (g *Linear) Validate() error {
	if g.StartFreq <= 0 || g.EndFreq <= 0 {
		return ErrInvalidFrequency
	}

	if g.StartFreq >= g.EndFreq {
		return ErrFrequencyOrder
	}

	if g.Points < 2 {
		return ErrInvalidPoints
	}

	return nil
}

// Step returns the spacing between adjacent grid points.
func (g *Linear) Step() float64 {
	return (g.EndFreq - g.StartFreq) / float64(g.Points-1)
}

// Frequencies materializes the grid.
//
// The points are evenly spaced:
//
//	f[i] = f1 + i * (f2-f1) / (n-1)
func (g *Linear) Frequencies() ([]float64, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return floats.Span(make([]float64, g.Points), g.StartFreq, g.EndFreq), nil
}

// Logarithmic describes a frequency grid with a constant ratio between
// adjacent points. The grid includes both endpoints.
type Logarithmic struct {
	StartFreq float64 // start frequency in Hz
	EndFreq   float64 // end frequency in Hz
	Points    int     // number of grid points, including endpoints
}

// Validate checks that the Logarithmic grid parameters are valid.
func (g *Logarithmic) Validate() error {
	if g.StartFreq <= 0 || g.EndFreq <= 0 {
		return ErrInvalidFrequency
	}

	if g.StartFreq >= g.EndFreq {
		return ErrFrequencyOrder
	}

	if g.Points < 2 {
		return ErrInvalidPoints
	}

	return nil
}

// Frequencies materializes the grid.
//
// The points are exponentially spaced so that each step multiplies the
// frequency by the same ratio:
//
//	f[i] = f1 * (f2/f1)^(i/(n-1))
func (g *Logarithmic) Frequencies() ([]float64, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return floats.LogSpan(make([]float64, g.Points), g.StartFreq, g.EndFreq), nil
}

// Around returns a linear grid of the given width centered on a frequency.
// This is the usual shape for scanning a narrow resonance: the span is
// split symmetrically around the center.
func Around(center, span float64, points int) *Linear {
	return &Linear{
		StartFreq: center - span/2,
		EndFreq:   center + span/2,
		Points:    points,
	}
}
