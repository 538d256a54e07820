// Package freqgrid builds the frequency axes that measurements and model
// evaluations share.
//
// Linear grids space points evenly, Logarithmic grids space them with a
// constant ratio between neighbors. Both include their endpoints and
// validate their parameters before materializing. Around is a shorthand
// for the common case of a narrow linear scan centered on a resonance.
//
// # Usage
//
//	grid := freqgrid.Around(5.0e9, 2.0e6, 401)
//	freqs, err := grid.Frequencies()
//	if err != nil {
//		log.Fatal(err)
//	}
package freqgrid
