package resonator_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-fit/freqgrid"
	"github.com/cwbudde/algo-fit/resonator"
)

func ExampleModel_S21() {
	m := resonator.Model{F0: 1e9, Q: 100, QeReal: 200}

	fmt.Printf("on resonance:  %.3f\n", cmplx.Abs(m.S21(1e9)))
	fmt.Printf("off resonance: %.3f\n", cmplx.Abs(m.S21(2e9)))

	// Output:
	// on resonance:  0.500
	// off resonance: 1.000
}

func ExampleGuess() {
	// Simulate a scan of a resonance at 1 GHz with a 50% deep dip.
	m := resonator.Model{F0: 1e9, Q: 200, QeReal: 400}

	freqs, err := freqgrid.Around(1e9, 2e7, 201).Frequencies()
	if err != nil {
		fmt.Println(err)
		return
	}
	trace := m.Response(freqs)

	guess, err := resonator.Guess(freqs, trace)
	if err != nil {
		fmt.Println(err)
		return
	}

	f0, _ := guess.Value("f_0")
	q, _ := guess.Value("Q")
	qe, _ := guess.Value("Q_e_real")
	fmt.Printf("f_0 = %.0f\n", f0)
	fmt.Printf("Q = %.1f\n", q)
	fmt.Printf("Q_e_real = %.1f\n", qe)

	// Output:
	// f_0 = 1000000000
	// Q = 223.6
	// Q_e_real = 447.2
}
