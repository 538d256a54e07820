package fit

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/stat"
)

// DurbinWatson returns the Durbin-Watson statistic of a residual
// sequence,
//
//	sum((r[i]-r[i-1])^2) / sum(r^2)
//
// Values near 2 indicate uncorrelated residuals; values toward 0 or 4
// indicate positive or negative serial correlation, a hint that the
// model misses structure. Input with zero residual sum of squares
// yields NaN following floating-point semantics.
func DurbinWatson(resid []float64) float64 {
	var num, den float64
	for i, r := range resid {
		den += r * r
		if i > 0 {
			d := r - resid[i-1]
			num += d * d
		}
	}
	return num / den
}

// Autocorrelation returns the normalized autocorrelation of a residual
// sequence for lags 0 through maxLag. The sequence is demeaned, zero
// padded to avoid circular wraparound and correlated through the FFT;
// lag 0 normalizes to 1.
func Autocorrelation(resid []float64, maxLag int) ([]float64, error) {
	n := len(resid)
	if n == 0 {
		return nil, ErrNoData
	}
	if maxLag < 0 || maxLag >= n {
		return nil, fmt.Errorf("fit: autocorrelation lag out of range: %d with %d residuals", maxLag, n)
	}

	mean := stat.Mean(resid, nil)

	size := nextPowerOf2(2 * n)
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fit: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, size)
	for i, v := range resid {
		padded[i] = complex(v-mean, 0)
	}

	freq := make([]complex128, size)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("fit: forward FFT failed: %w", err)
	}

	// Power spectrum; its inverse transform is the autocovariance.
	for i, c := range freq {
		re := real(c)
		im := imag(c)
		freq[i] = complex(re*re+im*im, 0)
	}

	corr := make([]complex128, size)
	if err := plan.Inverse(corr, freq); err != nil {
		return nil, fmt.Errorf("fit: inverse FFT failed: %w", err)
	}

	lag0 := real(corr[0])
	if lag0 == 0 {
		return nil, fmt.Errorf("fit: residuals have zero variance")
	}

	out := make([]float64, maxLag+1)
	for i := range out {
		out[i] = real(corr[i]) / lag0
	}
	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
