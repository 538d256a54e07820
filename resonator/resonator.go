package resonator

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-fit/param"
	"github.com/cwbudde/algo-fit/response"
)

// Parameter names used by Params, FromParams and Guess.
const (
	ParamF0     = "f_0"
	ParamQ      = "Q"
	ParamQeReal = "Q_e_real"
	ParamQeImag = "Q_e_imag"
)

// Errors returned by resonator functions.
var (
	ErrNonPositiveF0  = errors.New("resonator: resonance frequency must be positive")
	ErrNegativeQ      = errors.New("resonator: quality factor must not be negative")
	ErrZeroQe         = errors.New("resonator: external quality factor must not be zero")
	ErrLengthMismatch = errors.New("resonator: frequency and data lengths differ")
	ErrTooFewPoints   = errors.New("resonator: guess requires at least 2 points")
	ErrNoPositiveStep = errors.New("resonator: frequency grid has no positive step")
)

// Model describes the complex transmission past a notch-type resonator
// coupled to a feed line.
//
// The transmission at frequency f is
//
//	S21(f) = 1 - (Q/Qe) / (1 + 2i*Q*(f-f_0)/f_0)
//
// where Qe = QeReal + i*QeImag is the external quality factor of the
// coupling and Q the total (loaded) quality factor. Far from resonance
// the transmission approaches unity; at f = f_0 it dips to 1 - Q/Qe.
type Model struct {
	F0     float64 // resonance frequency in Hz
	Q      float64 // total (loaded) quality factor
	QeReal float64 // real part of the external quality factor
	QeImag float64 // imaginary part of the external quality factor
}

// Validate checks that the model parameters are physical: positive
// resonance frequency, non-negative Q and a non-zero external quality
// factor. Evaluation itself never calls this; degenerate parameters
// propagate through the arithmetic as infinities or NaNs. Callers that
// want to reject them up front, typically before starting a fit, use
// Validate.
func (m Model) Validate() error {
	if m.F0 <= 0 {
		return ErrNonPositiveF0
	}

	if m.Q < 0 {
		return ErrNegativeQ
	}

	if m.QeReal == 0 && m.QeImag == 0 {
		return ErrZeroQe
	}

	return nil
}

// S21 evaluates the complex transmission at a single frequency.
func (m Model) S21(f float64) complex128 {
	qe := complex(m.QeReal, m.QeImag)
	den := complex(1, 2*m.Q*(f-m.F0)/m.F0)
	return 1 - complex(m.Q, 0)/qe/den
}

// Response evaluates the complex transmission over a frequency grid.
func (m Model) Response(freq []float64) []complex128 {
	out := make([]complex128, len(freq))
	m.responseInto(out, freq)
	return out
}

// ResponseInto evaluates the complex transmission over a frequency grid
// into dst. dst and freq must have the same length.
func (m Model) ResponseInto(dst []complex128, freq []float64) error {
	if len(dst) != len(freq) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(dst), len(freq))
	}

	m.responseInto(dst, freq)
	return nil
}

func (m Model) responseInto(dst []complex128, freq []float64) {
	qOverQe := complex(m.Q, 0) / complex(m.QeReal, m.QeImag)
	slope := 2 * m.Q / m.F0

	for i, f := range freq {
		den := complex(1, slope*(f-m.F0))
		dst[i] = 1 - qOverQe/den
	}
}

// FWHM returns the full width at half maximum of the resonance dip,
// f_0/Q.
func (m Model) FWHM() float64 {
	return m.F0 / m.Q
}

// InternalQ returns the internal (unloaded) quality factor implied by
// the loaded and external quality factors through
//
//	1/Q = 1/Qi + Re(1/Qe)
func (m Model) InternalQ() float64 {
	qe := complex(m.QeReal, m.QeImag)
	return 1 / (1/m.Q - real(1/qe))
}

// Params returns the model's parameter set, seeded from the current
// field values: f_0, Q, Q_e_real and Q_e_imag in that order. Q carries a
// lower bound of zero; the other parameters are unconstrained.
func (m Model) Params() (*param.Set, error) {
	s := param.NewSet()

	if err := s.Add(param.Free(ParamF0, m.F0)); err != nil {
		return nil, err
	}
	if err := s.Add(param.Bounded(ParamQ, m.Q, 0, math.Inf(1))); err != nil {
		return nil, err
	}
	if err := s.Add(param.Free(ParamQeReal, m.QeReal)); err != nil {
		return nil, err
	}
	if err := s.Add(param.Free(ParamQeImag, m.QeImag)); err != nil {
		return nil, err
	}

	return s, nil
}

// FromParams builds a model from a parameter set holding the four
// resonator parameters.
func FromParams(s *param.Set) (Model, error) {
	var m Model
	var err error

	if m.F0, err = s.Value(ParamF0); err != nil {
		return Model{}, err
	}
	if m.Q, err = s.Value(ParamQ); err != nil {
		return Model{}, err
	}
	if m.QeReal, err = s.Value(ParamQeReal); err != nil {
		return Model{}, err
	}
	if m.QeImag, err = s.Value(ParamQeImag); err != nil {
		return Model{}, err
	}

	return m, nil
}

// guessConfig holds options for Guess.
type guessConfig struct {
	diag io.Writer
}

// GuessOption configures the behavior of Guess.
type GuessOption func(*guessConfig)

// WithDiagnostics makes Guess print the intermediate quantities of the
// heuristic to w.
func WithDiagnostics(w io.Writer) GuessOption {
	return func(c *guessConfig) { c.diag = w }
}

// Guess estimates starting parameters for a fit from a measured trace.
//
// The resonance frequency is taken at the deepest point of |data|. The
// spanned band limits Q from below (a dip much wider than the scan is
// not resolvable) and the finest grid step limits it from above; the
// guess takes the geometric mean of the two:
//
//	Q_min = 0.1 * f_0 / (fmax - fmin)
//	Q_max = f_0 / min positive step
//	Q     = sqrt(Q_min * Q_max)
//
// The dip depth then fixes the external coupling through the on-resonance
// transmission 1 - Q/Qe, giving Q_e_real = Q / (1 - |dip|) with
// Q_e_imag starting at zero.
//
// The returned set bounds f_0 to the scanned band and Q to
// [Q_min, Q_max]. freq is expected in ascending acquisition order with
// at least two points; a scrambled sweep still resolves the dip (it is
// keyed by index) but may misjudge the finest step and with it Q_max.
func Guess(freq []float64, data []complex128, opts ...GuessOption) (*param.Set, error) {
	var cfg guessConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(freq) != len(data) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(freq), len(data))
	}

	if len(freq) < 2 {
		return nil, ErrTooFewPoints
	}

	minStep := math.Inf(1)
	for i := 1; i < len(freq); i++ {
		if d := freq[i] - freq[i-1]; d > 0 && d < minStep {
			minStep = d
		}
	}
	if math.IsInf(minStep, 1) {
		return nil, ErrNoPositiveStep
	}

	mag := response.Magnitude(data)
	argmin := floats.MinIdx(mag)
	f0 := freq[argmin]
	dip := mag[argmin]

	fmin := floats.Min(freq)
	fmax := floats.Max(freq)

	qMin := 0.1 * f0 / (fmax - fmin)
	qMax := f0 / minStep
	q := math.Sqrt(qMin * qMax)
	qeReal := q / (1 - dip)

	if cfg.diag != nil {
		fmt.Fprintf(cfg.diag, "fmin=%g fmax=%g f_0=%g\n", fmin, fmax, f0)
		fmt.Fprintf(cfg.diag, "Q_min=%g Q_max=%g Q=%g Q_e_real=%g\n", qMin, qMax, q, qeReal)
	}

	s := param.NewSet()

	if err := s.Add(param.Bounded(ParamF0, f0, fmin, fmax)); err != nil {
		return nil, err
	}
	if err := s.Add(param.Bounded(ParamQ, q, qMin, qMax)); err != nil {
		return nil, err
	}
	if err := s.Add(param.Free(ParamQeReal, qeReal)); err != nil {
		return nil, err
	}
	if err := s.Add(param.Free(ParamQeImag, 0)); err != nil {
		return nil, err
	}

	return s, nil
}
