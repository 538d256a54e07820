package mcmc

import (
	"testing"

	"github.com/cwbudde/algo-fit/fit"
	"github.com/cwbudde/algo-fit/param"
	"github.com/cwbudde/algo-fit/peaks"
	"github.com/cwbudde/algo-fit/synth"
)

// evidenceFor fits one candidate peak count and estimates its log
// evidence, the way the model-selection pipeline does.
func evidenceFor(t *testing.T, x, y, dy []float64, count int) (logZ, chi2 float64) {
	t.Helper()

	s, err := peaks.InitialParams(x, y, count)
	if err != nil {
		t.Fatalf("InitialParams(%d) error = %v", count, err)
	}
	prob, err := fit.CurveProblem(s, y, dy, func(s *param.Set, dst []float64) error {
		m, err := peaks.FromParams(s)
		if err != nil {
			return err
		}
		return m.CurveInto(dst, x)
	})
	if err != nil {
		t.Fatalf("CurveProblem(%d) error = %v", count, err)
	}
	res, err := fit.MultiStart(prob, fit.WithSeed(1), fit.WithMaxIterations(4000))
	if err != nil {
		t.Fatalf("MultiStart(%d) error = %v", count, err)
	}

	post := &Posterior{
		Params: res.Params,
		LogLikelihood: func(s *param.Set) (float64, error) {
			m, err := peaks.FromParams(s)
			if err != nil {
				return 0, err
			}
			return m.LogLikelihood(x, y, dy)
		},
	}
	cfg := Config{Steps: 1500, BurnIn: 400, Thin: 1, Seed: 5}
	ev, err := LogEvidence(post, cfg, DefaultLadder(6))
	if err != nil {
		t.Fatalf("LogEvidence(%d) error = %v", count, err)
	}
	return ev.LogZ, res.ChiSquare
}

func TestEvidencePrefersTruePeakCount(t *testing.T) {
	// One tall peak on a linear background. A peakless model cannot
	// absorb it, so both the fit quality and the evidence must favor
	// the one-peak hypothesis by a wide margin.
	truth := peaks.Model{
		A: 0.5, B: 1.05,
		Peaks: []peaks.Component{{Amp: 20, Loc: 5, SD: 0.4}},
	}
	x := make([]float64, 81)
	for i := range x {
		x[i] = 10 * float64(i) / float64(len(x)-1)
	}

	y, dy, err := synth.NewGenerator(synth.WithSeed(3)).Peaks(truth, x, 1, 0.5)
	if err != nil {
		t.Fatalf("Peaks() error = %v", err)
	}

	logZ0, chi20 := evidenceFor(t, x, y, dy, 0)
	logZ1, chi21 := evidenceFor(t, x, y, dy, 1)

	if chi21 >= chi20 {
		t.Errorf("chi2 with peak = %g, without = %g, want the peak model to fit better", chi21, chi20)
	}
	if logZ1 <= logZ0+10 {
		t.Errorf("logZ with peak = %g, without = %g, want a decisive evidence gap", logZ1, logZ0)
	}
}
