package fit

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-fit/param"
)

// relStep is the relative step used for the numerical Jacobian behind
// the covariance estimate.
const relStep = 1e-8

// Result holds the outcome of a fit. The parameter set is the same one
// the problem was built with; the solver has written the fitted values
// into it.
type Result struct {
	Params     *param.Set
	Method     string
	Residuals  []float64 // weighted residuals at the solution
	ChiSquare  float64   // sum of squared residuals
	RedChi     float64   // chi-square per degree of freedom
	AIC        float64   // Akaike information criterion
	BIC        float64   // Bayesian information criterion
	NData      int
	NFree      int
	Stderr     map[string]float64 // per free parameter; nil when unavailable
	Covariance *mat.Dense         // free-parameter covariance; nil when singular
}

// newResult computes the post-fit statistics for the solution currently
// stored in the problem's parameter set.
func newResult(p *Problem, method string) (*Result, error) {
	resid := make([]float64, p.Size)
	if err := p.Residuals(resid, p.Params.Clone()); err != nil {
		return nil, err
	}

	chi2 := floats.Dot(resid, resid)
	n := float64(p.Size)
	nfree := p.Params.NFree()

	dof := p.Size - nfree
	if dof < 1 {
		dof = 1
	}

	// Information criteria as derived for Gaussian residuals:
	// -2 log L = n log(chi2/n) up to a constant.
	neg2LogL := n * math.Log(chi2/n)

	r := &Result{
		Params:    p.Params,
		Method:    method,
		Residuals: resid,
		ChiSquare: chi2,
		RedChi:    chi2 / float64(dof),
		AIC:       neg2LogL + 2*float64(nfree),
		BIC:       neg2LogL + math.Log(n)*float64(nfree),
		NData:     p.Size,
		NFree:     nfree,
	}

	r.estimateUncertainties(p)
	return r, nil
}

// estimateUncertainties fills Stderr and Covariance from the numerical
// Jacobian at the solution. Failure to do so, typically because the
// Jacobian is rank deficient, leaves both nil.
func (r *Result) estimateUncertainties(p *Problem) {
	nfree := r.NFree
	x0 := p.Params.FreeValues()
	lo, hi := p.Params.FreeBounds()

	jac := mat.NewDense(p.Size, nfree, nil)
	scratch := p.Params.Clone()
	pert := make([]float64, p.Size)
	x := make([]float64, nfree)

	for j := 0; j < nfree; j++ {
		h := relStep * math.Max(math.Abs(x0[j]), 1)
		if x0[j]+h > hi[j] {
			h = -h
		}
		if x0[j]+h < lo[j] {
			return
		}

		copy(x, x0)
		x[j] += h
		if err := scratch.SetFreeValues(x); err != nil {
			return
		}
		if err := p.Residuals(pert, scratch); err != nil {
			return
		}
		for i := 0; i < p.Size; i++ {
			jac.Set(i, j, (pert[i]-r.Residuals[i])/h)
		}
	}

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		return
	}

	cov := mat.NewDense(nfree, nfree, nil)
	cov.Scale(r.RedChi, &inv)
	r.Covariance = cov

	names := p.Params.FreeNames()
	r.Stderr = make(map[string]float64, nfree)
	for i, name := range names {
		v := cov.At(i, i)
		if v < 0 {
			v = 0
		}
		r.Stderr[name] = math.Sqrt(v)
	}
}

// Report writes a human-readable fit summary to w.
func (r *Result) Report(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintf(tw, "method\t%s\n", r.Method)
	fmt.Fprintf(tw, "data points\t%d\n", r.NData)
	fmt.Fprintf(tw, "free parameters\t%d\n", r.NFree)
	fmt.Fprintf(tw, "chi-square\t%.6g\n", r.ChiSquare)
	fmt.Fprintf(tw, "reduced chi-square\t%.6g\n", r.RedChi)
	fmt.Fprintf(tw, "AIC\t%.6g\n", r.AIC)
	fmt.Fprintf(tw, "BIC\t%.6g\n", r.BIC)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "name\tvalue\tstderr\tbounds\n")
	for _, p := range r.Params.Params() {
		if !p.Vary {
			fmt.Fprintf(tw, "%s\t%.6g\t(fixed)\t\n", p.Name, p.Value)
			continue
		}
		se := "-"
		if s, ok := r.Stderr[p.Name]; ok {
			se = fmt.Sprintf("%.3g", s)
		}
		fmt.Fprintf(tw, "%s\t%.6g\t%s\t[%g, %g]\n", p.Name, p.Value, se, p.Min, p.Max)
	}
	return tw.Flush()
}
