// Command resfit fits the complex resonator transmission model to a
// synthetic scan and reports the recovered parameters.
//
// Usage:
//
//	resfit [flags]
//
// A scan of the configured true model is generated with complex
// Gaussian noise, the initial guess is derived from the scan itself and
// refined by Levenberg-Marquardt. The fit report goes to stdout.
//
// Examples:
//
//	resfit
//	resfit -f0 1e9 -q 5e4 -qe-real 6e4 -points 401 -sigma 0.002
//	resfit -v -plots -html -out results
package main

import (
	"flag"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/cwbudde/algo-fit/fit"
	"github.com/cwbudde/algo-fit/freqgrid"
	"github.com/cwbudde/algo-fit/param"
	"github.com/cwbudde/algo-fit/plotio"
	"github.com/cwbudde/algo-fit/resonator"
	"github.com/cwbudde/algo-fit/response"
	"github.com/cwbudde/algo-fit/synth"
)

type scanConfig struct {
	truth  resonator.Model
	span   float64
	points int
	sigma  float64
	seed   uint64

	outDir  string
	plots   bool
	html    bool
	verbose bool
}

func main() {
	var cfg scanConfig

	flag.Float64Var(&cfg.truth.F0, "f0", 1e9, "true resonance frequency in Hz")
	flag.Float64Var(&cfg.truth.Q, "q", 1e4, "true loaded quality factor")
	flag.Float64Var(&cfg.truth.QeReal, "qe-real", 9e3, "real part of the true coupling quality factor")
	flag.Float64Var(&cfg.truth.QeImag, "qe-imag", -9e3, "imaginary part of the true coupling quality factor")

	flag.Float64Var(&cfg.span, "span", 0, "scan span in Hz (0 picks ten linewidths)")
	flag.IntVar(&cfg.points, "points", 201, "scan points")
	flag.Float64Var(&cfg.sigma, "sigma", 0.001, "noise sigma per quadrature")
	flag.Uint64Var(&cfg.seed, "seed", 1, "noise seed")

	flag.StringVar(&cfg.outDir, "out", ".", "output directory for plots")
	flag.BoolVar(&cfg.plots, "plots", false, "write the magnitude fit as PNG")
	flag.BoolVar(&cfg.html, "html", false, "write an interactive HTML report")
	flag.BoolVar(&cfg.verbose, "v", false, "print guess diagnostics to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: resfit [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Fits the resonator transmission model to a synthetic noisy scan.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  resfit\n")
		fmt.Fprintf(os.Stderr, "  resfit -f0 1e9 -q 5e4 -qe-real 6e4 -points 401 -sigma 0.002\n")
		fmt.Fprintf(os.Stderr, "  resfit -v -plots -html -out results\n")
	}
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg scanConfig) error {
	if err := cfg.truth.Validate(); err != nil {
		return err
	}
	if cfg.span == 0 {
		cfg.span = 10 * cfg.truth.FWHM()
	}

	freqs, err := freqgrid.Around(cfg.truth.F0, cfg.span, cfg.points).Frequencies()
	if err != nil {
		return err
	}

	gen := synth.NewGenerator(synth.WithSeed(cfg.seed))
	data, err := gen.Resonator(cfg.truth, freqs, cfg.sigma)
	if err != nil {
		return err
	}

	var guessOpts []resonator.GuessOption
	if cfg.verbose {
		guessOpts = append(guessOpts, resonator.WithDiagnostics(os.Stderr))
	}
	guess, err := resonator.Guess(freqs, data, guessOpts...)
	if err != nil {
		return err
	}

	prob, err := fit.ComplexProblem(guess, data, func(s *param.Set, dst []complex128) error {
		m, err := resonator.FromParams(s)
		if err != nil {
			return err
		}
		return m.ResponseInto(dst, freqs)
	})
	if err != nil {
		return err
	}

	res, err := fit.LeastSquares(prob)
	if err != nil {
		return err
	}

	if err := res.Report(os.Stdout); err != nil {
		return err
	}

	fitted, err := resonator.FromParams(res.Params)
	if err != nil {
		return err
	}
	if err := printDerived(os.Stdout, fitted); err != nil {
		return err
	}

	if cfg.plots || cfg.html {
		if err := writePlots(cfg, freqs, data, fitted); err != nil {
			return err
		}
	}
	return nil
}

func printDerived(w io.Writer, m resonator.Model) error {
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("writing derived values: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	rows := [][2]string{
		{"FWHM", fmt.Sprintf("%.6g", m.FWHM())},
		{"internal Q", fmt.Sprintf("%.6g", m.InternalQ())},
		{"|S21| at resonance", fmt.Sprintf("%.6g", cmplx.Abs(m.S21(m.F0)))},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1]); err != nil {
			return fmt.Errorf("writing derived values: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing derived values: %w", err)
	}
	return nil
}

func writePlots(cfg scanConfig, freqs []float64, data []complex128, fitted resonator.Model) error {
	if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	measured := response.Magnitude(data)
	model := response.Magnitude(fitted.Response(freqs))

	if cfg.plots {
		path := filepath.Join(cfg.outDir, "resfit.png")
		if err := plotio.FitOverlay(path, "resonator fit", "frequency [Hz]", "|S21|", freqs, measured, model); err != nil {
			return err
		}
		fmt.Println("wrote", path)
	}

	if cfg.html {
		resid := make([]float64, len(measured))
		for i := range resid {
			resid[i] = measured[i] - model[i]
		}
		path := filepath.Join(cfg.outDir, "resfit.html")
		if err := plotio.HTMLReport(path, "resonator fit", freqs, measured, model, resid); err != nil {
			return err
		}
		fmt.Println("wrote", path)
	}
	return nil
}
