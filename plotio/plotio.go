package plotio

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Errors returned by the plot writers.
var (
	ErrNoSeries       = errors.New("plotio: no series to plot")
	ErrNoValues       = errors.New("plotio: no values to plot")
	ErrLengthMismatch = errors.New("plotio: x and y lengths differ")
)

// Series is one named trace over a shared axis.
type Series struct {
	Name string
	X, Y []float64
}

func (s Series) check() error {
	if len(s.X) == 0 {
		return fmt.Errorf("%w: series %q", ErrNoValues, s.Name)
	}
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("%w: series %q has x=%d y=%d", ErrLengthMismatch, s.Name, len(s.X), len(s.Y))
	}
	return nil
}

func xyPoints(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return pts
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// Lines writes a PNG with one line per series.
func Lines(path, title, xLabel, yLabel string, series ...Series) error {
	if len(series) == 0 {
		return ErrNoSeries
	}

	p := newPlot(title, xLabel, yLabel)
	for i, s := range series {
		if err := s.check(); err != nil {
			return err
		}
		line, err := plotter.NewLine(xyPoints(s.X, s.Y))
		if err != nil {
			return fmt.Errorf("plotio: line %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("plotio: save %s: %w", path, err)
	}
	return nil
}

// FitOverlay writes a PNG with the measured points as a scatter and the
// fitted curve as a line over them.
func FitOverlay(path, title, xLabel, yLabel string, x, y, fitted []float64) error {
	if len(x) == 0 {
		return ErrNoValues
	}
	if len(x) != len(y) || len(x) != len(fitted) {
		return fmt.Errorf("%w: x=%d y=%d fitted=%d", ErrLengthMismatch, len(x), len(y), len(fitted))
	}

	p := newPlot(title, xLabel, yLabel)

	sc, err := plotter.NewScatter(xyPoints(x, y))
	if err != nil {
		return fmt.Errorf("plotio: scatter: %w", err)
	}
	sc.GlyphStyle.Color = plotutil.Color(0)
	sc.GlyphStyle.Radius = vg.Points(2)

	line, err := plotter.NewLine(xyPoints(x, fitted))
	if err != nil {
		return fmt.Errorf("plotio: fit line: %w", err)
	}
	line.Color = plotutil.Color(1)
	line.Width = vg.Points(1.5)

	p.Add(sc, line)
	p.Legend.Add("data", sc)
	p.Legend.Add("fit", line)
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("plotio: save %s: %w", path, err)
	}
	return nil
}

// Histogram writes a PNG histogram of values, the marginal view used
// for posterior samples.
func Histogram(path, title string, values []float64, bins int) error {
	if len(values) == 0 {
		return ErrNoValues
	}
	if bins < 1 {
		return fmt.Errorf("plotio: bin count must be >= 1: %d", bins)
	}

	p := newPlot(title, "value", "count")

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("plotio: histogram: %w", err)
	}
	h.FillColor = plotutil.Color(0)
	p.Add(h)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("plotio: save %s: %w", path, err)
	}
	return nil
}
