package plotio

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLReport writes an interactive fit report page: measured data with
// the fitted curve on top, and the residuals underneath.
func HTMLReport(path, title string, x, y, fitted, resid []float64) error {
	if len(x) == 0 {
		return ErrNoValues
	}
	if len(x) != len(y) || len(x) != len(fitted) || len(x) != len(resid) {
		return fmt.Errorf("%w: x=%d y=%d fitted=%d resid=%d",
			ErrLengthMismatch, len(x), len(y), len(fitted), len(resid))
	}

	xs := make([]string, len(x))
	dataPts := make([]opts.LineData, len(x))
	fitPts := make([]opts.LineData, len(x))
	residPts := make([]opts.ScatterData, len(x))
	for i := range x {
		xs[i] = strconv.FormatFloat(x[i], 'g', 6, 64)
		dataPts[i] = opts.LineData{Value: y[i]}
		fitPts[i] = opts.LineData{Value: fitted[i]}
		residPts[i] = opts.ScatterData{Value: []interface{}{x[i], resid[i]}}
	}

	fitChart := charts.NewLine()
	fitChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "measured data and fitted curve"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y"}),
	)
	fitChart.SetXAxis(xs).
		AddSeries("data", dataPts).
		AddSeries("fit", fitPts)

	residChart := charts.NewScatter()
	residChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "300px"}),
		charts.WithTitleOpts(opts.Title{Title: "Residuals"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "data - fit"}),
	)
	residChart.AddSeries("residuals", residPts,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))

	page := components.NewPage()
	page.AddCharts(fitChart, residChart)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plotio: create %s: %w", path, err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("plotio: render %s: %w", path, err)
	}
	return f.Close()
}
