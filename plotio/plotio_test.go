package plotio

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngMagic = []byte("\x89PNG")

func readOutput(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if len(data) == 0 {
		t.Fatalf("%s is empty", path)
	}
	return data
}

func rampSeries(name string, n int) Series {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		y[i] = math.Sin(float64(i) / 3)
	}
	return Series{Name: name, X: x, Y: y}
}

func TestLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.png")

	err := Lines(path, "scan", "f", "mag", rampSeries("a", 50), rampSeries("b", 50))
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	if data := readOutput(t, path); !bytes.HasPrefix(data, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestLinesErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.png")

	if err := Lines(path, "t", "x", "y"); !errors.Is(err, ErrNoSeries) {
		t.Errorf("no series: error = %v, want ErrNoSeries", err)
	}
	bad := Series{Name: "bad", X: []float64{1, 2}, Y: []float64{1}}
	if err := Lines(path, "t", "x", "y", bad); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("mismatch: error = %v, want ErrLengthMismatch", err)
	}
	empty := Series{Name: "empty"}
	if err := Lines(path, "t", "x", "y", empty); !errors.Is(err, ErrNoValues) {
		t.Errorf("empty: error = %v, want ErrNoValues", err)
	}
}

func TestFitOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.png")

	n := 40
	x := make([]float64, n)
	y := make([]float64, n)
	fitted := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		y[i] = 2 + 0.5*x[i] + math.Sin(float64(i))
		fitted[i] = 2 + 0.5*x[i]
	}

	if err := FitOverlay(path, "fit", "x", "y", x, y, fitted); err != nil {
		t.Fatalf("FitOverlay() error = %v", err)
	}
	if data := readOutput(t, path); !bytes.HasPrefix(data, pngMagic) {
		t.Error("output is not a PNG")
	}

	if err := FitOverlay(path, "fit", "x", "y", x, y, fitted[:n-1]); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("mismatch: error = %v, want ErrLengthMismatch", err)
	}
	if err := FitOverlay(path, "fit", "x", "y", nil, nil, nil); !errors.Is(err, ErrNoValues) {
		t.Errorf("empty: error = %v, want ErrNoValues", err)
	}
}

func TestHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")

	values := make([]float64, 200)
	for i := range values {
		values[i] = math.Sin(float64(i) / 7)
	}

	if err := Histogram(path, "marginal", values, 16); err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	if data := readOutput(t, path); !bytes.HasPrefix(data, pngMagic) {
		t.Error("output is not a PNG")
	}

	if err := Histogram(path, "marginal", nil, 16); !errors.Is(err, ErrNoValues) {
		t.Errorf("empty: error = %v, want ErrNoValues", err)
	}
	if err := Histogram(path, "marginal", values, 0); err == nil {
		t.Error("zero bins: error = nil, want error")
	}
}

func TestHTMLReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	n := 30
	x := make([]float64, n)
	y := make([]float64, n)
	fitted := make([]float64, n)
	resid := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		fitted[i] = 1 + 2*x[i]
		y[i] = fitted[i] + math.Sin(float64(i))
		resid[i] = y[i] - fitted[i]
	}

	if err := HTMLReport(path, "resonator fit", x, y, fitted, resid); err != nil {
		t.Fatalf("HTMLReport() error = %v", err)
	}

	html := string(readOutput(t, path))
	for _, want := range []string{"echarts", "resonator fit", "Residuals"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}

	if err := HTMLReport(path, "t", x, y, fitted, resid[:n-1]); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("mismatch: error = %v, want ErrLengthMismatch", err)
	}
	if err := HTMLReport(path, "t", nil, nil, nil, nil); !errors.Is(err, ErrNoValues) {
		t.Errorf("empty: error = %v, want ErrNoValues", err)
	}
}
