package quality

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gzrlab/gzrsteg/pkg/errors"
	"github.com/gzrlab/gzrsteg/pkg/steg"
)

var (
	colorOriginal = color.RGBA{R: 70, G: 130, B: 200, A: 255}
	colorStego    = color.RGBA{R: 200, G: 80, B: 70, A: 255}
)

// WritePlots renders histogram plots for a carrier/stego pair into dir:
// one per image plus an overlay comparison. It returns the paths of the
// files written.
func WritePlots(dir string, original, stego *steg.Grid) ([]string, error) {
	if !original.SameShape(stego) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"image shapes differ: %dx%d vs %dx%d", original.W, original.H, stego.W, stego.H)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create plot dir %s", dir)
	}

	histOrig := Histogram(original)
	histStego := Histogram(stego)

	var written []string
	save := func(p *plot.Plot, name string) error {
		path := filepath.Join(dir, name)
		if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "save plot %s", path)
		}
		written = append(written, path)
		return nil
	}

	pOrig, err := histogramPlot("Original Histogram", histOrig, colorOriginal)
	if err != nil {
		return nil, err
	}
	if err := save(pOrig, "histogram_original.png"); err != nil {
		return nil, err
	}

	pStego, err := histogramPlot("Stego Histogram", histStego, colorStego)
	if err != nil {
		return nil, err
	}
	if err := save(pStego, "histogram_stego.png"); err != nil {
		return nil, err
	}

	pCmp := plot.New()
	pCmp.Title.Text = "Histogram Comparison"
	pCmp.X.Label.Text = "Pixel Value"
	pCmp.Y.Label.Text = "Frequency"

	origLine, err := histogramLine(histOrig, colorOriginal)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build original series")
	}
	stegoLine, err := histogramLine(histStego, colorStego)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build stego series")
	}
	pCmp.Add(origLine, stegoLine)
	pCmp.Legend.Add("original", origLine)
	pCmp.Legend.Add("stego", stegoLine)
	pCmp.Legend.Top = true
	if err := save(pCmp, "histogram_comparison.png"); err != nil {
		return nil, err
	}

	return written, nil
}

func histogramPlot(title string, hist []float64, c color.RGBA) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Pixel Value"
	p.Y.Label.Text = "Frequency"

	line, err := histogramLine(hist, c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build histogram series")
	}
	p.Add(line)
	return p, nil
}

func histogramLine(hist []float64, c color.RGBA) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(hist))
	for i, v := range hist {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1)
	return line, nil
}
