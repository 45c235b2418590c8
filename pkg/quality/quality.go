// Package quality measures how much a stego image deviates from its
// carrier: mean squared error, peak signal-to-noise ratio, histogram
// correlation, and pixel-change statistics.
//
// With one bit embedded per pixel the expected distortion is at most one
// gray level per touched pixel, which lands PSNR comfortably above the
// 40 dB "invisible to the eye" line for realistic payloads.
package quality

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/gzrlab/gzrsteg/pkg/errors"
	"github.com/gzrlab/gzrsteg/pkg/steg"
)

// MaxPixel is the peak value of the 8-bit channel, used by PSNR.
const MaxPixel = 255.0

// MSE returns the mean squared error between two equally shaped grids.
func MSE(a, b *steg.Grid) (float64, error) {
	if !a.SameShape(b) {
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"image shapes differ: %dx%d vs %dx%d", a.W, a.H, b.W, b.H)
	}
	if len(a.Pix) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "empty image")
	}

	var sum float64
	for i := range a.Pix {
		d := float64(a.Pix[i]) - float64(b.Pix[i])
		sum += d * d
	}
	return sum / float64(len(a.Pix)), nil
}

// PSNR returns the peak signal-to-noise ratio in decibels. Identical
// images yield +Inf.
func PSNR(a, b *steg.Grid) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(MaxPixel*MaxPixel/mse), nil
}

// Histogram counts pixel values into 256 bins.
func Histogram(g *steg.Grid) []float64 {
	hist := make([]float64, 256)
	for _, p := range g.Pix {
		hist[p]++
	}
	return hist
}

// HistogramCorrelation returns the Pearson correlation between the two
// images' 256-bin histograms.
func HistogramCorrelation(a, b *steg.Grid) (float64, error) {
	if !a.SameShape(b) {
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"image shapes differ: %dx%d vs %dx%d", a.W, a.H, b.W, b.H)
	}
	return stat.Correlation(Histogram(a), Histogram(b), nil), nil
}

// Report holds the full quality analysis of a carrier/stego pair.
type Report struct {
	MSE             float64 `json:"mse"`
	PSNR            float64 `json:"psnr_db"`
	HistCorrelation float64 `json:"histogram_correlation"`
	ChangedPixels   int     `json:"changed_pixels"`
	TotalPixels     int     `json:"total_pixels"`
	ChangeRate      float64 `json:"change_rate_percent"`
	MaxDiff         float64 `json:"max_pixel_diff"`
	MeanDiff        float64 `json:"mean_pixel_diff"`
}

// Analyze computes all quality metrics for a carrier/stego pair.
func Analyze(original, stego *steg.Grid) (*Report, error) {
	mse, err := MSE(original, stego)
	if err != nil {
		return nil, err
	}
	psnr, err := PSNR(original, stego)
	if err != nil {
		return nil, err
	}
	corr, err := HistogramCorrelation(original, stego)
	if err != nil {
		return nil, err
	}

	var changed int
	var maxDiff, sumDiff float64
	for i := range original.Pix {
		d := math.Abs(float64(original.Pix[i]) - float64(stego.Pix[i]))
		if d != 0 {
			changed++
		}
		if d > maxDiff {
			maxDiff = d
		}
		sumDiff += d
	}
	total := len(original.Pix)

	return &Report{
		MSE:             mse,
		PSNR:            psnr,
		HistCorrelation: corr,
		ChangedPixels:   changed,
		TotalPixels:     total,
		ChangeRate:      float64(changed) / float64(total) * 100,
		MaxDiff:         maxDiff,
		MeanDiff:        sumDiff / float64(total),
	}, nil
}

// Grade buckets the PSNR into a human-readable verdict.
func (r *Report) Grade() string {
	switch {
	case r.PSNR > 40:
		return "excellent - imperceptible to the human eye"
	case r.PSNR > 30:
		return "good - minimal distortion"
	case r.PSNR > 20:
		return "fair - noticeable distortion"
	default:
		return "poor - visible distortion"
	}
}
