package cli

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gzrlab/gzrsteg/pkg/imageio"
	"github.com/gzrlab/gzrsteg/pkg/quality"
)

// newAnalyzeCmd creates the analyze command.
func newAnalyzeCmd() *cobra.Command {
	var (
		plots   bool
		plotDir string
	)

	cmd := &cobra.Command{
		Use:   "analyze <original> <stego>",
		Short: "Measure the visual damage done to a carrier",
		Long: `Analyze compares an original carrier with its stego counterpart and
reports MSE, PSNR, pixel change rate, and histogram correlation. With --plots
it also renders histograms of both images and an overlay comparison.`,
		Example: `  gzrsteg analyze photo.png photo_stego.png
  gzrsteg analyze photo.png photo_stego.png --plots`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if plotDir == "" {
				plotDir = cfg.PlotDir
			}

			original, err := imageio.Load(args[0])
			if err != nil {
				return err
			}
			stego, err := imageio.Load(args[1])
			if err != nil {
				return err
			}

			report, err := quality.Analyze(original, stego)
			if err != nil {
				return err
			}
			logger.Debug("quality report computed", "mse", report.MSE, "psnr", report.PSNR)

			printInfo("Quality report: %s vs %s", args[0], args[1])
			fmt.Println(qualityTable(report))
			printDetail("grade: %s", report.Grade())

			if plots {
				sp := newSpinnerWithContext(cmd.Context(), "rendering histograms")
				sp.Start()
				paths, err := quality.WritePlots(plotDir, original, stego)
				if err != nil {
					sp.StopWithError("plot rendering failed")
					return err
				}
				sp.StopWithSuccess("Histograms written")
				for _, p := range paths {
					printFile(p)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&plots, "plots", false, "render histogram plots")
	cmd.Flags().StringVar(&plotDir, "plot-dir", "", "directory for plot output (default \"plots\")")

	return cmd
}

// qualityTable renders a metrics report as a bordered table.
func qualityTable(r *quality.Report) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	psnr := "∞ dB"
	if !math.IsInf(r.PSNR, 1) {
		psnr = fmt.Sprintf("%.2f dB", r.PSNR)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Metric", "Value").
		Rows(
			[]string{"MSE", fmt.Sprintf("%.4f", r.MSE)},
			[]string{"PSNR", psnr},
			[]string{"Changed pixels", fmt.Sprintf("%d of %d (%.4f%%)", r.ChangedPixels, r.TotalPixels, r.ChangeRate)},
			[]string{"Max pixel diff", fmt.Sprintf("%.0f", r.MaxDiff)},
			[]string{"Histogram corr", fmt.Sprintf("%.6f", r.HistCorrelation)},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return StyleValue
		}).
		String()
}
