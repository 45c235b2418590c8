package cli

import (
	"github.com/spf13/cobra"

	"github.com/gzrlab/gzrsteg/pkg/pipeline"
)

// newEncodeCmd creates the encode command.
func newEncodeCmd() *cobra.Command {
	var (
		message string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "encode <image>",
		Short: "Hide a message inside a grayscale carrier image",
		Long: `Encode converts the message into a GZR bitstream, frames it with a
32-bit length header, and writes it into the least significant bits of the
carrier's pixels. The output is always PNG; lossy formats would destroy the
embedded bits.`,
		Example: `  gzrsteg encode photo.png -m "meet at noon"
  gzrsteg encode photo.png -m "meet at noon" -o secret.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if output == "" {
				output = stegoOutputPath(args[0], cfg.OutputSuffix)
			}

			prog := newProgress(logger)
			res, err := pipeline.NewRunner(logger).Encode(cmd.Context(), pipeline.EncodeOptions{
				ImagePath:  args[0],
				OutputPath: output,
				Message:    message,
			})
			if err != nil {
				return err
			}
			prog.done("encode pipeline finished")

			printSuccess("Hid %d characters", res.Stats.MessageChars)
			printFile(res.StegoPath)
			printStreamStats(res.Stats.PayloadBits, res.Stats.BitDensity, res.Stats.Pattern111)
			printDetail("capacity used: %d of %d bytes", res.Stats.RequiredBytes, res.Stats.CapacityBytes)
			printNewline()
			printNextStep("Recover it with", "gzrsteg decode "+res.StegoPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "message to hide (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <image>_stego.png)")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
