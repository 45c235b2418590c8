package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gzrlab/gzrsteg/pkg/pipeline"
)

// newDecodeCmd creates the decode command.
func newDecodeCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "decode <image>",
		Short: "Recover a hidden message from a stego image",
		Long: `Decode reads the 32-bit length header from the pixel LSBs, extracts
that many payload bits, and decodes them from GZR back into text.`,
		Example: `  gzrsteg decode secret.png
  gzrsteg decode secret.png --raw > message.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			res, err := pipeline.NewRunner(logger).Decode(cmd.Context(), pipeline.DecodeOptions{
				ImagePath: args[0],
			})
			if err != nil {
				return err
			}

			if raw {
				// Bare message on stdout for piping.
				fmt.Println(res.Message)
				return nil
			}

			printSuccess("Recovered %d characters", res.Stats.MessageChars)
			printStreamStats(res.Stats.PayloadBits, res.Stats.BitDensity, res.Stats.Pattern111)
			if !res.Stats.ValidGZR {
				printWarning("payload contains 111 runs; the image may not carry a GZR stream")
			}
			printNewline()
			printKeyValue("Message", res.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print only the message, no decoration")

	return cmd
}
