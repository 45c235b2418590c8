package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gzrlab/gzrsteg/pkg/imageio"
	"github.com/gzrlab/gzrsteg/pkg/steg"
	"github.com/gzrlab/gzrsteg/pkg/tribonacci"
)

// newCapacityCmd creates the capacity command.
func newCapacityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capacity <image>",
		Short: "Show how much a carrier image can hold",
		Long: `Capacity reports the raw LSB capacity of an image and an estimate of
the longest message it can carry. Each character costs nine payload bits and
the length header costs another 32.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			grid, err := imageio.Load(args[0])
			if err != nil {
				return err
			}
			ch, err := steg.NewChannel(grid)
			if err != nil {
				return err
			}
			logger.Debug("carrier loaded", "path", args[0], "w", grid.W, "h", grid.H)

			bits := ch.CapacityBits()
			maxChars := 0
			if bits > steg.HeaderBits {
				maxChars = (bits - steg.HeaderBits) / tribonacci.SlotWidth
			}

			printInfo("Capacity of %s", args[0])
			printKeyValue("Dimensions", fmt.Sprintf("%d×%d", grid.W, grid.H))
			printKeyValue("Capacity", fmt.Sprintf("%d bits (%d bytes)", bits, ch.CapacityBytes()))
			printKeyValue("Header", fmt.Sprintf("%d bits", steg.HeaderBits))
			printKeyValue("Max message", fmt.Sprintf("~%d characters", maxChars))
			return nil
		},
	}

	return cmd
}
