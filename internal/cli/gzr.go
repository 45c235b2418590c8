package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzrlab/gzrsteg/pkg/errors"
	"github.com/gzrlab/gzrsteg/pkg/tribonacci"
)

// newGZRCmd creates the gzr command group for poking at the numeral codec.
func newGZRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gzr",
		Short: "Inspect the Tribonacci numeral codec (debug tool)",
		Long: `The gzr subcommands expose the raw codec: the Tribonacci sequence a
threshold produces, the digit string of a single integer, and the full slot
stream of a text message.`,
	}

	cmd.AddCommand(newGZRSequenceCmd())
	cmd.AddCommand(newGZREncodeCmd())
	cmd.AddCommand(newGZRDecodeCmd())
	cmd.AddCommand(newGZRTextCmd())

	return cmd
}

func newGZRSequenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sequence [threshold]",
		Short: "Print the Tribonacci sequence up to a threshold",
		Example: `  gzrsteg gzr sequence
  gzrsteg gzr sequence 1000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold := tribonacci.MaxCodePoint
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.New(errors.ErrCodeInvalidInput, "threshold must be an integer")
				}
				threshold = n
			}

			seq := tribonacci.Generate(threshold)
			if len(seq) == 0 {
				printWarning("threshold %d yields an empty sequence", threshold)
				return nil
			}

			printInfo("Tribonacci sequence, threshold %d", threshold)
			parts := make([]string, len(seq))
			for i, v := range seq {
				parts[i] = strconv.Itoa(v)
			}
			printKeyValue("Terms", strings.Join(parts, " "))
			printKeyValue("Count", strconv.Itoa(len(seq)))
			return nil
		},
	}
}

func newGZREncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "encode <integer>",
		Short:   "Show the GZR digit string of an integer",
		Example: `  gzrsteg gzr encode 65`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > tribonacci.MaxCodePoint {
				return errors.New(errors.ErrCodeInvalidInput,
					"value must be an integer in 1..%d", tribonacci.MaxCodePoint)
			}

			seq := tribonacci.Generate(tribonacci.MaxCodePoint)
			digits := tribonacci.EncodeInt(n, seq)
			back := tribonacci.DecodeInt(digits, seq)

			slot := strings.Repeat("0", tribonacci.SlotWidth-len(digits)) + digits

			printKeyValue("GZR", digits)
			printKeyValue("Slot", slot)
			printKeyValue("Decodes to", strconv.Itoa(back))
			if back != n {
				printWarning("bare round trip drifts to %d; the fixed-width slot restores it", back)
			}
			return nil
		},
	}
}

func newGZRDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "decode <digits>",
		Short:   "Decode a GZR digit string back to an integer",
		Example: `  gzrsteg gzr decode 100110100`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range args[0] {
				if r != '0' && r != '1' {
					return errors.New(errors.ErrCodeInvalidInput, "digit string must contain only 0 and 1")
				}
			}
			seq := tribonacci.Generate(tribonacci.MaxCodePoint)
			printKeyValue("Value", strconv.Itoa(tribonacci.DecodeInt(args[0], seq)))
			return nil
		},
	}
}

func newGZRTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "text <message>",
		Short:   "Show the full GZR bitstream of a message",
		Example: `  gzrsteg gzr text "Hello GZR!"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bits, err := tribonacci.EncodeText(args[0])
			if err != nil {
				return err
			}
			valid, count111 := tribonacci.VerifyNo111(bits)
			seq := tribonacci.Generate(tribonacci.MaxCodePoint)

			printInfo("GZR stream for %d characters", len([]rune(args[0])))
			printStreamStats(len(bits), tribonacci.BitDensity(bits), count111)
			printNewline()

			// One slot per line keeps the stream readable.
			for i := 0; i+tribonacci.SlotWidth <= len(bits); i += tribonacci.SlotWidth {
				slot := bits[i : i+tribonacci.SlotWidth]
				printDetail("%s  %q", slot, rune(tribonacci.DecodeInt(slot, seq)))
			}

			if !valid {
				printWarning("stream contains 111 runs")
			}
			return nil
		},
	}
}
