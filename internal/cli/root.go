package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gzrlab/gzrsteg/pkg/buildinfo"
)

// Execute runs the gzrsteg CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller-supplied context, so signal
// handling set up in main propagates to every command.
func ExecuteContext(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "gzrsteg",
		Short:        "gzrsteg hides text inside images using Tribonacci numerals",
		Long:         `gzrsteg is a steganography tool that encodes text as Generalized Zeckendorf Representations (Tribonacci base) and embeds the resulting sparse bitstream into the least significant bits of grayscale PNG images.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newCapacityCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newGZRCmd())
	root.AddCommand(newQuickstartCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
