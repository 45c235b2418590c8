package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/gzrlab/gzrsteg/internal/server"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP steganography API",
		Long: `Serve starts an HTTP server exposing encode, decode, and capacity as
a small multipart API. The server drains in-flight requests on SIGINT.`,
		Example: `  gzrsteg serve
  gzrsteg serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ServerAddr
			}

			printInfo("Serving on %s", addr)
			printNextStep("Try it", `curl -F image=@photo.png -F message="hi" http://localhost`+addr+`/api/encode -o stego.png`)

			srv := server.New(logger)
			if err := srv.ListenAndServe(cmd.Context(), addr); err != nil && err != http.ErrServerClosed {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default \":8080\")")

	return cmd
}
