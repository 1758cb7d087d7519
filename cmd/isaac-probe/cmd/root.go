package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/isaac-server/isaac/internal/config"
	"github.com/isaac-server/isaac/internal/service/probe"
	"github.com/isaac-server/isaac/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// asJSON switches the report to JSON.
	asJSON bool

	// rootCmd represents the base command for probing a server.
	rootCmd = &cobra.Command{
		Use:     "isaac-probe [server-address]",
		Short:   "Check an ISAAC server's version and protocol compatibility.",
		Version: version.ServerString(),
		Long: `Connects to an ISAAC server, performs a protocol handshake and prints the
server release version, the protocol versions of both sides and build metadata.

Exits with a non-zero status when the server is not serving, rejects our
protocol version, or is older than min_server_version from the configuration.
Server address can be provided as argument or loaded from configuration file.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var serverAddress string
			if len(args) > 0 {
				serverAddress = args[0]
			}

			return probe.Run(ctx, &probe.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress,
				JSON:          asJSON,
				Out:           cmd.OutOrStdout(),
			})
		},
	}
)

// Execute runs the isaac-probe CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
}
