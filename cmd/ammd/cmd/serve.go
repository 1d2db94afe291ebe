package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/api"
)

// ServeCmd starts the read-only HTTP API
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pool queries and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd)
			host, closeApp, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp()

			apiConfig := api.DefaultConfig()
			apiConfig.Address = cfg.APIAddress
			apiConfig.CORSOrigins = cfg.APICORSOrigins
			apiConfig.RateLimitRPS = cfg.APIRateLimit

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(host, apiConfig, host.Logger()).Start(ctx)
		},
	}
	cmd.Flags().String(flagAPIAddress, "127.0.0.1:1318", "address the API listens on")
	return cmd
}
