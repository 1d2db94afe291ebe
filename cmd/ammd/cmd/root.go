package cmd

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/cpamm/app"
	"github.com/paw-chain/cpamm/x/amm/types"
)

type configKey struct{}

// NewRootCmd creates the ammd root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ammd",
		Short: "Constant-product AMM pool daemon",
		Long: `ammd hosts a single constant-product pool pairing a native denom with an
external token. Pool state and the local token ledger persist under --home.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			cfg, err := LoadConfig(viper.New(), cmd.Flags())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
			return nil
		},
	}

	params := types.DefaultParams()
	flags := rootCmd.PersistentFlags()
	flags.String(flagHome, DefaultHome(), "directory for config and data")
	flags.String(flagLogLevel, "info", "log level (e.g. info, debug, *:error,x/amm:debug)")
	flags.StringP(flagOutput, "o", "json", "output format (json|yaml)")
	flags.String(flagDenomA, types.DefaultDenomA, "native denom held by the pool")
	flags.String(flagDenomB, types.DefaultDenomB, "asset identifier of the external token")
	flags.String(flagTokenBContract, "", "address of the external token contract")
	flags.String(flagShareTokenContract, "", "address of the share token contract")
	flags.Uint32(flagFeeBps, params.FeeBps, "swap fee in basis points")
	flags.String(flagShareMintFormula, string(params.ShareMintFormula), "share mint formula for an empty pool (geometric_mean|scaled_geometric_mean)")
	flags.String(flagDBBackend, "goleveldb", "database backend")

	rootCmd.AddCommand(
		InitCmd(),
		TokensCmd(),
		TxCmd(),
		QueryCmd(),
		ServeCmd(),
		ExportCmd(),
		KeysCmd(),
	)

	return rootCmd
}

// GetConfig returns the configuration resolved for cmd
func GetConfig(cmd *cobra.Command) Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(Config); ok {
		return cfg
	}
	return Config{}
}

// NewLogger builds the host logger. The level is either a plain level or a
// module filter such as "*:error,x/amm:debug".
func NewLogger(cmd *cobra.Command, cfg Config) (log.Logger, error) {
	var opts []log.Option
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		opts = append(opts, log.LevelOption(level))
	} else {
		filter, err := log.ParseLogLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		opts = append(opts, log.FilterOption(filter))
	}
	return log.NewLogger(cmd.ErrOrStderr(), opts...), nil
}

// openApp opens the host over the configured database. The returned closer
// flushes telemetry and releases the database.
func openApp(cmd *cobra.Command) (*app.App, func(), error) {
	cfg := GetConfig(cmd)
	logger, err := NewLogger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}

	tel, err := app.InitTelemetry(cfg.Telemetry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init telemetry: %w", err)
	}

	db, err := dbm.NewDB("application", dbm.BackendType(cfg.DBBackend), DataDir(cfg.Home))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	host, err := app.New(logger, db, tel)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	closer := func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown failed", "error", err.Error())
		}
		if err := host.Close(); err != nil {
			logger.Error("failed to close database", "error", err.Error())
		}
	}
	return host, closer, nil
}
