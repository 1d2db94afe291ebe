package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/app"
	"github.com/paw-chain/cpamm/x/amm/types"
)

const flagGenesis = "genesis"

// InitCmd initializes the pool, or imports it from a genesis file
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [owner]",
		Short: "Initialize the pool and write the config file",
		Long: `Initialize writes $home/config/config.toml from the resolved settings and
instantiates the pool with owner as its owner. With --genesis the pool, its shares and
cached allowances are imported from an exported genesis file instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd)
			genesisPath, _ := cmd.Flags().GetString(flagGenesis)
			if genesisPath == "" && len(args) == 0 {
				return fmt.Errorf("owner is required unless --genesis is set")
			}

			if err := os.MkdirAll(DataDir(cfg.Home), 0o755); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}

			host, closeApp, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp()

			if genesisPath != "" {
				genesis, err := app.ReadGenesisFile(genesisPath)
				if err != nil {
					return err
				}
				if err := host.InitGenesis(cmd.Context(), *genesis); err != nil {
					return err
				}
				if genesis.Config != nil {
					cfg.DenomA = genesis.Config.DenomA
					cfg.DenomB = genesis.Config.DenomB
					cfg.TokenBContract = genesis.Config.TokenBContract
					cfg.ShareTokenContract = genesis.Config.ShareTokenContract
				}
				cfg.FeeBps = genesis.Params.FeeBps
				cfg.ShareMintFormula = genesis.Params.ShareMintFormula
			} else {
				msg := &types.MsgInitialize{
					Sender:             args[0],
					DenomA:             cfg.DenomA,
					DenomB:             cfg.DenomB,
					TokenBContract:     cfg.TokenBContract,
					ShareTokenContract: cfg.ShareTokenContract,
					Params:             cfg.Params(),
				}
				resp, err := host.Initialize(cmd.Context(), msg)
				if err != nil {
					return err
				}
				if err := printOutput(cmd, resp); err != nil {
					return err
				}
			}

			if err := WriteConfig(cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			host.Logger().Info("pool initialized", "home", cfg.Home, "height", host.LastHeight())
			return nil
		},
	}

	cmd.Flags().String(flagGenesis, "", "import pool state from an exported genesis file")
	return cmd
}

// ExportCmd prints the committed pool state as genesis JSON
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export pool state, shares and cached allowances as genesis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, closeApp, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp()

			genesis, err := host.ExportGenesis(cmd.Context())
			if err != nil {
				return err
			}
			return printOutput(cmd, genesis)
		},
	}
}
