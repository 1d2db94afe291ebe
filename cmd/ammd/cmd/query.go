package cmd

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// QueryCmd groups the read-only pool queries
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Querying subcommands",
		RunE:    runGroup,
	}
	cmd.AddCommand(
		CmdQueryConfig(),
		CmdQueryPool(),
		CmdQueryShares(),
		CmdQueryAllowance(),
		CmdSimulateSwap(),
	)
	return cmd
}

// runQuery opens the host, runs fn against its query server and prints the
// result.
func runQuery(cmd *cobra.Command, fn func(sdk.Context, types.QueryServer) (interface{}, error)) error {
	host, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	var out interface{}
	err = host.Query(cmd.Context(), func(ctx sdk.Context, qs types.QueryServer) error {
		var err error
		out, err = fn(ctx, qs)
		return err
	})
	if err != nil {
		return err
	}
	return printOutput(cmd, out)
}

// CmdQueryConfig returns the pool configuration and params
func CmdQueryConfig() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the pool configuration and params",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(ctx sdk.Context, qs types.QueryServer) (interface{}, error) {
				cfg, err := qs.Config(ctx, &types.QueryConfigRequest{})
				if err != nil {
					return nil, err
				}
				params, err := qs.Params(ctx, &types.QueryParamsRequest{})
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"config": cfg.Config, "params": params.Params}, nil
			})
		},
	}
}

// CmdQueryPool returns reserves and total shares
func CmdQueryPool() *cobra.Command {
	return &cobra.Command{
		Use:   "pool",
		Short: "Show pool reserves and total shares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(ctx sdk.Context, qs types.QueryServer) (interface{}, error) {
				return qs.PoolState(ctx, &types.QueryPoolStateRequest{})
			})
		},
	}
}

// CmdQueryShares returns an address's share balance
func CmdQueryShares() *cobra.Command {
	return &cobra.Command{
		Use:   "shares [address]",
		Short: "Show the pool shares held by an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx sdk.Context, qs types.QueryServer) (interface{}, error) {
				return qs.ShareBalance(ctx, &types.QueryShareBalanceRequest{Address: args[0]})
			})
		},
	}
}

// CmdQueryAllowance returns an address's cached token allowance
func CmdQueryAllowance() *cobra.Command {
	return &cobra.Command{
		Use:   "allowance [address]",
		Short: "Show the token allowance last observed for an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx sdk.Context, qs types.QueryServer) (interface{}, error) {
				return qs.CachedAllowance(ctx, &types.QueryCachedAllowanceRequest{Address: args[0]})
			})
		},
	}
}

// CmdSimulateSwap quotes a swap without executing it
func CmdSimulateSwap() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate-swap [asset-in] [amount-in]",
		Short: "Quote the output of a swap at current reserves",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, err := parseAmount("amount-in", args[1])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, qs types.QueryServer) (interface{}, error) {
				return qs.SimulateSwap(ctx, &types.QuerySimulateSwapRequest{AssetIn: args[0], AmountIn: amountIn})
			})
		},
	}
}
