package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/x/amm/types"
)

const (
	flagFunds        = "funds"
	flagMinAmountOut = "min-amount-out"
)

// TxCmd groups the state-changing pool operations
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Pool transaction subcommands",
		RunE:  runGroup,
	}
	cmd.AddCommand(
		CmdAddLiquidity(),
		CmdRemoveLiquidity(),
		CmdSwap(),
	)
	return cmd
}

// fundsFlag parses --funds, defaulting to defaultAmount of the native denom
// when the flag is unset.
func fundsFlag(cmd *cobra.Command, defaultAmount math.Int) (sdk.Coins, error) {
	raw, _ := cmd.Flags().GetString(flagFunds)
	if raw == "" {
		if defaultAmount.IsNil() || !defaultAmount.IsPositive() {
			return sdk.NewCoins(), nil
		}
		return sdk.NewCoins(sdk.NewCoin(GetConfig(cmd).DenomA, defaultAmount)), nil
	}
	coins, err := sdk.ParseCoinsNormalized(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid funds: %w", err)
	}
	return coins, nil
}

// CmdAddLiquidity returns the add-liquidity command
func CmdAddLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [sender] [amount-a] [amount-b]",
		Short: "Deposit both assets and receive pool shares",
		Long: `Deposit amount-a of the native denom and amount-b of the external token.
The native amount is attached from sender's balance unless --funds overrides it; the
token amount is pulled through sender's allowance to the pool.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountA, err := parseAmount("amount-a", args[1])
			if err != nil {
				return err
			}
			amountB, err := parseAmount("amount-b", args[2])
			if err != nil {
				return err
			}
			funds, err := fundsFlag(cmd, amountA)
			if err != nil {
				return err
			}

			msg := types.NewMsgAddLiquidity(args[0], amountA, amountB, funds)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			host, closeApp, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp()

			resp, err := host.AddLiquidity(cmd.Context(), msg)
			if err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}
	cmd.Flags().String(flagFunds, "", "native coins to attach (defaults to amount-a of the native denom)")
	return cmd
}

// CmdRemoveLiquidity returns the remove-liquidity command
func CmdRemoveLiquidity() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-liquidity [sender] [shares]",
		Short: "Burn pool shares for a proportional part of both reserves",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := parseAmount("shares", args[1])
			if err != nil {
				return err
			}
			msg := types.NewMsgRemoveLiquidity(args[0], shares)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			host, closeApp, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp()

			resp, err := host.RemoveLiquidity(cmd.Context(), msg)
			if err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}
}

// CmdSwap returns the swap command
func CmdSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [sender] [asset-in] [amount-in]",
		Short: "Trade one pool asset for the other",
		Long: `Swap amount-in of asset-in for the other pool asset. Native input is attached
from sender's balance unless --funds overrides it; token input is pulled through
sender's allowance to the pool.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd)
			amountIn, err := parseAmount("amount-in", args[2])
			if err != nil {
				return err
			}

			attach := math.ZeroInt()
			if args[1] == cfg.DenomA {
				attach = amountIn
			}
			funds, err := fundsFlag(cmd, attach)
			if err != nil {
				return err
			}

			msg := types.NewMsgSwap(args[0], args[1], amountIn, funds)
			if raw, _ := cmd.Flags().GetString(flagMinAmountOut); raw != "" {
				minOut, ok := math.NewIntFromString(raw)
				if !ok {
					return fmt.Errorf("%s must be an integer, got %q", flagMinAmountOut, raw)
				}
				msg.MinAmountOut = minOut
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			host, closeApp, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp()

			resp, err := host.Swap(cmd.Context(), msg)
			if err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}
	cmd.Flags().String(flagFunds, "", "native coins to attach (defaults to amount-in for native swaps)")
	cmd.Flags().String(flagMinAmountOut, "", "reject the swap if the output is below this amount")
	return cmd
}
