package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
)

const flagContract = "contract"

// TokensCmd groups commands over the local token ledger
func TokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage balances and allowances in the local token ledger",
		RunE:  runGroup,
	}
	cmd.AddCommand(
		tokensApproveCmd(),
		tokensBalanceCmd(),
		tokensFundCmd(),
	)
	return cmd
}

// runGroup prints help for a command group invoked without a subcommand
func runGroup(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return cmd.Help()
}

// BalanceOutput lists an account's holdings relevant to the pool
type BalanceOutput struct {
	Address   string   `json:"address"`
	Native    sdk.Coin `json:"native"`
	TokenB    math.Int `json:"token_b"`
	Shares    math.Int `json:"shares"`
	Allowance math.Int `json:"allowance"`
}

func parseAmount(name, s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok || !amount.IsPositive() {
		return math.Int{}, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return amount, nil
}

func contractFlag(cmd *cobra.Command) string {
	if contract, _ := cmd.Flags().GetString(flagContract); contract != "" {
		return contract
	}
	return GetConfig(cmd).TokenBContract
}

func tokensApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [owner] [amount]",
		Short: "Set the pool's allowance over owner's tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sdk.AccAddressFromBech32(args[0]); err != nil {
				return fmt.Errorf("invalid owner address: %w", err)
			}
			amount, ok := math.NewIntFromString(args[1])
			if !ok || amount.IsNegative() {
				return fmt.Errorf("amount must be a non-negative integer, got %q", args[1])
			}

			host, closeApp, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp()

			contract := contractFlag(cmd)
			if err := host.Approve(cmd.Context(), contract, args[0], amount); err != nil {
				return err
			}
			return printOutput(cmd, map[string]string{
				"contract":  contract,
				"owner":     args[0],
				"spender":   host.PoolAddress(),
				"allowance": amount.String(),
			})
		},
	}
	cmd.Flags().String(flagContract, "", "token contract (defaults to --token-b-contract)")
	return cmd
}

func tokensBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Show native, token-B and share balances of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd)
			host, closeApp, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp()

			var out BalanceOutput
			err = host.Read(cmd.Context(), func(ctx sdk.Context) error {
				native, err := host.Ledger.NativeBalance(ctx, cfg.DenomA, args[0])
				if err != nil {
					return err
				}
				tokenB, err := host.Ledger.Balance(ctx, cfg.TokenBContract, args[0])
				if err != nil {
					return err
				}
				shares, err := host.Ledger.Balance(ctx, cfg.ShareTokenContract, args[0])
				if err != nil {
					return err
				}
				allowance, err := host.Ledger.Allowance(ctx, cfg.TokenBContract, args[0], host.PoolAddress())
				if err != nil {
					return err
				}
				out = BalanceOutput{
					Address:   args[0],
					Native:    sdk.NewCoin(cfg.DenomA, native),
					TokenB:    tokenB,
					Shares:    shares,
					Allowance: allowance,
				}
				return nil
			})
			if err != nil {
				return err
			}
			return printOutput(cmd, out)
		},
	}
}

func tokensFundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund [address] [amount]",
		Short: "Credit an address with native coins or, with --contract, mint tokens",
		Long: `Fund credits native coins (e.g. 1000orai) to address. When --contract is set,
amount is a plain integer minted at that token contract instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sdk.AccAddressFromBech32(args[0]); err != nil {
				return fmt.Errorf("invalid address: %w", err)
			}

			host, closeApp, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp()

			if contract, _ := cmd.Flags().GetString(flagContract); contract != "" {
				amount, err := parseAmount("amount", args[1])
				if err != nil {
					return err
				}
				if err := host.FundToken(cmd.Context(), contract, args[0], amount); err != nil {
					return err
				}
				return printOutput(cmd, map[string]string{"address": args[0], "contract": contract, "minted": amount.String()})
			}

			coins, err := sdk.ParseCoinsNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid coins: %w", err)
			}
			if err := host.FundNative(cmd.Context(), args[0], coins); err != nil {
				return err
			}
			return printOutput(cmd, map[string]string{"address": args[0], "funded": coins.String()})
		},
	}
	cmd.Flags().String(flagContract, "", "mint tokens at this contract instead of crediting native coins")
	return cmd
}
