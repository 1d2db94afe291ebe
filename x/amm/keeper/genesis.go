package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	if genState.Config != nil {
		if err := k.setConfig(ctx, *genState.Config); err != nil {
			return fmt.Errorf("failed to set config: %w", err)
		}
		if err := k.SetPool(ctx, genState.Pool); err != nil {
			return fmt.Errorf("failed to set pool: %w", err)
		}
	}

	for _, sb := range genState.Shares {
		account, err := sdk.AccAddressFromBech32(sb.Address)
		if err != nil {
			return fmt.Errorf("invalid share holder %s: %w", sb.Address, err)
		}
		if err := k.setShares(ctx, account, sb.Shares); err != nil {
			return fmt.Errorf("failed to set shares for %s: %w", sb.Address, err)
		}
	}

	for _, ar := range genState.Allowances {
		account, err := sdk.AccAddressFromBech32(ar.Address)
		if err != nil {
			return fmt.Errorf("invalid allowance holder %s: %w", ar.Address, err)
		}
		if err := k.setCachedAllowance(ctx, account, ar.Allowance); err != nil {
			return fmt.Errorf("failed to set allowance for %s: %w", ar.Address, err)
		}
	}

	return nil
}

// ExportGenesis exports the amm module's state to a genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	genesis := types.DefaultGenesis()
	genesis.Params = params

	if k.IsInitialized(ctx) {
		cfg, err := k.GetConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get config: %w", err)
		}
		genesis.Config = &cfg
	}

	pool, err := k.GetPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	genesis.Pool = pool

	err = k.IterateShares(ctx, func(account sdk.AccAddress, shares math.Int) bool {
		genesis.Shares = append(genesis.Shares, types.ShareBalance{Address: account.String(), Shares: shares})
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export shares: %w", err)
	}

	err = k.IterateCachedAllowances(ctx, func(account sdk.AccAddress, allowance math.Int) bool {
		genesis.Allowances = append(genesis.Allowances, types.AllowanceRecord{Address: account.String(), Allowance: allowance})
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export allowances: %w", err)
	}

	return genesis, nil
}
