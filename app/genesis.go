package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

const opImport = "import_genesis"

// ExportGenesis exports the pool state at the last committed height.
func (app *App) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	var genesis *types.GenesisState
	err := app.Read(ctx, func(sdkCtx sdk.Context) error {
		var err error
		genesis, err = app.AmmKeeper.ExportGenesis(sdkCtx)
		return err
	})
	return genesis, err
}

// InitGenesis imports pool state into an empty host. The ledger is credited
// with the imported reserves and share balances so the pool stays backed.
func (app *App) InitGenesis(ctx context.Context, genesis types.GenesisState) error {
	return app.deliver(ctx, opImport, func(sdkCtx sdk.Context) error {
		if app.AmmKeeper.IsInitialized(sdkCtx) {
			return types.ErrAlreadyInitialized.Wrap("cannot import genesis over an initialized pool")
		}
		if err := app.AmmKeeper.InitGenesis(sdkCtx, genesis); err != nil {
			return err
		}
		if genesis.Config == nil || genesis.Pool.IsEmpty() {
			return nil
		}

		cfg, pool := *genesis.Config, genesis.Pool
		if err := app.Ledger.FundNative(sdkCtx, app.PoolAddress(), sdk.NewCoins(sdk.NewCoin(cfg.DenomA, pool.ReserveA))); err != nil {
			return err
		}
		if err := app.Ledger.Mint(sdkCtx, cfg.TokenBContract, app.PoolAddress(), pool.ReserveB); err != nil {
			return err
		}
		for _, sb := range genesis.Shares {
			if err := app.Ledger.Mint(sdkCtx, cfg.ShareTokenContract, sb.Address, sb.Shares); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadGenesisFile loads and validates a genesis document.
func ReadGenesisFile(path string) (*types.GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis: %w", err)
	}
	var genesis types.GenesisState
	if err := json.Unmarshal(bz, &genesis); err != nil {
		return nil, fmt.Errorf("failed to parse genesis: %w", err)
	}
	if err := genesis.Validate(); err != nil {
		return nil, err
	}
	return &genesis, nil
}
