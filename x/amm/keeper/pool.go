package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// GetPool returns the pool ledger. An unset ledger reads as the empty pool.
func (k Keeper) GetPool(ctx context.Context) (types.LiquidityPool, error) {
	bz := k.getStore(ctx).Get(PoolKey)
	if bz == nil {
		return types.EmptyPool(), nil
	}

	var pool types.LiquidityPool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.LiquidityPool{}, fmt.Errorf("GetPool: unmarshal: %w", err)
	}
	return pool, nil
}

// SetPool validates and stores the pool ledger.
func (k Keeper) SetPool(ctx context.Context, pool types.LiquidityPool) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal: %w", err)
	}
	k.getStore(ctx).Set(PoolKey, bz)
	return nil
}

// GetConfig returns the contract config or ErrNotInitialized.
func (k Keeper) GetConfig(ctx context.Context) (types.ContractConfig, error) {
	bz := k.getStore(ctx).Get(ConfigKey)
	if bz == nil {
		return types.ContractConfig{}, types.ErrNotInitialized
	}

	var cfg types.ContractConfig
	if err := json.Unmarshal(bz, &cfg); err != nil {
		return types.ContractConfig{}, fmt.Errorf("GetConfig: unmarshal: %w", err)
	}
	return cfg, nil
}

// IsInitialized reports whether a config has been stored.
func (k Keeper) IsInitialized(ctx context.Context) bool {
	return k.getStore(ctx).Has(ConfigKey)
}

func (k Keeper) setConfig(ctx context.Context, cfg types.ContractConfig) error {
	bz, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("setConfig: marshal: %w", err)
	}
	k.getStore(ctx).Set(ConfigKey, bz)
	return nil
}

// GetParams returns the current parameters from the store
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	bz := k.getStore(ctx).Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams(), nil
	}

	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, fmt.Errorf("GetParams: unmarshal: %w", err)
	}
	return params, nil
}

// SetParams sets the parameters in the store
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}
	k.getStore(ctx).Set(ParamsKey, bz)
	return nil
}
