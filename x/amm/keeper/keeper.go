package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// Keeper owns the pool ledger, the share account book and the allowance cache.
type Keeper struct {
	storeKey    storetypes.StoreKey
	tokenKeeper types.TokenKeeper
	metrics     *AMMMetrics
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(key storetypes.StoreKey, tokenKeeper types.TokenKeeper) Keeper {
	return Keeper{
		storeKey:    key,
		tokenKeeper: tokenKeeper,
		metrics:     NewAMMMetrics(),
	}
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetModuleAddress returns the address the pool holds funds and receives
// allowances under.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// atomically runs fn against a cache-wrapped context and writes the cache
// (state and events) back only when fn succeeds.
func (k Keeper) atomically(ctx context.Context, fn func(cacheCtx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}
