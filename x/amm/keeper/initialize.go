package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// Initialize stores the immutable contract config and params and creates the
// empty pool. It can run once per store.
func (k Keeper) Initialize(ctx context.Context, cfg types.ContractConfig, params types.Params) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}

	return k.atomically(ctx, func(cacheCtx sdk.Context) error {
		if k.IsInitialized(cacheCtx) {
			return types.ErrAlreadyInitialized.Wrapf("owner %s", cfg.Owner)
		}
		if err := k.setConfig(cacheCtx, cfg); err != nil {
			return err
		}
		if err := k.SetParams(cacheCtx, params); err != nil {
			return err
		}
		if err := k.SetPool(cacheCtx, types.EmptyPool()); err != nil {
			return err
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeInstantiate,
				sdk.NewAttribute(types.AttributeKeyMethod, types.EventTypeInstantiate),
				sdk.NewAttribute(types.AttributeKeyOwner, cfg.Owner),
				sdk.NewAttribute(types.AttributeKeyTokenBContract, cfg.TokenBContract),
				sdk.NewAttribute(types.AttributeKeyShareContract, cfg.ShareTokenContract),
			),
		)
		k.Logger(cacheCtx).Info("pool initialized", "owner", cfg.Owner, "denom_a", cfg.DenomA, "denom_b", cfg.DenomB)
		return nil
	})
}
