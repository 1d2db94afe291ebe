package keeper

import (
	"context"

	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// QueryAllowance asks the token contract how much owner has approved the pool
// to spend. This is the authoritative value for every validation.
func (k Keeper) QueryAllowance(ctx context.Context, contract string, owner sdk.AccAddress) (math.Int, error) {
	if k.tokenKeeper == nil {
		return math.ZeroInt(), types.ErrTokenQueryFailed.Wrap("no token keeper configured")
	}
	allowance, err := k.tokenKeeper.Allowance(ctx, contract, owner.String(), k.GetModuleAddress().String())
	if err != nil {
		return math.ZeroInt(), types.ErrTokenQueryFailed.Wrapf("allowance on %s for %s: %v", contract, owner, err)
	}
	if allowance.IsNil() {
		return math.ZeroInt(), nil
	}
	return allowance, nil
}

// GetCachedAllowance returns the last observed token-B allowance for an
// account, zero when none was recorded.
func (k Keeper) GetCachedAllowance(ctx context.Context, account sdk.AccAddress) (math.Int, error) {
	bz := k.getStore(ctx).Get(AllowanceKey(account))
	if bz == nil {
		return math.ZeroInt(), nil
	}

	var allowance math.Int
	if err := allowance.Unmarshal(bz); err != nil {
		return math.ZeroInt(), err
	}
	return allowance, nil
}

func (k Keeper) setCachedAllowance(ctx context.Context, account sdk.AccAddress, allowance math.Int) error {
	bz, err := allowance.Marshal()
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(AllowanceKey(account), bz)
	return nil
}

// IterateCachedAllowances walks every allowance record.
func (k Keeper) IterateCachedAllowances(ctx context.Context, cb func(account sdk.AccAddress, allowance math.Int) (stop bool)) error {
	store := prefix.NewStore(k.getStore(ctx), AllowanceKeyPrefix)
	iterator := storetypes.KVStorePrefixIterator(store, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var allowance math.Int
		if err := allowance.Unmarshal(iterator.Value()); err != nil {
			return err
		}
		if cb(sdk.AccAddress(iterator.Key()), allowance) {
			break
		}
	}
	return nil
}
