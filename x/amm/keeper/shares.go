package keeper

import (
	"context"

	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GetShares returns an account's share balance, zero when absent.
func (k Keeper) GetShares(ctx context.Context, account sdk.AccAddress) (math.Int, error) {
	bz := k.getStore(ctx).Get(SharesKey(account))
	if bz == nil {
		return math.ZeroInt(), nil
	}

	var shares math.Int
	if err := shares.Unmarshal(bz); err != nil {
		return math.ZeroInt(), err
	}
	return shares, nil
}

// setShares writes an account's share balance. Zero balances are removed.
// Only pool operations and genesis call this so the book stays in step with
// the ledger's total.
func (k Keeper) setShares(ctx context.Context, account sdk.AccAddress, shares math.Int) error {
	store := k.getStore(ctx)
	if shares.IsZero() {
		store.Delete(SharesKey(account))
		return nil
	}

	bz, err := shares.Marshal()
	if err != nil {
		return err
	}
	store.Set(SharesKey(account), bz)
	return nil
}

// IterateShares walks every non-zero share balance in address order.
func (k Keeper) IterateShares(ctx context.Context, cb func(account sdk.AccAddress, shares math.Int) (stop bool)) error {
	store := prefix.NewStore(k.getStore(ctx), SharesKeyPrefix)
	iterator := storetypes.KVStorePrefixIterator(store, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			return err
		}
		if cb(sdk.AccAddress(iterator.Key()), shares) {
			break
		}
	}
	return nil
}

// TotalBookShares sums the share account book.
func (k Keeper) TotalBookShares(ctx context.Context) (math.Int, error) {
	total := math.ZeroInt()
	err := k.IterateShares(ctx, func(_ sdk.AccAddress, shares math.Int) bool {
		total = total.Add(shares)
		return false
	})
	return total, err
}
