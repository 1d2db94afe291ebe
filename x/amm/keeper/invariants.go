package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// RegisterInvariants registers all amm invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-consistency", PoolConsistencyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-conservation", ShareConservationInvariant(k))
}

// AllInvariants runs all invariants of the amm module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolConsistencyInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return ShareConservationInvariant(k)(ctx)
	}
}

// PoolConsistencyInvariant checks that reserves and total shares are either
// all zero or all positive, and that each fits in 128 bits.
func PoolConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		pool, err := k.GetPool(ctx)
		if err != nil {
			msg = fmt.Sprintf("failed to load pool: %v\n", err)
		} else if err := pool.Validate(); err != nil {
			msg = fmt.Sprintf("%s: %v\n", pool, err)
		}

		broken := msg != ""
		return sdk.FormatInvariant(
			types.ModuleName, "pool-consistency",
			fmt.Sprintf("pool state is inconsistent\n%s", msg),
		), broken
	}
}

// ShareConservationInvariant checks that the share account book sums to the
// pool's total shares.
func ShareConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		pool, err := k.GetPool(ctx)
		if err != nil {
			msg = fmt.Sprintf("failed to load pool: %v\n", err)
		} else {
			total, err := k.TotalBookShares(ctx)
			switch {
			case err != nil:
				msg = fmt.Sprintf("failed to sum share book: %v\n", err)
			case !total.Equal(pool.TotalShares):
				msg = fmt.Sprintf("share book total %s != pool total shares %s\n", total, pool.TotalShares)
			}
		}

		broken := msg != ""
		return sdk.FormatInvariant(
			types.ModuleName, "share-conservation",
			fmt.Sprintf("share balances are not conserved\n%s", msg),
		), broken
	}
}
