package app

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

// ReservesBackedInvariant checks that the pool account actually holds its
// recorded reserves and that the share token supply matches total shares.
func ReservesBackedInvariant(app *App) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if !app.AmmKeeper.IsInitialized(ctx) {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", "pool not initialized\n"), false
		}

		var msg string
		cfg, err := app.AmmKeeper.GetConfig(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", err.Error()), true
		}
		pool, err := app.AmmKeeper.GetPool(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", err.Error()), true
		}

		poolAddr := app.PoolAddress()
		balanceA, err := app.Ledger.NativeBalance(ctx, cfg.DenomA, poolAddr)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", err.Error()), true
		}
		balanceB, err := app.Ledger.Balance(ctx, cfg.TokenBContract, poolAddr)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", err.Error()), true
		}
		supply, err := app.Ledger.Supply(ctx, cfg.ShareTokenContract)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", err.Error()), true
		}

		if balanceA.LT(pool.ReserveA) {
			msg += fmt.Sprintf("pool balance for %s (%s) < reserve (%s)\n", cfg.DenomA, balanceA, pool.ReserveA)
		}
		if balanceB.LT(pool.ReserveB) {
			msg += fmt.Sprintf("pool balance for %s (%s) < reserve (%s)\n", cfg.DenomB, balanceB, pool.ReserveB)
		}
		if !supply.Equal(pool.TotalShares) {
			msg += fmt.Sprintf("share token supply (%s) != total shares (%s)\n", supply, pool.TotalShares)
		}

		broken := msg != ""
		return sdk.FormatInvariant(types.ModuleName, "reserves-backed", msg), broken
	}
}

func (app *App) checkInvariants(ctx sdk.Context) error {
	for _, inv := range []sdk.Invariant{keeper.AllInvariants(app.AmmKeeper), ReservesBackedInvariant(app)} {
		if msg, broken := inv(ctx); broken {
			return ErrBrokenInvariant.Wrap(msg)
		}
	}
	return nil
}
