package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// Swap trades amountIn of assetIn for the other pool asset at the
// constant-product price. Native input is taken from the attached funds,
// token-B input through the caller's allowance. A positive minAmountOut
// rejects trades whose output falls below it.
func (k Keeper) Swap(ctx context.Context, trader sdk.AccAddress, assetIn string, amountIn, minAmountOut math.Int, funds sdk.Coins) (types.SwapResult, error) {
	var result types.SwapResult
	err := k.atomically(ctx, func(cacheCtx sdk.Context) error {
		var err error
		result, err = k.swap(cacheCtx, trader, assetIn, amountIn, minAmountOut, funds)
		return err
	})
	if err != nil {
		k.metrics.rejected(opSwap, err)
		k.Logger(ctx).Debug("swap rejected", "trader", trader.String(), "asset_in", assetIn, "error", err.Error())
		return types.SwapResult{}, err
	}

	if k.metrics != nil {
		k.metrics.SwapsTotal.WithLabelValues(result.AssetIn, result.AssetOut).Inc()
		k.metrics.SwapVolume.WithLabelValues(result.AssetIn).Add(toFloat(result.AmountIn))
	}
	if cfg, err := k.GetConfig(ctx); err == nil {
		k.metrics.observePool(cfg, result.Pool)
	}
	k.Logger(ctx).Info("swap executed",
		"trader", trader.String(),
		"asset_in", result.AssetIn,
		"amount_in", result.AmountIn.String(),
		"asset_out", result.AssetOut,
		"amount_out", result.AmountOut.String(),
	)
	return result, nil
}

func (k Keeper) swap(ctx sdk.Context, trader sdk.AccAddress, assetIn string, amountIn, minAmountOut math.Int, funds sdk.Coins) (types.SwapResult, error) {
	if err := types.ValidatePositiveAmount("amount in", amountIn); err != nil {
		return types.SwapResult{}, err
	}

	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return types.SwapResult{}, err
	}
	assetOut, err := cfg.Counterpart(assetIn)
	if err != nil {
		return types.SwapResult{}, err
	}
	nativeIn := cfg.IsAssetA(assetIn)
	if !nativeIn {
		assetIn = cfg.DenomB
	}

	pool, err := k.GetPool(ctx)
	if err != nil {
		return types.SwapResult{}, err
	}
	if !pool.HasReserves() {
		return types.SwapResult{}, types.ErrEmptyPool.Wrapf("cannot swap against %s", pool)
	}

	attachedA := funds.AmountOf(cfg.DenomA)
	consumedA := math.ZeroInt()
	if nativeIn {
		if attachedA.LT(amountIn) {
			return types.SwapResult{}, types.ErrInsufficientFunds.Wrapf("attached %s%s, need %s%s",
				attachedA, cfg.DenomA, amountIn, cfg.DenomA)
		}
		consumedA = amountIn
	} else {
		allowance, err := k.QueryAllowance(ctx, cfg.TokenBContract, trader)
		if err != nil {
			return types.SwapResult{}, err
		}
		if allowance.LT(amountIn) {
			return types.SwapResult{}, types.ErrInsufficientAllowance.Wrapf("%s allowance: have %s, need %s",
				cfg.DenomB, allowance, amountIn)
		}
		if err := k.setCachedAllowance(ctx, trader, allowance); err != nil {
			return types.SwapResult{}, err
		}
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.SwapResult{}, err
	}

	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	if !nativeIn {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	}

	amountOut, err := Quote(reserveIn, reserveOut, amountIn, params.FeeBps)
	if err != nil {
		return types.SwapResult{}, err
	}
	if amountOut.IsZero() {
		return types.SwapResult{}, types.ErrInsufficientLiquidity.Wrapf("output for %s%s rounds to zero", amountIn, assetIn)
	}
	if amountOut.GTE(reserveOut) {
		return types.SwapResult{}, types.ErrInsufficientLiquidity.Wrapf("output %s >= reserve %s", amountOut, reserveOut)
	}
	if !minAmountOut.IsNil() && minAmountOut.IsPositive() && amountOut.LT(minAmountOut) {
		return types.SwapResult{}, types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minAmountOut, amountOut)
	}

	newReserveIn, err := addUint128("reserve in", reserveIn, amountIn)
	if err != nil {
		return types.SwapResult{}, err
	}
	newReserveOut := reserveOut.Sub(amountOut)
	if nativeIn {
		pool.ReserveA, pool.ReserveB = newReserveIn, newReserveOut
	} else {
		pool.ReserveB, pool.ReserveA = newReserveIn, newReserveOut
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return types.SwapResult{}, err
	}

	var effects types.Effects
	if nativeIn {
		effects = append(effects, types.NewTransfer(cfg.TokenBContract, trader.String(), amountOut))
	} else {
		effects = append(effects,
			types.NewTransferFrom(cfg.TokenBContract, trader.String(), k.GetModuleAddress().String(), amountIn),
			types.NewNativeTransfer(cfg.DenomA, trader.String(), amountOut),
		)
	}
	if refund := attachedA.Sub(consumedA); refund.IsPositive() {
		effects = append(effects, types.NewNativeTransfer(cfg.DenomA, trader.String(), refund))
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyAction, types.EventTypeSwap),
			sdk.NewAttribute(types.AttributeKeySender, trader.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, assetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyReserveA, pool.ReserveA.String()),
			sdk.NewAttribute(types.AttributeKeyReserveB, pool.ReserveB.String()),
		),
	)

	return types.SwapResult{
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		AmountIn:  amountIn,
		AmountOut: amountOut,
		Pool:      pool,
		Effects:   effects,
	}, nil
}

// SimulateSwap quotes a trade against the current pool without touching state.
func (k Keeper) SimulateSwap(ctx context.Context, assetIn string, amountIn math.Int) (string, math.Int, error) {
	if err := types.ValidatePositiveAmount("amount in", amountIn); err != nil {
		return "", math.ZeroInt(), err
	}
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return "", math.ZeroInt(), err
	}
	pool, err := k.GetPool(ctx)
	if err != nil {
		return "", math.ZeroInt(), err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return "", math.ZeroInt(), err
	}
	return QuoteForAsset(pool, cfg, assetIn, amountIn, params.FeeBps)
}
