package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// AddLiquidity deposits amountA of the native asset (attached in funds) and up
// to amountB of token B (pulled through the caller's allowance). An empty pool
// accepts any ratio; a seeded pool trims the asset in excess to the reserve
// ratio and refunds unused native funds.
func (k Keeper) AddLiquidity(ctx context.Context, provider sdk.AccAddress, amountA, amountB math.Int, funds sdk.Coins) (types.AddLiquidityResult, error) {
	var result types.AddLiquidityResult
	err := k.atomically(ctx, func(cacheCtx sdk.Context) error {
		var err error
		result, err = k.addLiquidity(cacheCtx, provider, amountA, amountB, funds)
		return err
	})
	if err != nil {
		k.metrics.rejected(opAddLiquidity, err)
		k.Logger(ctx).Debug("add liquidity rejected", "provider", provider.String(), "error", err.Error())
		return types.AddLiquidityResult{}, err
	}

	if cfg, err := k.GetConfig(ctx); err == nil {
		if k.metrics != nil {
			k.metrics.LiquidityAdded.WithLabelValues(cfg.DenomA).Add(toFloat(result.AmountA))
			k.metrics.LiquidityAdded.WithLabelValues(cfg.DenomB).Add(toFloat(result.AmountB))
		}
		k.metrics.observePool(cfg, result.Pool)
	}
	k.Logger(ctx).Info("liquidity added",
		"provider", provider.String(),
		"amount_a", result.AmountA.String(),
		"amount_b", result.AmountB.String(),
		"shares", result.Shares.String(),
	)
	return result, nil
}

func (k Keeper) addLiquidity(ctx sdk.Context, provider sdk.AccAddress, amountA, amountB math.Int, funds sdk.Coins) (types.AddLiquidityResult, error) {
	// 1. Declared amounts
	if err := types.ValidatePositiveAmount("amount a", amountA); err != nil {
		return types.AddLiquidityResult{}, err
	}
	if err := types.ValidatePositiveAmount("amount b", amountB); err != nil {
		return types.AddLiquidityResult{}, err
	}

	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return types.AddLiquidityResult{}, err
	}

	// 2. Attached native funds
	attachedA := funds.AmountOf(cfg.DenomA)
	if attachedA.LT(amountA) {
		return types.AddLiquidityResult{}, types.ErrInsufficientFunds.Wrapf("attached %s%s, need %s%s",
			attachedA, cfg.DenomA, amountA, cfg.DenomA)
	}

	// 3. Token B allowance
	allowanceB, err := k.QueryAllowance(ctx, cfg.TokenBContract, provider)
	if err != nil {
		return types.AddLiquidityResult{}, err
	}
	if allowanceB.LT(amountB) {
		return types.AddLiquidityResult{}, types.ErrInsufficientAllowance.Wrapf("%s allowance: have %s, need %s",
			cfg.DenomB, allowanceB, amountB)
	}

	pool, err := k.GetPool(ctx)
	if err != nil {
		return types.AddLiquidityResult{}, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.AddLiquidityResult{}, err
	}

	var (
		usedA, usedB, newShares math.Int
		effects                 types.Effects
	)
	moduleAddr := k.GetModuleAddress().String()

	if pool.IsEmpty() {
		usedA, usedB = amountA, amountB
		newShares, err = InitialShares(usedA, usedB, params.ShareMintFormula)
		if err != nil {
			return types.AddLiquidityResult{}, err
		}
		if newShares.IsZero() {
			return types.AddLiquidityResult{}, types.ErrInvalidAmount.Wrapf("deposit %s/%s mints no shares", usedA, usedB)
		}

		effects = append(effects,
			types.NewMint(cfg.ShareTokenContract, provider.String(), newShares),
			types.NewTransferFrom(cfg.TokenBContract, provider.String(), moduleAddr, usedB),
		)
	} else {
		usedA, usedB, err = reconcileDeposit(pool, amountA, amountB)
		if err != nil {
			return types.AddLiquidityResult{}, err
		}
		newShares, err = MulDiv(usedA, pool.TotalShares, pool.ReserveA)
		if err != nil {
			return types.AddLiquidityResult{}, err
		}
		if newShares.IsZero() {
			return types.AddLiquidityResult{}, types.ErrInvalidAmount.Wrapf("contribution %s%s mints no shares against reserve %s",
				usedA, cfg.DenomA, pool.ReserveA)
		}

		effects = append(effects,
			types.NewTransferFrom(cfg.TokenBContract, provider.String(), moduleAddr, usedB),
			types.NewMint(cfg.ShareTokenContract, provider.String(), newShares),
		)
	}

	refundA := attachedA.Sub(usedA)
	if refundA.IsPositive() {
		effects = append(effects, types.NewNativeTransfer(cfg.DenomA, provider.String(), refundA))
	}

	pool.ReserveA, err = addUint128("reserve a", pool.ReserveA, usedA)
	if err != nil {
		return types.AddLiquidityResult{}, err
	}
	pool.ReserveB, err = addUint128("reserve b", pool.ReserveB, usedB)
	if err != nil {
		return types.AddLiquidityResult{}, err
	}
	pool.TotalShares, err = addUint128("total shares", pool.TotalShares, newShares)
	if err != nil {
		return types.AddLiquidityResult{}, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return types.AddLiquidityResult{}, err
	}

	current, err := k.GetShares(ctx, provider)
	if err != nil {
		return types.AddLiquidityResult{}, err
	}
	if err := k.setShares(ctx, provider, current.Add(newShares)); err != nil {
		return types.AddLiquidityResult{}, err
	}
	if err := k.setCachedAllowance(ctx, provider, allowanceB); err != nil {
		return types.AddLiquidityResult{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddLiquidity,
			sdk.NewAttribute(types.AttributeKeyAction, types.EventTypeAddLiquidity),
			sdk.NewAttribute(types.AttributeKeySender, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, usedA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, usedB.String()),
			sdk.NewAttribute(types.AttributeKeyRefundA, refundA.String()),
			sdk.NewAttribute(types.AttributeKeyShares, newShares.String()),
			sdk.NewAttribute(types.AttributeKeyReserveA, pool.ReserveA.String()),
			sdk.NewAttribute(types.AttributeKeyReserveB, pool.ReserveB.String()),
			sdk.NewAttribute(types.AttributeKeyTotalShares, pool.TotalShares.String()),
		),
	)

	return types.AddLiquidityResult{
		Shares:  newShares,
		AmountA: usedA,
		AmountB: usedB,
		RefundA: refundA,
		Pool:    pool,
		Effects: effects,
	}, nil
}

// reconcileDeposit trims the asset in relative excess so the deposit matches
// reserveA:reserveB. The trimmed side always rounds down.
func reconcileDeposit(pool types.LiquidityPool, amountA, amountB math.Int) (usedA, usedB math.Int, err error) {
	optimalB, err := MulDiv(amountA, pool.ReserveB, pool.ReserveA)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if optimalB.LTE(amountB) {
		usedA, usedB = amountA, optimalB
	} else {
		optimalA, err := MulDiv(amountB, pool.ReserveA, pool.ReserveB)
		if err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		usedA, usedB = optimalA, amountB
	}

	if usedA.IsZero() || usedB.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidAmount.Wrapf(
			"deposit %s/%s rounds to zero at pool ratio %s/%s", amountA, amountB, pool.ReserveA, pool.ReserveB)
	}
	return usedA, usedB, nil
}

// RemoveLiquidity burns shares and pays out the proportional reserves.
func (k Keeper) RemoveLiquidity(ctx context.Context, provider sdk.AccAddress, shares math.Int) (types.RemoveLiquidityResult, error) {
	var result types.RemoveLiquidityResult
	err := k.atomically(ctx, func(cacheCtx sdk.Context) error {
		var err error
		result, err = k.removeLiquidity(cacheCtx, provider, shares)
		return err
	})
	if err != nil {
		k.metrics.rejected(opRemoveLiquidity, err)
		k.Logger(ctx).Debug("remove liquidity rejected", "provider", provider.String(), "error", err.Error())
		return types.RemoveLiquidityResult{}, err
	}

	if cfg, err := k.GetConfig(ctx); err == nil {
		if k.metrics != nil {
			k.metrics.LiquidityRemoved.WithLabelValues(cfg.DenomA).Add(toFloat(result.AmountA))
			k.metrics.LiquidityRemoved.WithLabelValues(cfg.DenomB).Add(toFloat(result.AmountB))
		}
		k.metrics.observePool(cfg, result.Pool)
	}
	k.Logger(ctx).Info("liquidity removed",
		"provider", provider.String(),
		"shares", shares.String(),
		"amount_a", result.AmountA.String(),
		"amount_b", result.AmountB.String(),
	)
	return result, nil
}

func (k Keeper) removeLiquidity(ctx sdk.Context, provider sdk.AccAddress, shares math.Int) (types.RemoveLiquidityResult, error) {
	// 1. Declared shares
	if err := types.ValidatePositiveAmount("shares", shares); err != nil {
		return types.RemoveLiquidityResult{}, err
	}

	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return types.RemoveLiquidityResult{}, err
	}

	// 2. Share token allowance
	allowance, err := k.QueryAllowance(ctx, cfg.ShareTokenContract, provider)
	if err != nil {
		return types.RemoveLiquidityResult{}, err
	}
	if allowance.LT(shares) {
		return types.RemoveLiquidityResult{}, types.ErrInsufficientAllowance.Wrapf("share token allowance: have %s, need %s",
			allowance, shares)
	}

	// 3. Recorded balance
	balance, err := k.GetShares(ctx, provider)
	if err != nil {
		return types.RemoveLiquidityResult{}, err
	}
	if balance.LT(shares) {
		return types.RemoveLiquidityResult{}, types.ErrInsufficientBalance.Wrapf("have %s, need %s", balance, shares)
	}

	// 4. Pool must be seeded
	pool, err := k.GetPool(ctx)
	if err != nil {
		return types.RemoveLiquidityResult{}, err
	}
	if pool.IsEmpty() {
		return types.RemoveLiquidityResult{}, types.ErrEmptyPool.Wrap("no shares outstanding")
	}

	amountA, err := MulDiv(shares, pool.ReserveA, pool.TotalShares)
	if err != nil {
		return types.RemoveLiquidityResult{}, err
	}
	amountB, err := MulDiv(shares, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return types.RemoveLiquidityResult{}, err
	}
	if amountA.GT(pool.ReserveA) || amountB.GT(pool.ReserveB) || shares.GT(pool.TotalShares) {
		return types.RemoveLiquidityResult{}, types.ErrInsufficientLiquidity.Wrapf(
			"withdrawal %s/%s for %s shares exceeds pool %s", amountA, amountB, shares, pool)
	}

	pool.ReserveA = pool.ReserveA.Sub(amountA)
	pool.ReserveB = pool.ReserveB.Sub(amountB)
	pool.TotalShares = pool.TotalShares.Sub(shares)
	if err := k.SetPool(ctx, pool); err != nil {
		return types.RemoveLiquidityResult{}, err
	}
	if err := k.setShares(ctx, provider, balance.Sub(shares)); err != nil {
		return types.RemoveLiquidityResult{}, err
	}

	effects := types.Effects{types.NewBurnFrom(cfg.ShareTokenContract, provider.String(), shares)}
	if amountA.IsPositive() {
		effects = append(effects, types.NewNativeTransfer(cfg.DenomA, provider.String(), amountA))
	}
	if amountB.IsPositive() {
		effects = append(effects, types.NewTransfer(cfg.TokenBContract, provider.String(), amountB))
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveLiquidity,
			sdk.NewAttribute(types.AttributeKeyAction, types.EventTypeRemoveLiquidity),
			sdk.NewAttribute(types.AttributeKeySender, provider.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyReserveA, pool.ReserveA.String()),
			sdk.NewAttribute(types.AttributeKeyReserveB, pool.ReserveB.String()),
			sdk.NewAttribute(types.AttributeKeyTotalShares, pool.TotalShares.String()),
		),
	)

	return types.RemoveLiquidityResult{
		AmountA: amountA,
		AmountB: amountB,
		Pool:    pool,
		Effects: effects,
	}, nil
}

// addUint128 adds b to a and rejects results beyond 128 bits.
func addUint128(name string, a, b math.Int) (math.Int, error) {
	sum, err := a.SafeAdd(b)
	if err != nil {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("%s: %s + %s: %v", name, a, b, err)
	}
	if err := types.ValidateUint128(sum); err != nil {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("%s: %v", name, err)
	}
	return sum, nil
}
