package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/cpamm/x/amm/types"
)

var (
	bpsDenominator = big.NewInt(types.BpsDenominator)
	scaledMintSq   = new(big.Int).Mul(big.NewInt(types.ScaledMintNumerator), big.NewInt(types.ScaledMintNumerator))
	scaledMintDen  = big.NewInt(types.ScaledMintDenominator)
)

// Quote returns the constant-product output for amountIn against the given
// reserves, charging feeBps on the input:
//
//	amountOut = amountIn*(10000-fee)*reserveOut / (reserveIn*10000 + amountIn*(10000-fee))
//
// Every product is formed before the single division, so the result is the
// floor of the exact rational value.
func Quote(reserveIn, reserveOut, amountIn math.Int, feeBps uint32) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrap("input amount must be positive")
	}
	if feeBps >= types.BpsDenominator {
		return math.ZeroInt(), types.ErrInvalidParams.Wrapf("fee bps %d out of range", feeBps)
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), types.ErrEmptyPool.Wrapf("reserves must be positive, have %s/%s", reserveIn, reserveOut)
	}

	withFee := new(big.Int).Mul(amountIn.BigInt(), big.NewInt(int64(types.BpsDenominator-feeBps)))

	numerator := new(big.Int).Mul(withFee, reserveOut.BigInt())
	denominator := new(big.Int).Mul(reserveIn.BigInt(), bpsDenominator)
	denominator.Add(denominator, withFee)

	return math.NewIntFromBigInt(numerator.Quo(numerator, denominator)), nil
}

// QuoteForAsset resolves assetIn against the config and quotes the trade on
// the matching side of the pool.
func QuoteForAsset(pool types.LiquidityPool, cfg types.ContractConfig, assetIn string, amountIn math.Int, feeBps uint32) (assetOut string, amountOut math.Int, err error) {
	assetOut, err = cfg.Counterpart(assetIn)
	if err != nil {
		return "", math.ZeroInt(), err
	}

	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	if cfg.IsAssetB(assetIn) {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	}

	amountOut, err = Quote(reserveIn, reserveOut, amountIn, feeBps)
	return assetOut, amountOut, err
}

// IntegerSqrt returns floor(sqrt(x)) for x >= 0.
func IntegerSqrt(x math.Int) math.Int {
	if !x.IsPositive() {
		return math.ZeroInt()
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt()))
}

// InitialShares computes the shares minted to the first depositor.
func InitialShares(amountA, amountB math.Int, formula types.ShareMintFormula) (math.Int, error) {
	product := new(big.Int).Mul(amountA.BigInt(), amountB.BigInt())

	switch formula {
	case types.ShareMintGeometricMean:
		return math.NewIntFromBigInt(product.Sqrt(product)), nil
	case types.ShareMintScaledGeometricMean:
		// floor(floor(y)/d) == floor(y/d), so one truncating root is exact.
		product.Mul(product, scaledMintSq)
		root := product.Sqrt(product)
		return math.NewIntFromBigInt(root.Quo(root, scaledMintDen)), nil
	default:
		return math.ZeroInt(), types.ErrInvalidParams.Wrapf("unknown share mint formula %q", string(formula))
	}
}

// MulDiv returns floor(a*b/c) without an intermediate bit-length limit.
func MulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.ZeroInt(), types.ErrOverflow.Wrap("division by zero")
	}
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return math.NewIntFromBigInt(product.Quo(product, c.BigInt())), nil
}
