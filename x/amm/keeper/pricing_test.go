package keeper_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

func requireInt(t testing.TB, want int64, got math.Int) {
	t.Helper()
	require.Equal(t, math.NewInt(want).String(), got.String())
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name       string
		reserveIn  int64
		reserveOut int64
		amountIn   int64
		feeBps     uint32
		want       int64
		wantErr    error
	}{
		{name: "native into seeded pool", reserveIn: 100, reserveOut: 300, amountIn: 10, feeBps: 30, want: 27},
		{name: "token b into seeded pool", reserveIn: 300, reserveOut: 100, amountIn: 30, feeBps: 30, want: 9},
		{name: "zero fee", reserveIn: 100, reserveOut: 300, amountIn: 10, feeBps: 0, want: 27},
		{name: "large balanced pool", reserveIn: 1_000_000, reserveOut: 1_000_000, amountIn: 1_000, feeBps: 30, want: 996},
		{name: "output rounds to zero", reserveIn: 300, reserveOut: 100, amountIn: 1, feeBps: 30, want: 0},
		{name: "zero input", reserveIn: 100, reserveOut: 300, amountIn: 0, feeBps: 30, wantErr: types.ErrInvalidAmount},
		{name: "negative input", reserveIn: 100, reserveOut: 300, amountIn: -1, feeBps: 30, wantErr: types.ErrInvalidAmount},
		{name: "empty reserve in", reserveIn: 0, reserveOut: 300, amountIn: 10, feeBps: 30, wantErr: types.ErrEmptyPool},
		{name: "empty reserve out", reserveIn: 100, reserveOut: 0, amountIn: 10, feeBps: 30, wantErr: types.ErrEmptyPool},
		{name: "fee out of range", reserveIn: 100, reserveOut: 300, amountIn: 10, feeBps: 10_000, wantErr: types.ErrInvalidParams},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := keeper.Quote(math.NewInt(tc.reserveIn), math.NewInt(tc.reserveOut), math.NewInt(tc.amountIn), tc.feeBps)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			requireInt(t, tc.want, out)
		})
	}
}

func TestQuoteLargeReserves(t *testing.T) {
	reserve := types.MaxUint128
	out, err := keeper.Quote(reserve, reserve, reserve, types.DefaultFeeBps)
	require.NoError(t, err)
	require.True(t, out.LT(reserve))
	require.True(t, out.IsPositive())
}

func TestIntegerSqrt(t *testing.T) {
	cases := map[int64]int64{0: 0, 1: 1, 2: 1, 3: 1, 4: 2, 15: 3, 16: 4, 30_000: 173, 1_000_000: 1_000}
	for in, want := range cases {
		requireInt(t, want, keeper.IntegerSqrt(math.NewInt(in)))
	}
	requireInt(t, 0, keeper.IntegerSqrt(math.NewInt(-4)))
}

func TestInitialShares(t *testing.T) {
	shares, err := keeper.InitialShares(math.NewInt(100), math.NewInt(300), types.ShareMintGeometricMean)
	require.NoError(t, err)
	requireInt(t, 173, shares)

	shares, err = keeper.InitialShares(math.NewInt(100), math.NewInt(300), types.ShareMintScaledGeometricMean)
	require.NoError(t, err)
	requireInt(t, 55, shares)

	_, err = keeper.InitialShares(math.NewInt(100), math.NewInt(300), types.ShareMintFormula("float_sqrt"))
	require.ErrorIs(t, err, types.ErrInvalidParams)
}

func TestInitialSharesScaledRounding(t *testing.T) {
	testCases := []struct {
		name             string
		amountA, amountB int64
		want             int64
	}{
		// sqrt(10)/3.14918 = 1.004
		{name: "root just above divisor", amountA: 1, amountB: 10, want: 1},
		// sqrt(9)/3.14918 = 0.95
		{name: "root below divisor", amountA: 1, amountB: 9, want: 0},
		// 173.205/3.14918 = 55.00002
		{name: "fraction carries across", amountA: 100, amountB: 300, want: 55},
		{name: "perfect square", amountA: 314_918, amountB: 314_918, want: 100_000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shares, err := keeper.InitialShares(math.NewInt(tc.amountA), math.NewInt(tc.amountB), types.ShareMintScaledGeometricMean)
			require.NoError(t, err)
			requireInt(t, tc.want, shares)
		})
	}
}

func TestMulDiv(t *testing.T) {
	out, err := keeper.MulDiv(math.NewInt(10), math.NewInt(173), math.NewInt(100))
	require.NoError(t, err)
	requireInt(t, 17, out)

	out, err = keeper.MulDiv(types.MaxUint128, types.MaxUint128, types.MaxUint128)
	require.NoError(t, err)
	require.Equal(t, types.MaxUint128.String(), out.String())

	_, err = keeper.MulDiv(math.NewInt(1), math.NewInt(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestIntegerSqrtProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Uint64().Draw(t, "x")
		root := keeper.IntegerSqrt(math.NewIntFromUint64(x)).BigInt()

		lo := new(big.Int).Mul(root, root)
		hiRoot := new(big.Int).Add(root, big.NewInt(1))
		hi := new(big.Int).Mul(hiRoot, hiRoot)
		xb := new(big.Int).SetUint64(x)
		if lo.Cmp(xb) > 0 || hi.Cmp(xb) <= 0 {
			t.Fatalf("isqrt(%d) = %s is not the floor root", x, root)
		}
	})
}

// The fee never helps the trader and the output never drains the reserve.
func TestQuoteProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := math.NewIntFromUint64(rapid.Uint64Range(1, 1<<62).Draw(t, "reserveIn"))
		reserveOut := math.NewIntFromUint64(rapid.Uint64Range(1, 1<<62).Draw(t, "reserveOut"))
		amountIn := math.NewIntFromUint64(rapid.Uint64Range(1, 1<<62).Draw(t, "amountIn"))
		fee := rapid.Uint32Range(0, types.BpsDenominator-1).Draw(t, "fee")

		out, err := keeper.Quote(reserveIn, reserveOut, amountIn, fee)
		if err != nil {
			t.Fatalf("quote: %v", err)
		}
		noFee, err := keeper.Quote(reserveIn, reserveOut, amountIn, 0)
		if err != nil {
			t.Fatalf("quote without fee: %v", err)
		}
		if out.IsNegative() || out.GT(noFee) || out.GTE(reserveOut) {
			t.Fatalf("quote %s (no fee %s) out of bounds for reserve %s", out, noFee, reserveOut)
		}

		// k = reserveIn*reserveOut never decreases
		before := new(big.Int).Mul(reserveIn.BigInt(), reserveOut.BigInt())
		after := new(big.Int).Mul(reserveIn.Add(amountIn).BigInt(), reserveOut.Sub(out).BigInt())
		if after.Cmp(before) < 0 {
			t.Fatalf("constant product decreased: %s -> %s", before, after)
		}
	})
}
