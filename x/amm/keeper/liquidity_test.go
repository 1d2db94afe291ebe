package keeper_test

import (
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/paw-chain/cpamm/testutil/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

func (suite *KeeperTestSuite) TestAddLiquidityEmptyPool() {
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, provider1, math.NewInt(300))

	res, err := suite.keeper.AddLiquidity(suite.ctx, provider1, math.NewInt(100), math.NewInt(300), orai(100))
	suite.Require().NoError(err)
	requireInt(suite.T(), 173, res.Shares)
	requireInt(suite.T(), 0, res.RefundA)

	suite.requirePool(100, 300, 173)
	suite.requireShares(provider1, 173)

	module := suite.keeper.GetModuleAddress().String()
	suite.Require().Equal([]string{
		types.NewMint(keepertest.TestShareContract, provider1.String(), math.NewInt(173)).String(),
		types.NewTransferFrom(keepertest.TestTokenBContract, provider1.String(), module, math.NewInt(300)).String(),
	}, effectStrings(res.Effects))

	cached, err := suite.keeper.GetCachedAllowance(suite.ctx, provider1)
	suite.Require().NoError(err)
	requireInt(suite.T(), 300, cached)

	suite.requireEvent(types.EventTypeAddLiquidity)
}

func (suite *KeeperTestSuite) TestAddLiquidityScaledFormula() {
	k, ctx, tokens := keepertest.AmmKeeper(suite.T())
	keepertest.InitializePool(suite.T(), k, ctx, types.Params{
		FeeBps:           types.DefaultFeeBps,
		ShareMintFormula: types.ShareMintScaledGeometricMean,
	})

	res := keepertest.SeedPool(suite.T(), k, ctx, tokens, provider1, math.NewInt(100), math.NewInt(300))
	requireInt(suite.T(), 55, res.Shares)
}

func (suite *KeeperTestSuite) TestAddLiquidityScaledFormulaSmallDeposit() {
	k, ctx, tokens := keepertest.AmmKeeper(suite.T())
	keepertest.InitializePool(suite.T(), k, ctx, types.Params{
		FeeBps:           types.DefaultFeeBps,
		ShareMintFormula: types.ShareMintScaledGeometricMean,
	})

	res := keepertest.SeedPool(suite.T(), k, ctx, tokens, provider1, math.NewInt(1), math.NewInt(10))
	requireInt(suite.T(), 1, res.Shares)
	requireInt(suite.T(), 1, res.Pool.TotalShares)
}

func (suite *KeeperTestSuite) TestAddLiquidityTrimsExcessB() {
	suite.seed()
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, provider2, math.NewInt(50))

	res, err := suite.keeper.AddLiquidity(suite.ctx, provider2, math.NewInt(10), math.NewInt(50), orai(10))
	suite.Require().NoError(err)
	requireInt(suite.T(), 10, res.AmountA)
	requireInt(suite.T(), 30, res.AmountB)
	requireInt(suite.T(), 17, res.Shares)
	requireInt(suite.T(), 0, res.RefundA)

	suite.requirePool(110, 330, 190)
	suite.requireShares(provider2, 17)

	transfers := res.Effects.OfKind(types.EffectTransferFrom)
	suite.Require().Len(transfers, 1)
	requireInt(suite.T(), 30, transfers[0].Amount)
	suite.Require().Empty(res.Effects.OfKind(types.EffectNativeTransfer))
}

func (suite *KeeperTestSuite) TestAddLiquidityTrimsExcessAAndRefunds() {
	suite.seed()
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, provider2, math.NewInt(30))

	res, err := suite.keeper.AddLiquidity(suite.ctx, provider2, math.NewInt(20), math.NewInt(30), orai(20))
	suite.Require().NoError(err)
	requireInt(suite.T(), 10, res.AmountA)
	requireInt(suite.T(), 30, res.AmountB)
	requireInt(suite.T(), 10, res.RefundA)
	requireInt(suite.T(), 17, res.Shares)

	refunds := res.Effects.OfKind(types.EffectNativeTransfer)
	suite.Require().Len(refunds, 1)
	suite.Require().Equal(provider2.String(), refunds[0].Recipient)
	requireInt(suite.T(), 10, refunds[0].Amount)

	suite.requirePool(110, 330, 190)
}

func (suite *KeeperTestSuite) TestAddLiquidityRefundsSurplusFunds() {
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, provider1, math.NewInt(300))

	res, err := suite.keeper.AddLiquidity(suite.ctx, provider1, math.NewInt(100), math.NewInt(300), orai(150))
	suite.Require().NoError(err)
	requireInt(suite.T(), 50, res.RefundA)
	suite.requirePool(100, 300, 173)
}

func (suite *KeeperTestSuite) TestAddLiquidityRejections() {
	suite.seed()
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, provider2, math.NewInt(30))

	tests := []struct {
		name    string
		amountA math.Int
		amountB math.Int
		funds   int64
		wantErr error
	}{
		{name: "zero amount a", amountA: math.ZeroInt(), amountB: math.NewInt(30), funds: 10, wantErr: types.ErrInvalidAmount},
		{name: "zero amount b", amountA: math.NewInt(10), amountB: math.ZeroInt(), funds: 10, wantErr: types.ErrInvalidAmount},
		{name: "negative amount", amountA: math.NewInt(-1), amountB: math.NewInt(30), funds: 10, wantErr: types.ErrInvalidAmount},
		{name: "funds short", amountA: math.NewInt(10), amountB: math.NewInt(30), funds: 9, wantErr: types.ErrInsufficientFunds},
		{name: "allowance short", amountA: math.NewInt(10), amountB: math.NewInt(31), funds: 10, wantErr: types.ErrInsufficientAllowance},
		{name: "ratio rounds to zero", amountA: math.NewInt(1), amountB: math.NewInt(1), funds: 1, wantErr: types.ErrInvalidAmount},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := suite.keeper.AddLiquidity(suite.ctx, provider2, tc.amountA, tc.amountB, orai(tc.funds))
			suite.Require().ErrorIs(err, tc.wantErr)
			suite.requirePool(100, 300, 173)
			suite.requireShares(provider2, 0)
		})
	}
}

func (suite *KeeperTestSuite) TestAddLiquidityZeroAmountLeavesEmptyPool() {
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, provider1, math.NewInt(300))
	_, err := suite.keeper.AddLiquidity(suite.ctx, provider1, math.ZeroInt(), math.NewInt(300), orai(100))
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)
	suite.requirePool(0, 0, 0)
}

func (suite *KeeperTestSuite) TestAddLiquidityIgnoresOtherDenoms() {
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, provider1, math.NewInt(300))
	funds := sdk.NewCoins(sdk.NewInt64Coin(types.DefaultDenomA, 50), sdk.NewInt64Coin("uatom", 1_000))
	_, err := suite.keeper.AddLiquidity(suite.ctx, provider1, math.NewInt(100), math.NewInt(300), funds)
	suite.Require().ErrorIs(err, types.ErrInsufficientFunds)
}

func (suite *KeeperTestSuite) TestAddLiquidityTokenQueryFailure() {
	suite.tokens.SetError(errors.New("contract unreachable"))
	_, err := suite.keeper.AddLiquidity(suite.ctx, provider1, math.NewInt(100), math.NewInt(300), orai(100))
	suite.Require().ErrorIs(err, types.ErrTokenQueryFailed)
	suite.Require().False(types.ErrInsufficientAllowance.Is(err))
	suite.Require().ErrorContains(err, "contract unreachable")
	suite.requirePool(0, 0, 0)
}

func (suite *KeeperTestSuite) TestRemoveEntirePool() {
	suite.seed()
	keepertest.ApproveShares(suite.keeper, suite.tokens, provider1, math.NewInt(173))

	res, err := suite.keeper.RemoveLiquidity(suite.ctx, provider1, math.NewInt(173))
	suite.Require().NoError(err)
	requireInt(suite.T(), 100, res.AmountA)
	requireInt(suite.T(), 300, res.AmountB)
	suite.requirePool(0, 0, 0)
	suite.requireShares(provider1, 0)

	suite.Require().Equal([]string{
		types.NewBurnFrom(keepertest.TestShareContract, provider1.String(), math.NewInt(173)).String(),
		types.NewNativeTransfer(types.DefaultDenomA, provider1.String(), math.NewInt(100)).String(),
		types.NewTransfer(keepertest.TestTokenBContract, provider1.String(), math.NewInt(300)).String(),
	}, effectStrings(res.Effects))

	suite.requireEvent(types.EventTypeRemoveLiquidity)

	// the emptied pool accepts a fresh seed
	res2 := keepertest.SeedPool(suite.T(), suite.keeper, suite.ctx, suite.tokens, provider2, math.NewInt(4), math.NewInt(9))
	requireInt(suite.T(), 6, res2.Shares)
	suite.requirePool(4, 9, 6)
}

func (suite *KeeperTestSuite) TestRemovePartial() {
	suite.seed()
	keepertest.ApproveShares(suite.keeper, suite.tokens, provider1, math.NewInt(50))

	res, err := suite.keeper.RemoveLiquidity(suite.ctx, provider1, math.NewInt(50))
	suite.Require().NoError(err)
	// floor(50*100/173) and floor(50*300/173)
	requireInt(suite.T(), 28, res.AmountA)
	requireInt(suite.T(), 86, res.AmountB)
	suite.requirePool(72, 214, 123)
	suite.requireShares(provider1, 123)
}

func (suite *KeeperTestSuite) TestRemoveOmitsZeroTransfers() {
	keepertest.SeedPool(suite.T(), suite.keeper, suite.ctx, suite.tokens, provider1, math.NewInt(1), math.NewInt(1_000_000))
	suite.requirePool(1, 1_000_000, 1_000)
	keepertest.ApproveShares(suite.keeper, suite.tokens, provider1, math.NewInt(1))

	res, err := suite.keeper.RemoveLiquidity(suite.ctx, provider1, math.NewInt(1))
	suite.Require().NoError(err)
	requireInt(suite.T(), 0, res.AmountA)
	requireInt(suite.T(), 1_000, res.AmountB)
	suite.Require().Empty(res.Effects.OfKind(types.EffectNativeTransfer))
	suite.Require().Len(res.Effects.OfKind(types.EffectTransfer), 1)
}

func (suite *KeeperTestSuite) TestRemoveLiquidityRejections() {
	suite.seed()

	_, err := suite.keeper.RemoveLiquidity(suite.ctx, provider1, math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)

	_, err = suite.keeper.RemoveLiquidity(suite.ctx, provider1, math.NewInt(10))
	suite.Require().ErrorIs(err, types.ErrInsufficientAllowance)

	keepertest.ApproveShares(suite.keeper, suite.tokens, provider1, math.NewInt(1_000))
	_, err = suite.keeper.RemoveLiquidity(suite.ctx, provider1, math.NewInt(174))
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)

	keepertest.ApproveShares(suite.keeper, suite.tokens, provider2, math.NewInt(1))
	_, err = suite.keeper.RemoveLiquidity(suite.ctx, provider2, math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)

	suite.requirePool(100, 300, 173)
	suite.requireShares(provider1, 173)
}
