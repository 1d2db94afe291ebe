package keeper_test

import (
	"cosmossdk.io/math"

	keepertest "github.com/paw-chain/cpamm/testutil/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

func (suite *KeeperTestSuite) TestSwapNativeIn() {
	suite.seed()

	res, err := suite.keeper.Swap(suite.ctx, trader1, types.DefaultDenomA, math.NewInt(10), math.ZeroInt(), orai(10))
	suite.Require().NoError(err)
	suite.Require().Equal(types.DefaultDenomB, res.AssetOut)
	requireInt(suite.T(), 27, res.AmountOut)
	suite.requirePool(110, 273, 173)

	suite.Require().Equal([]string{
		types.NewTransfer(keepertest.TestTokenBContract, trader1.String(), math.NewInt(27)).String(),
	}, effectStrings(res.Effects))

	ev := suite.requireEvent(types.EventTypeSwap)
	attrs := map[string]string{}
	for _, a := range ev.Attributes {
		attrs[a.Key] = a.Value
	}
	suite.Require().Equal("27", attrs[types.AttributeKeyAmountOut])
	suite.Require().Equal(types.DefaultDenomA, attrs[types.AttributeKeyAssetIn])
}

func (suite *KeeperTestSuite) TestSwapTokenBIn() {
	suite.seed()
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, trader1, math.NewInt(50))

	res, err := suite.keeper.Swap(suite.ctx, trader1, types.DefaultDenomB, math.NewInt(30), math.ZeroInt(), nil)
	suite.Require().NoError(err)
	suite.Require().Equal(types.DefaultDenomA, res.AssetOut)
	requireInt(suite.T(), 9, res.AmountOut)
	suite.requirePool(91, 330, 173)

	module := suite.keeper.GetModuleAddress().String()
	suite.Require().Equal([]string{
		types.NewTransferFrom(keepertest.TestTokenBContract, trader1.String(), module, math.NewInt(30)).String(),
		types.NewNativeTransfer(types.DefaultDenomA, trader1.String(), math.NewInt(9)).String(),
	}, effectStrings(res.Effects))

	cached, err := suite.keeper.GetCachedAllowance(suite.ctx, trader1)
	suite.Require().NoError(err)
	requireInt(suite.T(), 50, cached)
}

func (suite *KeeperTestSuite) TestSwapByTokenContractAddress() {
	suite.seed()
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, trader1, math.NewInt(30))

	res, err := suite.keeper.Swap(suite.ctx, trader1, keepertest.TestTokenBContract, math.NewInt(30), math.ZeroInt(), nil)
	suite.Require().NoError(err)
	suite.Require().Equal(types.DefaultDenomB, res.AssetIn)
	requireInt(suite.T(), 9, res.AmountOut)
}

func (suite *KeeperTestSuite) TestSwapRefundsSurplusNative() {
	suite.seed()

	res, err := suite.keeper.Swap(suite.ctx, trader1, types.DefaultDenomA, math.NewInt(10), math.ZeroInt(), orai(15))
	suite.Require().NoError(err)
	refunds := res.Effects.OfKind(types.EffectNativeTransfer)
	suite.Require().Len(refunds, 1)
	requireInt(suite.T(), 5, refunds[0].Amount)
	suite.requirePool(110, 273, 173)
}

func (suite *KeeperTestSuite) TestSwapUnsupportedAsset() {
	// rejected before the pool is even seeded
	_, err := suite.keeper.Swap(suite.ctx, trader1, "uatom", math.NewInt(10), math.ZeroInt(), orai(10))
	suite.Require().ErrorIs(err, types.ErrUnsupportedAsset)

	suite.seed()
	before := len(suite.ctx.EventManager().Events())
	_, err = suite.keeper.Swap(suite.ctx, trader1, "uatom", math.NewInt(10), math.ZeroInt(), orai(10))
	suite.Require().ErrorIs(err, types.ErrUnsupportedAsset)
	suite.Require().Len(suite.ctx.EventManager().Events(), before)
	suite.requirePool(100, 300, 173)
}

func (suite *KeeperTestSuite) TestSwapRejections() {
	tests := []struct {
		name     string
		seed     bool
		assetIn  string
		amountIn int64
		minOut   int64
		funds    int64
		wantErr  error
	}{
		{name: "empty pool", assetIn: types.DefaultDenomA, amountIn: 10, funds: 10, wantErr: types.ErrEmptyPool},
		{name: "zero amount", seed: true, assetIn: types.DefaultDenomA, amountIn: 0, funds: 10, wantErr: types.ErrInvalidAmount},
		{name: "funds short", seed: true, assetIn: types.DefaultDenomA, amountIn: 10, funds: 9, wantErr: types.ErrInsufficientFunds},
		{name: "no allowance", seed: true, assetIn: types.DefaultDenomB, amountIn: 30, wantErr: types.ErrInsufficientAllowance},
		{name: "slippage", seed: true, assetIn: types.DefaultDenomA, amountIn: 10, minOut: 28, funds: 10, wantErr: types.ErrSlippageExceeded},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			if tc.seed {
				suite.seed()
			}
			before := suite.pool()

			_, err := suite.keeper.Swap(suite.ctx, trader1, tc.assetIn, math.NewInt(tc.amountIn), math.NewInt(tc.minOut), orai(tc.funds))
			suite.Require().ErrorIs(err, tc.wantErr)

			after := suite.pool()
			suite.Require().Equal(before.String(), after.String())
		})
	}
}

func (suite *KeeperTestSuite) TestSwapOutputRoundsToZero() {
	suite.seed()
	keepertest.ApproveTokenB(suite.keeper, suite.tokens, trader1, math.NewInt(1))

	_, err := suite.keeper.Swap(suite.ctx, trader1, types.DefaultDenomB, math.NewInt(1), math.ZeroInt(), nil)
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidity)
	suite.requirePool(100, 300, 173)
}

func (suite *KeeperTestSuite) TestSwapMinimumOutputMet() {
	suite.seed()
	res, err := suite.keeper.Swap(suite.ctx, trader1, types.DefaultDenomA, math.NewInt(10), math.NewInt(27), orai(10))
	suite.Require().NoError(err)
	requireInt(suite.T(), 27, res.AmountOut)
}

func (suite *KeeperTestSuite) TestSimulateSwap() {
	_, _, err := suite.keeper.SimulateSwap(suite.ctx, types.DefaultDenomA, math.NewInt(10))
	suite.Require().ErrorIs(err, types.ErrEmptyPool)

	suite.seed()
	assetOut, out, err := suite.keeper.SimulateSwap(suite.ctx, types.DefaultDenomA, math.NewInt(10))
	suite.Require().NoError(err)
	suite.Require().Equal(types.DefaultDenomB, assetOut)
	requireInt(suite.T(), 27, out)
	suite.requirePool(100, 300, 173)

	_, _, err = suite.keeper.SimulateSwap(suite.ctx, "uatom", math.NewInt(10))
	suite.Require().ErrorIs(err, types.ErrUnsupportedAsset)
}
