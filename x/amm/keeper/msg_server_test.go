package keeper_test

import (
	"cosmossdk.io/math"

	keepertest "github.com/paw-chain/cpamm/testutil/keeper"
	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

func (suite *KeeperTestSuite) TestMsgServerFlow() {
	ms := keeper.NewMsgServerImpl(suite.keeper)

	keepertest.ApproveTokenB(suite.keeper, suite.tokens, provider1, math.NewInt(300))
	addResp, err := ms.AddLiquidity(suite.ctx, types.NewMsgAddLiquidity(provider1.String(), math.NewInt(100), math.NewInt(300), orai(100)))
	suite.Require().NoError(err)
	requireInt(suite.T(), 173, addResp.Shares)
	suite.Require().Len(addResp.Events, 1)
	suite.Require().Equal(types.EventTypeAddLiquidity, addResp.Events[0].Type)
	suite.Require().Len(addResp.Effects, 2)

	swapResp, err := ms.Swap(suite.ctx, types.NewMsgSwap(trader1.String(), types.DefaultDenomA, math.NewInt(10), orai(10)))
	suite.Require().NoError(err)
	requireInt(suite.T(), 27, swapResp.AmountOut)
	suite.Require().Len(swapResp.Events, 1)
	suite.Require().Equal(types.EventTypeSwap, swapResp.Events[0].Type)

	keepertest.ApproveShares(suite.keeper, suite.tokens, provider1, math.NewInt(173))
	removeResp, err := ms.RemoveLiquidity(suite.ctx, types.NewMsgRemoveLiquidity(provider1.String(), math.NewInt(173)))
	suite.Require().NoError(err)
	requireInt(suite.T(), 110, removeResp.AmountA)
	requireInt(suite.T(), 273, removeResp.AmountB)
	suite.requirePool(0, 0, 0)

	// the caller's manager sees every call's events
	var seen []string
	for _, ev := range suite.ctx.EventManager().Events() {
		seen = append(seen, ev.Type)
	}
	suite.Require().Equal([]string{
		types.EventTypeInstantiate,
		types.EventTypeAddLiquidity,
		types.EventTypeSwap,
		types.EventTypeRemoveLiquidity,
	}, seen)
}

func (suite *KeeperTestSuite) TestMsgServerInitialize() {
	k, ctx, _ := keepertest.AmmKeeper(suite.T())
	ms := keeper.NewMsgServerImpl(k)

	msg := types.NewMsgInitialize(keepertest.TestOwner.String(), keepertest.TestTokenBContract, keepertest.TestShareContract)
	resp, err := ms.Initialize(ctx, msg)
	suite.Require().NoError(err)
	suite.Require().Equal(keepertest.TestConfig(), resp.Config)
	suite.Require().Len(resp.Events, 1)

	_, err = ms.Initialize(ctx, msg)
	suite.Require().ErrorIs(err, types.ErrAlreadyInitialized)
}

func (suite *KeeperTestSuite) TestMsgServerValidateBasic() {
	ms := keeper.NewMsgServerImpl(suite.keeper)

	_, err := ms.AddLiquidity(suite.ctx, types.NewMsgAddLiquidity("bad", math.NewInt(1), math.NewInt(1), orai(1)))
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)

	_, err = ms.Swap(suite.ctx, types.NewMsgSwap(trader1.String(), types.DefaultDenomA, math.ZeroInt(), orai(1)))
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)

	_, err = ms.RemoveLiquidity(suite.ctx, types.NewMsgRemoveLiquidity(provider1.String(), math.ZeroInt()))
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)
}
