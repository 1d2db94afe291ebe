package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

func (suite *KeeperTestSuite) TestQueryServer() {
	suite.seed()
	qs := keeper.NewQueryServerImpl(suite.keeper)

	cfgResp, err := qs.Config(suite.ctx, &types.QueryConfigRequest{})
	suite.Require().NoError(err)
	suite.Require().Equal(suite.cfg, cfgResp.Config)

	paramsResp, err := qs.Params(suite.ctx, &types.QueryParamsRequest{})
	suite.Require().NoError(err)
	suite.Require().Equal(types.DefaultParams(), paramsResp.Params)

	poolResp, err := qs.PoolState(suite.ctx, &types.QueryPoolStateRequest{})
	suite.Require().NoError(err)
	requireInt(suite.T(), 100, poolResp.ReserveA)
	requireInt(suite.T(), 300, poolResp.ReserveB)
	requireInt(suite.T(), 173, poolResp.TotalShares)

	shareResp, err := qs.ShareBalance(suite.ctx, &types.QueryShareBalanceRequest{Address: provider1.String()})
	suite.Require().NoError(err)
	requireInt(suite.T(), 173, shareResp.Balance)

	shareResp, err = qs.ShareBalance(suite.ctx, &types.QueryShareBalanceRequest{Address: provider2.String()})
	suite.Require().NoError(err)
	requireInt(suite.T(), 0, shareResp.Balance)

	allowResp, err := qs.CachedAllowance(suite.ctx, &types.QueryCachedAllowanceRequest{Address: provider1.String()})
	suite.Require().NoError(err)
	requireInt(suite.T(), 300, allowResp.Allowance)

	simResp, err := qs.SimulateSwap(suite.ctx, &types.QuerySimulateSwapRequest{AssetIn: types.DefaultDenomA, AmountIn: math.NewInt(10)})
	suite.Require().NoError(err)
	suite.Require().Equal(types.DefaultDenomB, simResp.AssetOut)
	requireInt(suite.T(), 27, simResp.AmountOut)
}

func (suite *KeeperTestSuite) TestQueryServerInvalidAddress() {
	qs := keeper.NewQueryServerImpl(suite.keeper)

	_, err := qs.ShareBalance(suite.ctx, &types.QueryShareBalanceRequest{Address: "not-bech32"})
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)

	_, err = qs.CachedAllowance(suite.ctx, &types.QueryCachedAllowanceRequest{Address: ""})
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)

	_, err = qs.ShareBalance(suite.ctx, nil)
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)
}

func (suite *KeeperTestSuite) TestQueriesAreIdempotent() {
	suite.seed()
	qs := keeper.NewQueryServerImpl(suite.keeper)

	first, err := qs.PoolState(suite.ctx, &types.QueryPoolStateRequest{})
	suite.Require().NoError(err)
	for i := 0; i < 3; i++ {
		_, err := qs.SimulateSwap(suite.ctx, &types.QuerySimulateSwapRequest{AssetIn: types.DefaultDenomB, AmountIn: math.NewInt(30)})
		suite.Require().NoError(err)
		again, err := qs.PoolState(suite.ctx, &types.QueryPoolStateRequest{})
		suite.Require().NoError(err)
		suite.Require().Equal(first.ReserveA.String(), again.ReserveA.String())
		suite.Require().Equal(first.ReserveB.String(), again.ReserveB.String())
		suite.Require().Equal(first.TotalShares.String(), again.TotalShares.String())
	}
}
