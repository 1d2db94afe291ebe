package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

func (suite *KeeperTestSuite) TestInvariantsHold() {
	suite.seed()
	keeperInvariantsHold(suite)

	_, err := suite.keeper.Swap(suite.ctx, trader1, types.DefaultDenomA, math.NewInt(10), math.ZeroInt(), orai(10))
	suite.Require().NoError(err)
	keeperInvariantsHold(suite)
}

func keeperInvariantsHold(suite *KeeperTestSuite) {
	msg, broken := keeper.AllInvariants(suite.keeper)(suite.ctx)
	suite.Require().False(broken, msg)
}

func (suite *KeeperTestSuite) TestShareConservationBroken() {
	suite.seed()

	// simulate a corrupted ledger total
	pool := suite.pool()
	pool.TotalShares = pool.TotalShares.AddRaw(1)
	suite.Require().NoError(suite.keeper.SetPool(suite.ctx, pool))

	msg, broken := keeper.ShareConservationInvariant(suite.keeper)(suite.ctx)
	suite.Require().True(broken)
	suite.Require().Contains(msg, "share-conservation")

	_, broken = keeper.PoolConsistencyInvariant(suite.keeper)(suite.ctx)
	suite.Require().False(broken)
}

func (suite *KeeperTestSuite) TestSetPoolRejectsInconsistentState() {
	err := suite.keeper.SetPool(suite.ctx, types.LiquidityPool{
		ReserveA:    math.NewInt(100),
		ReserveB:    math.ZeroInt(),
		TotalShares: math.NewInt(10),
	})
	suite.Require().ErrorIs(err, types.ErrInvariantViolation)
}
