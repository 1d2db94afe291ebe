package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

var _ types.QueryServer = queryServer{}

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return queryServer{Keeper: keeper}
}

// Config returns the stored contract config
func (qs queryServer) Config(ctx context.Context, _ *types.QueryConfigRequest) (*types.QueryConfigResponse, error) {
	cfg, err := qs.Keeper.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryConfigResponse{Config: cfg}, nil
}

// Params returns the pricing and minting parameters
func (qs queryServer) Params(ctx context.Context, _ *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	params, err := qs.Keeper.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryParamsResponse{Params: params}, nil
}

// PoolState returns the reserves and total shares
func (qs queryServer) PoolState(ctx context.Context, _ *types.QueryPoolStateRequest) (*types.QueryPoolStateResponse, error) {
	pool, err := qs.Keeper.GetPool(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryPoolStateResponse{
		ReserveA:    pool.ReserveA,
		ReserveB:    pool.ReserveB,
		TotalShares: pool.TotalShares,
	}, nil
}

// ShareBalance returns an account's share balance
func (qs queryServer) ShareBalance(ctx context.Context, req *types.QueryShareBalanceRequest) (*types.QueryShareBalanceResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidAddress.Wrap("empty request")
	}
	account, err := sdk.AccAddressFromBech32(req.Address)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("%q: %s", req.Address, err)
	}
	balance, err := qs.Keeper.GetShares(ctx, account)
	if err != nil {
		return nil, err
	}
	return &types.QueryShareBalanceResponse{Balance: balance}, nil
}

// CachedAllowance returns the last observed token-B allowance for an account
func (qs queryServer) CachedAllowance(ctx context.Context, req *types.QueryCachedAllowanceRequest) (*types.QueryCachedAllowanceResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidAddress.Wrap("empty request")
	}
	account, err := sdk.AccAddressFromBech32(req.Address)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("%q: %s", req.Address, err)
	}
	allowance, err := qs.Keeper.GetCachedAllowance(ctx, account)
	if err != nil {
		return nil, err
	}
	return &types.QueryCachedAllowanceResponse{Allowance: allowance}, nil
}

// SimulateSwap quotes a swap without executing it
func (qs queryServer) SimulateSwap(ctx context.Context, req *types.QuerySimulateSwapRequest) (*types.QuerySimulateSwapResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidAmount.Wrap("empty request")
	}
	assetOut, amountOut, err := qs.Keeper.SimulateSwap(ctx, req.AssetIn, req.AmountIn)
	if err != nil {
		return nil, err
	}
	return &types.QuerySimulateSwapResponse{AssetOut: assetOut, AmountOut: amountOut}, nil
}
