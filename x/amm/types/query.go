package types

import (
	"context"

	"cosmossdk.io/math"
)

// QueryServer defines the read-only query surface
type QueryServer interface {
	Config(context.Context, *QueryConfigRequest) (*QueryConfigResponse, error)
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	PoolState(context.Context, *QueryPoolStateRequest) (*QueryPoolStateResponse, error)
	ShareBalance(context.Context, *QueryShareBalanceRequest) (*QueryShareBalanceResponse, error)
	CachedAllowance(context.Context, *QueryCachedAllowanceRequest) (*QueryCachedAllowanceResponse, error)
	SimulateSwap(context.Context, *QuerySimulateSwapRequest) (*QuerySimulateSwapResponse, error)
}

type QueryConfigRequest struct{}

type QueryConfigResponse struct {
	Config ContractConfig `json:"config"`
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

type QueryPoolStateRequest struct{}

type QueryPoolStateResponse struct {
	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`
}

type QueryShareBalanceRequest struct {
	Address string `json:"address"`
}

type QueryShareBalanceResponse struct {
	Balance math.Int `json:"balance"`
}

type QueryCachedAllowanceRequest struct {
	Address string `json:"address"`
}

type QueryCachedAllowanceResponse struct {
	Allowance math.Int `json:"allowance"`
}

type QuerySimulateSwapRequest struct {
	AssetIn  string   `json:"asset_in"`
	AmountIn math.Int `json:"amount_in"`
}

type QuerySimulateSwapResponse struct {
	AssetOut  string   `json:"asset_out"`
	AmountOut math.Int `json:"amount_out"`
}
