package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer defines the message server interface
type MsgServer interface {
	Initialize(context.Context, *MsgInitialize) (*MsgInitializeResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
}

// MsgInitializeResponse defines the response for Initialize
type MsgInitializeResponse struct {
	Config ContractConfig `json:"config"`
	Events sdk.Events     `json:"events"`
}

// MsgAddLiquidityResponse defines the response for AddLiquidity
type MsgAddLiquidityResponse struct {
	Shares  math.Int      `json:"shares"`
	AmountA math.Int      `json:"amount_a"`
	AmountB math.Int      `json:"amount_b"`
	RefundA math.Int      `json:"refund_a"`
	Pool    LiquidityPool `json:"pool"`
	Effects Effects       `json:"effects"`
	Events  sdk.Events    `json:"events"`
}

// MsgRemoveLiquidityResponse defines the response for RemoveLiquidity
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int      `json:"amount_a"`
	AmountB math.Int      `json:"amount_b"`
	Pool    LiquidityPool `json:"pool"`
	Effects Effects       `json:"effects"`
	Events  sdk.Events    `json:"events"`
}

// MsgSwapResponse defines the response for Swap
type MsgSwapResponse struct {
	AssetOut  string        `json:"asset_out"`
	AmountOut math.Int      `json:"amount_out"`
	Pool      LiquidityPool `json:"pool"`
	Effects   Effects       `json:"effects"`
	Events    sdk.Events    `json:"events"`
}

// AddLiquidityResult is the keeper-level outcome of a deposit.
type AddLiquidityResult struct {
	Shares  math.Int
	AmountA math.Int
	AmountB math.Int
	RefundA math.Int
	Pool    LiquidityPool
	Effects Effects
}

// RemoveLiquidityResult is the keeper-level outcome of a withdrawal.
type RemoveLiquidityResult struct {
	AmountA math.Int
	AmountB math.Int
	Pool    LiquidityPool
	Effects Effects
}

// SwapResult is the keeper-level outcome of a trade.
type SwapResult struct {
	AssetIn   string
	AssetOut  string
	AmountIn  math.Int
	AmountOut math.Int
	Pool      LiquidityPool
	Effects   Effects
}
