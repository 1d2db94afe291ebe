package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the amm MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// withEvents gives the call its own event manager so the response can carry
// exactly the events this call emitted; they are forwarded to the caller's
// manager as well.
func withEvents(goCtx context.Context) (sdk.Context, func() sdk.Events) {
	parent := sdk.UnwrapSDKContext(goCtx)
	em := sdk.NewEventManager()
	return parent.WithEventManager(em), func() sdk.Events {
		events := em.Events()
		parent.EventManager().EmitEvents(events)
		return events
	}
}

// Initialize handles contract instantiation
func (ms msgServer) Initialize(goCtx context.Context, msg *types.MsgInitialize) (*types.MsgInitializeResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Initialize: validate: %w", err)
	}

	ctx, flush := withEvents(goCtx)
	cfg := msg.Config()
	if err := ms.Keeper.Initialize(ctx, cfg, msg.Params); err != nil {
		return nil, fmt.Errorf("Initialize: %w", err)
	}

	return &types.MsgInitializeResponse{Config: cfg, Events: flush()}, nil
}

// AddLiquidity handles adding liquidity to the pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: invalid sender address: %w", err)
	}

	ctx, flush := withEvents(goCtx)
	res, err := ms.Keeper.AddLiquidity(ctx, provider, msg.AmountA, msg.AmountB, msg.Funds)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	return &types.MsgAddLiquidityResponse{
		Shares:  res.Shares,
		AmountA: res.AmountA,
		AmountB: res.AmountB,
		RefundA: res.RefundA,
		Pool:    res.Pool,
		Effects: res.Effects,
		Events:  flush(),
	}, nil
}

// RemoveLiquidity handles removing liquidity from the pool
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}

	provider, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: invalid sender address: %w", err)
	}

	ctx, flush := withEvents(goCtx)
	res, err := ms.Keeper.RemoveLiquidity(ctx, provider, msg.Shares)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	return &types.MsgRemoveLiquidityResponse{
		AmountA: res.AmountA,
		AmountB: res.AmountB,
		Pool:    res.Pool,
		Effects: res.Effects,
		Events:  flush(),
	}, nil
}

// Swap handles token swaps
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Swap: validate: %w", err)
	}

	trader, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("Swap: invalid sender address: %w", err)
	}

	ctx, flush := withEvents(goCtx)
	res, err := ms.Keeper.Swap(ctx, trader, msg.AssetIn, msg.AmountIn, msg.MinAmountOut, msg.Funds)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}

	return &types.MsgSwapResponse{
		AssetOut:  res.AssetOut,
		AmountOut: res.AmountOut,
		Pool:      res.Pool,
		Effects:   res.Effects,
		Events:    flush(),
	}, nil
}
