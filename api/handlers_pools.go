package api

import (
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// writeError maps registered errors to 400 with their ABCI code and anything
// else to 500.
func writeError(c *gin.Context, err error) {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	if codespace == errorsmod.UndefinedCodespace {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal error",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	status := http.StatusBadRequest
	if errorsmod.IsOf(err, types.ErrNotInitialized) {
		status = http.StatusNotFound
	}
	c.JSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      "QUERY_FAILED",
		Codespace: codespace,
		ABCICode:  code,
	})
}

// handleGetConfig returns the pool configuration and params
func (s *Server) handleGetConfig(c *gin.Context) {
	var resp ConfigResponse
	err := s.querier.Query(c.Request.Context(), func(ctx sdk.Context, qs types.QueryServer) error {
		cfg, err := qs.Config(ctx, &types.QueryConfigRequest{})
		if err != nil {
			return err
		}
		params, err := qs.Params(ctx, &types.QueryParamsRequest{})
		if err != nil {
			return err
		}
		resp = ConfigResponse{Config: cfg.Config, Params: params.Params}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetParams returns the pricing and minting params
func (s *Server) handleGetParams(c *gin.Context) {
	var resp *types.QueryParamsResponse
	err := s.querier.Query(c.Request.Context(), func(ctx sdk.Context, qs types.QueryServer) error {
		var err error
		resp, err = qs.Params(ctx, &types.QueryParamsRequest{})
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Params)
}

// handleGetPool returns reserves and total shares
func (s *Server) handleGetPool(c *gin.Context) {
	var resp PoolResponse
	err := s.querier.Query(c.Request.Context(), func(ctx sdk.Context, qs types.QueryServer) error {
		cfg, err := qs.Config(ctx, &types.QueryConfigRequest{})
		if err != nil {
			return err
		}
		pool, err := qs.PoolState(ctx, &types.QueryPoolStateRequest{})
		if err != nil {
			return err
		}
		resp = PoolResponse{
			DenomA:      cfg.Config.DenomA,
			DenomB:      cfg.Config.DenomB,
			ReserveA:    pool.ReserveA,
			ReserveB:    pool.ReserveB,
			TotalShares: pool.TotalShares,
			Height:      s.querier.LastHeight(),
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetShares returns an account's share balance
func (s *Server) handleGetShares(c *gin.Context) {
	address := c.Param("address")
	var resp *types.QueryShareBalanceResponse
	err := s.querier.Query(c.Request.Context(), func(ctx sdk.Context, qs types.QueryServer) error {
		var err error
		resp, err = qs.ShareBalance(ctx, &types.QueryShareBalanceRequest{Address: address})
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Address: address, Amount: resp.Balance})
}

// handleGetAllowance returns an account's cached token-B allowance
func (s *Server) handleGetAllowance(c *gin.Context) {
	address := c.Param("address")
	var resp *types.QueryCachedAllowanceResponse
	err := s.querier.Query(c.Request.Context(), func(ctx sdk.Context, qs types.QueryServer) error {
		var err error
		resp, err = qs.CachedAllowance(ctx, &types.QueryCachedAllowanceRequest{Address: address})
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Address: address, Amount: resp.Allowance})
}

// handleSimulateSwap quotes a swap without executing it
func (s *Server) handleSimulateSwap(c *gin.Context) {
	var req SimulateSwapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_REQUEST",
		})
		return
	}
	amountIn, ok := math.NewIntFromString(req.AmountIn)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "amount_in must be an integer",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	var resp *types.QuerySimulateSwapResponse
	err := s.querier.Query(c.Request.Context(), func(ctx sdk.Context, qs types.QueryServer) error {
		var err error
		resp, err = qs.SimulateSwap(ctx, &types.QuerySimulateSwapRequest{AssetIn: req.AssetIn, AmountIn: amountIn})
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SimulateSwapResponse{
		AssetIn:   req.AssetIn,
		AmountIn:  amountIn,
		AssetOut:  resp.AssetOut,
		AmountOut: resp.AmountOut,
	})
}
