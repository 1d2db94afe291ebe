package api

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Codespace string `json:"codespace,omitempty"`
	ABCICode  uint32 `json:"abci_code,omitempty"`
}

// HealthResponse represents a liveness or readiness response
type HealthResponse struct {
	Status    string `json:"status"`
	Height    int64  `json:"height"`
	Timestamp int64  `json:"timestamp"`
	Details   string `json:"details,omitempty"`
}

// PoolResponse represents the pool ledger
type PoolResponse struct {
	DenomA      string   `json:"denom_a"`
	DenomB      string   `json:"denom_b"`
	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`
	Height      int64    `json:"height"`
}

// BalanceResponse represents a per-account amount
type BalanceResponse struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

// SimulateSwapRequest holds the query parameters of a swap quote
type SimulateSwapRequest struct {
	AssetIn  string `form:"asset_in" binding:"required"`
	AmountIn string `form:"amount_in" binding:"required"`
}

// SimulateSwapResponse represents a swap quote
type SimulateSwapResponse struct {
	AssetIn   string   `json:"asset_in"`
	AmountIn  math.Int `json:"amount_in"`
	AssetOut  string   `json:"asset_out"`
	AmountOut math.Int `json:"amount_out"`
}

// ConfigResponse represents the immutable pool configuration
type ConfigResponse struct {
	Config types.ContractConfig `json:"config"`
	Params types.Params         `json:"params"`
}
