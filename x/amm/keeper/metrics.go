package keeper

import (
	"math/big"
	"strconv"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/telemetry"
	"github.com/hashicorp/go-metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/cpamm/x/amm/types"
)

const (
	opAddLiquidity    = "add_liquidity"
	opRemoveLiquidity = "remove_liquidity"
	opSwap            = "swap"
)

// AMMMetrics holds all Prometheus metrics for the AMM module
type AMMMetrics struct {
	SwapsTotal       *prometheus.CounterVec
	SwapVolume       *prometheus.CounterVec
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	RejectedCalls    *prometheus.CounterVec

	PoolReserves *prometheus.GaugeVec
	ShareSupply  prometheus.Gauge
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers AMM metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpamm",
					Subsystem: types.ModuleName,
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"asset_in", "asset_out"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpamm",
					Subsystem: types.ModuleName,
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"denom"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpamm",
					Subsystem: types.ModuleName,
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to the pool",
				},
				[]string{"denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpamm",
					Subsystem: types.ModuleName,
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from the pool",
				},
				[]string{"denom"},
			),
			RejectedCalls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpamm",
					Subsystem: types.ModuleName,
					Name:      "rejected_calls_total",
					Help:      "Calls aborted before commit, by operation and error code",
				},
				[]string{"operation", "code"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "cpamm",
					Subsystem: types.ModuleName,
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"denom"},
			),
			ShareSupply: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "cpamm",
					Subsystem: types.ModuleName,
					Name:      "share_supply",
					Help:      "Outstanding pool shares",
				},
			),
		}
	})
	return ammMetrics
}

func (m *AMMMetrics) observePool(cfg types.ContractConfig, pool types.LiquidityPool) {
	if m == nil {
		return
	}
	m.PoolReserves.WithLabelValues(cfg.DenomA).Set(toFloat(pool.ReserveA))
	m.PoolReserves.WithLabelValues(cfg.DenomB).Set(toFloat(pool.ReserveB))
	m.ShareSupply.Set(toFloat(pool.TotalShares))
}

func (m *AMMMetrics) rejected(operation string, err error) {
	if m == nil {
		return
	}
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	label := "internal"
	if codespace == types.ModuleName {
		label = types.ModuleName + "/" + strconv.FormatUint(uint64(code), 10)
	}
	m.RejectedCalls.WithLabelValues(operation, label).Inc()
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "rejected"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("operation", operation),
			telemetry.NewLabel("code", label),
		},
	)
}

func toFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}
