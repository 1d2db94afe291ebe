package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

const (
	// Name is the application name
	Name = "ammd"

	opInitialize      = "initialize"
	opAddLiquidity    = "add_liquidity"
	opRemoveLiquidity = "remove_liquidity"
	opSwap            = "swap"
	opApprove         = "approve"
	opFund            = "fund"
)

// App hosts a single pool over a persistent multistore. Every call runs in a
// cache-wrapped context; the pool's effects are executed against the token
// ledger and the result is committed only when both succeed and the host
// invariants hold.
type App struct {
	mu sync.RWMutex

	logger    log.Logger
	db        dbm.DB
	cms       storetypes.CommitMultiStore
	telemetry *Telemetry

	keys map[string]*storetypes.KVStoreKey

	AmmKeeper keeper.Keeper
	Ledger    TokenLedger

	msgServer   types.MsgServer
	queryServer types.QueryServer
}

// New creates the host over db and loads the latest committed state.
func New(logger log.Logger, db dbm.DB, telemetry *Telemetry) (*App, error) {
	keys := map[string]*storetypes.KVStoreKey{
		types.StoreKey: storetypes.NewKVStoreKey(types.StoreKey),
		LedgerStoreKey: storetypes.NewKVStoreKey(LedgerStoreKey),
	}

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	app := &App{
		logger:    logger,
		db:        db,
		cms:       cms,
		telemetry: telemetry,
		keys:      keys,
		Ledger:    NewTokenLedger(keys[LedgerStoreKey]),
	}
	app.AmmKeeper = keeper.NewKeeper(keys[types.StoreKey], app.Ledger)
	app.msgServer = keeper.NewMsgServerImpl(app.AmmKeeper)
	app.queryServer = keeper.NewQueryServerImpl(app.AmmKeeper)

	return app, nil
}

// Logger returns the host logger
func (app *App) Logger() log.Logger {
	return app.logger
}

// LastHeight returns the version of the last committed state.
func (app *App) LastHeight() int64 {
	return app.cms.LastCommitID().Version
}

// PoolAddress is the account the pool holds funds under.
func (app *App) PoolAddress() string {
	return app.AmmKeeper.GetModuleAddress().String()
}

// Close releases the database.
func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) newContext(ctx context.Context) sdk.Context {
	header := cmtproto.Header{ChainID: Name, Height: app.LastHeight() + 1}
	return sdk.NewContext(app.cms, header, false, app.logger).WithContext(ctx)
}

// deliver runs fn in a cache-wrapped context and commits the result. Any
// error, including a broken host invariant, discards every write.
func (app *App) deliver(ctx context.Context, operation string, fn func(sdk.Context) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	ctx, span := app.telemetry.StartSpan(ctx, operation)
	defer span.End()
	start := time.Now()

	sdkCtx := app.newContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	err := fn(cacheCtx)
	if err == nil {
		err = app.checkInvariants(cacheCtx)
	}
	app.telemetry.RecordCall(ctx, span, operation, time.Since(start), err)
	if err != nil {
		app.logger.Debug("call rejected", "operation", operation, "error", err.Error())
		return err
	}

	write()
	commitID := app.cms.Commit()
	app.logger.Debug("call committed", "operation", operation, "height", commitID.Version)
	return nil
}

// Read runs fn against a read-only view of the committed state. Writes made
// by fn are discarded.
func (app *App) Read(ctx context.Context, fn func(sdk.Context) error) error {
	app.mu.RLock()
	defer app.mu.RUnlock()

	sdkCtx := app.newContext(ctx)
	cacheCtx, _ := sdkCtx.CacheContext()
	return fn(cacheCtx)
}

// Query runs fn with the pool's query server over committed state.
func (app *App) Query(ctx context.Context, fn func(sdk.Context, types.QueryServer) error) error {
	return app.Read(ctx, func(sdkCtx sdk.Context) error {
		return fn(sdkCtx, app.queryServer)
	})
}

// escrow moves the attached native coins of the pool's native denom from the
// caller to the pool before the call runs.
func (app *App) escrow(ctx sdk.Context, sender string, funds sdk.Coins) error {
	if !app.AmmKeeper.IsInitialized(ctx) {
		return nil
	}
	cfg, err := app.AmmKeeper.GetConfig(ctx)
	if err != nil {
		return err
	}
	amount := funds.AmountOf(cfg.DenomA)
	if !amount.IsPositive() {
		return nil
	}
	return app.Ledger.SendNative(ctx, sender, app.PoolAddress(), sdk.NewCoins(sdk.NewCoin(cfg.DenomA, amount)))
}

// Initialize instantiates the pool.
func (app *App) Initialize(ctx context.Context, msg *types.MsgInitialize) (*types.MsgInitializeResponse, error) {
	var resp *types.MsgInitializeResponse
	err := app.deliver(ctx, opInitialize, func(sdkCtx sdk.Context) error {
		var err error
		resp, err = app.msgServer.Initialize(sdkCtx, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AddLiquidity deposits into the pool and executes the returned effects.
func (app *App) AddLiquidity(ctx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	var resp *types.MsgAddLiquidityResponse
	err := app.deliver(ctx, opAddLiquidity, func(sdkCtx sdk.Context) error {
		if err := app.escrow(sdkCtx, msg.Sender, msg.Funds); err != nil {
			return err
		}
		var err error
		if resp, err = app.msgServer.AddLiquidity(sdkCtx, msg); err != nil {
			return err
		}
		return app.Ledger.ApplyEffects(sdkCtx, app.PoolAddress(), resp.Effects)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RemoveLiquidity redeems shares and executes the returned effects.
func (app *App) RemoveLiquidity(ctx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	var resp *types.MsgRemoveLiquidityResponse
	err := app.deliver(ctx, opRemoveLiquidity, func(sdkCtx sdk.Context) error {
		var err error
		if resp, err = app.msgServer.RemoveLiquidity(sdkCtx, msg); err != nil {
			return err
		}
		return app.Ledger.ApplyEffects(sdkCtx, app.PoolAddress(), resp.Effects)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Swap trades against the pool and executes the returned effects.
func (app *App) Swap(ctx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	var resp *types.MsgSwapResponse
	err := app.deliver(ctx, opSwap, func(sdkCtx sdk.Context) error {
		if err := app.escrow(sdkCtx, msg.Sender, msg.Funds); err != nil {
			return err
		}
		var err error
		if resp, err = app.msgServer.Swap(sdkCtx, msg); err != nil {
			return err
		}
		return app.Ledger.ApplyEffects(sdkCtx, app.PoolAddress(), resp.Effects)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Approve lets the pool spend amount of owner's tokens at contract.
func (app *App) Approve(ctx context.Context, contract, owner string, amount math.Int) error {
	return app.deliver(ctx, opApprove, func(sdkCtx sdk.Context) error {
		return app.Ledger.Approve(sdkCtx, contract, owner, app.PoolAddress(), amount)
	})
}

// FundToken mints tokens at contract to account.
func (app *App) FundToken(ctx context.Context, contract, account string, amount math.Int) error {
	return app.deliver(ctx, opFund, func(sdkCtx sdk.Context) error {
		return app.Ledger.Mint(sdkCtx, contract, account, amount)
	})
}

// FundNative credits native coins to account.
func (app *App) FundNative(ctx context.Context, account string, coins sdk.Coins) error {
	return app.deliver(ctx, opFund, func(sdkCtx sdk.Context) error {
		return app.Ledger.FundNative(sdkCtx, account, coins)
	})
}
