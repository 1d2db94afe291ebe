package keeper

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

var (
	// TestTokenBContract is the token-B contract used by test pools.
	TestTokenBContract = sdk.AccAddress([]byte("usdt_contract_______")).String()
	// TestShareContract is the share token contract used by test pools.
	TestShareContract = sdk.AccAddress([]byte("lpt_contract________")).String()
	// TestOwner instantiates test pools.
	TestOwner = sdk.AccAddress([]byte("owner_______________"))
)

// MockTokenKeeper answers allowance queries from an in-memory table.
type MockTokenKeeper struct {
	mu         sync.Mutex
	allowances map[string]math.Int
	err        error
}

var _ types.TokenKeeper = (*MockTokenKeeper)(nil)

// NewMockTokenKeeper returns an empty allowance table.
func NewMockTokenKeeper() *MockTokenKeeper {
	return &MockTokenKeeper{allowances: make(map[string]math.Int)}
}

func allowanceKey(contract, owner, spender string) string {
	return fmt.Sprintf("%s/%s/%s", contract, owner, spender)
}

// SetAllowance records owner's approval of spender on contract.
func (m *MockTokenKeeper) SetAllowance(contract, owner, spender string, amount math.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allowances[allowanceKey(contract, owner, spender)] = amount
}

// SetError makes every subsequent query fail with err.
func (m *MockTokenKeeper) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Allowance implements types.TokenKeeper.
func (m *MockTokenKeeper) Allowance(_ context.Context, contract, owner, spender string) (math.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return math.ZeroInt(), m.err
	}
	if amt, ok := m.allowances[allowanceKey(contract, owner, spender)]; ok {
		return amt, nil
	}
	return math.ZeroInt(), nil
}

// AmmKeeper creates a test keeper for the amm module backed by an in-memory
// store and a mock token keeper. The pool is not initialized.
func AmmKeeper(t testing.TB) (keeper.Keeper, sdk.Context, *MockTokenKeeper) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	tokens := NewMockTokenKeeper()
	k := keeper.NewKeeper(storeKey, tokens)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, ctx, tokens
}

// TestConfig returns the config InitializePool stores.
func TestConfig() types.ContractConfig {
	return types.ContractConfig{
		Owner:              TestOwner.String(),
		DenomA:             types.DefaultDenomA,
		DenomB:             types.DefaultDenomB,
		TokenBContract:     TestTokenBContract,
		ShareTokenContract: TestShareContract,
	}
}

// InitializePool stores TestConfig with the given params.
func InitializePool(t testing.TB, k keeper.Keeper, ctx sdk.Context, params types.Params) types.ContractConfig {
	cfg := TestConfig()
	require.NoError(t, k.Initialize(ctx, cfg, params))
	return cfg
}

// ApproveTokenB grants the pool an allowance of amount on the token-B contract.
func ApproveTokenB(k keeper.Keeper, tokens *MockTokenKeeper, owner sdk.AccAddress, amount math.Int) {
	tokens.SetAllowance(TestTokenBContract, owner.String(), k.GetModuleAddress().String(), amount)
}

// ApproveShares grants the pool an allowance of amount on the share token contract.
func ApproveShares(k keeper.Keeper, tokens *MockTokenKeeper, owner sdk.AccAddress, amount math.Int) {
	tokens.SetAllowance(TestShareContract, owner.String(), k.GetModuleAddress().String(), amount)
}

// SeedPool deposits amountA/amountB from provider, approving and attaching
// exactly what the deposit needs.
func SeedPool(t testing.TB, k keeper.Keeper, ctx sdk.Context, tokens *MockTokenKeeper, provider sdk.AccAddress, amountA, amountB math.Int) types.AddLiquidityResult {
	ApproveTokenB(k, tokens, provider, amountB)
	funds := sdk.NewCoins(sdk.NewCoin(types.DefaultDenomA, amountA))
	res, err := k.AddLiquidity(ctx, provider, amountA, amountB, funds)
	require.NoError(t, err)
	return res
}
