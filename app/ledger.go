package app

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// LedgerStoreKey names the store holding token and native balances.
const LedgerStoreKey = "ledger"

var (
	tokenBalancePrefix   = []byte{0x01}
	tokenAllowancePrefix = []byte{0x02}
	nativeBalancePrefix  = []byte{0x03}
	tokenSupplyPrefix    = []byte{0x04}
)

func joinKey(prefix []byte, parts ...string) []byte {
	key := append([]byte{}, prefix...)
	for _, p := range parts {
		key = append(key, address.MustLengthPrefix([]byte(p))...)
	}
	return key
}

// TokenLedger keeps cw20-style token balances and allowances plus native
// balances for the local host, and executes the effects pool calls return.
type TokenLedger struct {
	storeKey storetypes.StoreKey
}

var _ types.TokenKeeper = TokenLedger{}

// NewTokenLedger creates a ledger over the given store.
func NewTokenLedger(key storetypes.StoreKey) TokenLedger {
	return TokenLedger{storeKey: key}
}

func (l TokenLedger) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(l.storeKey)
}

func (l TokenLedger) getInt(ctx context.Context, key []byte) (math.Int, error) {
	bz := l.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.ZeroInt(), err
	}
	return v, nil
}

func (l TokenLedger) setInt(ctx context.Context, key []byte, v math.Int) error {
	store := l.getStore(ctx)
	if v.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := v.Marshal()
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

func (l TokenLedger) addInt(ctx context.Context, key []byte, delta math.Int) error {
	cur, err := l.getInt(ctx, key)
	if err != nil {
		return err
	}
	return l.setInt(ctx, key, cur.Add(delta))
}

// subInt removes delta from the value at key, failing with errNotEnough when it
// would go negative.
func (l TokenLedger) subInt(ctx context.Context, key []byte, delta math.Int, errNotEnough *errorsmod.Error, what string) error {
	cur, err := l.getInt(ctx, key)
	if err != nil {
		return err
	}
	if cur.LT(delta) {
		return errNotEnough.Wrapf("%s: have %s, need %s", what, cur, delta)
	}
	return l.setInt(ctx, key, cur.Sub(delta))
}

func positive(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidLedgerAmount.Wrapf("%s", amount)
	}
	return nil
}

// Balance returns account's balance of the token at contract.
func (l TokenLedger) Balance(ctx context.Context, contract, account string) (math.Int, error) {
	return l.getInt(ctx, joinKey(tokenBalancePrefix, contract, account))
}

// Supply returns the total minted amount of the token at contract.
func (l TokenLedger) Supply(ctx context.Context, contract string) (math.Int, error) {
	return l.getInt(ctx, joinKey(tokenSupplyPrefix, contract))
}

// Allowance implements types.TokenKeeper.
func (l TokenLedger) Allowance(ctx context.Context, contract, owner, spender string) (math.Int, error) {
	return l.getInt(ctx, joinKey(tokenAllowancePrefix, contract, owner, spender))
}

// Approve sets the amount spender may move out of owner's balance.
func (l TokenLedger) Approve(ctx context.Context, contract, owner, spender string, amount math.Int) error {
	if err := positive(amount); err != nil {
		return err
	}
	return l.setInt(ctx, joinKey(tokenAllowancePrefix, contract, owner, spender), amount)
}

// Mint creates amount new tokens for recipient.
func (l TokenLedger) Mint(ctx context.Context, contract, recipient string, amount math.Int) error {
	if err := positive(amount); err != nil {
		return err
	}
	if err := l.addInt(ctx, joinKey(tokenBalancePrefix, contract, recipient), amount); err != nil {
		return err
	}
	return l.addInt(ctx, joinKey(tokenSupplyPrefix, contract), amount)
}

// Transfer moves tokens from sender to recipient.
func (l TokenLedger) Transfer(ctx context.Context, contract, sender, recipient string, amount math.Int) error {
	if err := positive(amount); err != nil {
		return err
	}
	if err := l.subInt(ctx, joinKey(tokenBalancePrefix, contract, sender), amount, ErrInsufficientTokenBalance, sender); err != nil {
		return err
	}
	return l.addInt(ctx, joinKey(tokenBalancePrefix, contract, recipient), amount)
}

// TransferFrom moves tokens out of owner's balance on spender's approval.
func (l TokenLedger) TransferFrom(ctx context.Context, contract, spender, owner, recipient string, amount math.Int) error {
	if err := l.subInt(ctx, joinKey(tokenAllowancePrefix, contract, owner, spender), amount, ErrInsufficientApproval, owner); err != nil {
		return err
	}
	return l.Transfer(ctx, contract, owner, recipient, amount)
}

// BurnFrom destroys tokens out of owner's balance on spender's approval.
func (l TokenLedger) BurnFrom(ctx context.Context, contract, spender, owner string, amount math.Int) error {
	if err := positive(amount); err != nil {
		return err
	}
	if err := l.subInt(ctx, joinKey(tokenAllowancePrefix, contract, owner, spender), amount, ErrInsufficientApproval, owner); err != nil {
		return err
	}
	if err := l.subInt(ctx, joinKey(tokenBalancePrefix, contract, owner), amount, ErrInsufficientTokenBalance, owner); err != nil {
		return err
	}
	return l.subInt(ctx, joinKey(tokenSupplyPrefix, contract), amount, ErrInsufficientTokenBalance, "supply")
}

// NativeBalance returns account's balance of a native denom.
func (l TokenLedger) NativeBalance(ctx context.Context, denom, account string) (math.Int, error) {
	return l.getInt(ctx, joinKey(nativeBalancePrefix, denom, account))
}

// FundNative credits native coins to account out of thin air.
func (l TokenLedger) FundNative(ctx context.Context, account string, coins sdk.Coins) error {
	for _, c := range coins {
		if err := l.addInt(ctx, joinKey(nativeBalancePrefix, c.Denom, account), c.Amount); err != nil {
			return err
		}
	}
	return nil
}

// SendNative moves native coins between accounts.
func (l TokenLedger) SendNative(ctx context.Context, sender, recipient string, coins sdk.Coins) error {
	for _, c := range coins {
		if err := l.subInt(ctx, joinKey(nativeBalancePrefix, c.Denom, sender), c.Amount, ErrInsufficientNative, sender); err != nil {
			return err
		}
		if err := l.addInt(ctx, joinKey(nativeBalancePrefix, c.Denom, recipient), c.Amount); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEffects executes the instructions a pool call returned, in order, on
// behalf of the pool account.
func (l TokenLedger) ApplyEffects(ctx context.Context, pool string, effects types.Effects) error {
	for i, e := range effects {
		var err error
		switch e.Kind {
		case types.EffectTransfer:
			err = l.Transfer(ctx, e.Contract, pool, e.Recipient, e.Amount)
		case types.EffectTransferFrom:
			err = l.TransferFrom(ctx, e.Contract, pool, e.Owner, e.Recipient, e.Amount)
		case types.EffectMint:
			err = l.Mint(ctx, e.Contract, e.Recipient, e.Amount)
		case types.EffectBurnFrom:
			err = l.BurnFrom(ctx, e.Contract, pool, e.Owner, e.Amount)
		case types.EffectNativeTransfer:
			err = l.SendNative(ctx, pool, e.Recipient, sdk.NewCoins(sdk.NewCoin(e.Denom, e.Amount)))
		default:
			err = ErrUnknownEffect.Wrapf("%q", e.Kind)
		}
		if err != nil {
			return errorsmod.Wrapf(err, "effect %d (%s)", i, e)
		}
	}
	return nil
}
