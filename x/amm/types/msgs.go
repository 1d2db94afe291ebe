package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgInitialize stores the contract config and params. The sender becomes the owner.
type MsgInitialize struct {
	Sender             string `json:"sender"`
	DenomA             string `json:"denom_a"`
	DenomB             string `json:"denom_b"`
	TokenBContract     string `json:"token_b_contract"`
	ShareTokenContract string `json:"share_token_contract"`
	Params             Params `json:"params"`
}

// NewMsgInitialize creates a MsgInitialize with default denoms and params.
func NewMsgInitialize(sender, tokenBContract, shareTokenContract string) *MsgInitialize {
	return &MsgInitialize{
		Sender:             sender,
		DenomA:             DefaultDenomA,
		DenomB:             DefaultDenomB,
		TokenBContract:     tokenBContract,
		ShareTokenContract: shareTokenContract,
		Params:             DefaultParams(),
	}
}

// Config builds the stored config from the message.
func (msg MsgInitialize) Config() ContractConfig {
	return ContractConfig{
		Owner:              msg.Sender,
		DenomA:             msg.DenomA,
		DenomB:             msg.DenomB,
		TokenBContract:     msg.TokenBContract,
		ShareTokenContract: msg.ShareTokenContract,
	}
}

// ValidateBasic performs stateless validation
func (msg MsgInitialize) ValidateBasic() error {
	if err := msg.Config().Validate(); err != nil {
		return err
	}
	return msg.Params.Validate()
}

// MsgAddLiquidity deposits both assets. Funds carries the native coins attached
// to the call.
type MsgAddLiquidity struct {
	Sender  string    `json:"sender"`
	AmountA math.Int  `json:"amount_a"`
	AmountB math.Int  `json:"amount_b"`
	Funds   sdk.Coins `json:"funds"`
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(sender string, amountA, amountB math.Int, funds sdk.Coins) *MsgAddLiquidity {
	return &MsgAddLiquidity{Sender: sender, AmountA: amountA, AmountB: amountB, Funds: funds}
}

// ValidateBasic performs stateless validation
func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if err := ValidatePositiveAmount("amount a", msg.AmountA); err != nil {
		return err
	}
	if err := ValidatePositiveAmount("amount b", msg.AmountB); err != nil {
		return err
	}
	if err := msg.Funds.Validate(); err != nil {
		return sdkerrors.Wrapf(ErrInsufficientFunds, "invalid funds: %s", err)
	}
	return nil
}

// MsgRemoveLiquidity redeems shares for both assets.
type MsgRemoveLiquidity struct {
	Sender string   `json:"sender"`
	Shares math.Int `json:"shares"`
}

// NewMsgRemoveLiquidity creates a new MsgRemoveLiquidity instance
func NewMsgRemoveLiquidity(sender string, shares math.Int) *MsgRemoveLiquidity {
	return &MsgRemoveLiquidity{Sender: sender, Shares: shares}
}

// ValidateBasic performs stateless validation
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	return ValidatePositiveAmount("shares", msg.Shares)
}

// MsgSwap trades AmountIn of AssetIn for the other pool asset. A nil or zero
// MinAmountOut disables the slippage guard.
type MsgSwap struct {
	Sender       string    `json:"sender"`
	AssetIn      string    `json:"asset_in"`
	AmountIn     math.Int  `json:"amount_in"`
	MinAmountOut math.Int  `json:"min_amount_out"`
	Funds        sdk.Coins `json:"funds"`
}

// NewMsgSwap creates a new MsgSwap instance
func NewMsgSwap(sender, assetIn string, amountIn math.Int, funds sdk.Coins) *MsgSwap {
	return &MsgSwap{Sender: sender, AssetIn: assetIn, AmountIn: amountIn, MinAmountOut: math.ZeroInt(), Funds: funds}
}

// ValidateBasic performs stateless validation
func (msg MsgSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if err := ValidatePositiveAmount("amount in", msg.AmountIn); err != nil {
		return err
	}
	if msg.AssetIn == "" {
		return sdkerrors.Wrap(ErrUnsupportedAsset, "asset in cannot be empty")
	}
	if !msg.MinAmountOut.IsNil() && msg.MinAmountOut.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "min amount out cannot be negative")
	}
	if err := msg.Funds.Validate(); err != nil {
		return sdkerrors.Wrapf(ErrInsufficientFunds, "invalid funds: %s", err)
	}
	return nil
}
