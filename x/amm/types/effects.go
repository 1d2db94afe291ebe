package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// EffectKind names an outbound token movement the host must execute after a
// successful call.
type EffectKind string

const (
	EffectTransfer       EffectKind = "transfer"
	EffectTransferFrom   EffectKind = "transfer_from"
	EffectMint           EffectKind = "mint"
	EffectBurnFrom       EffectKind = "burn_from"
	EffectNativeTransfer EffectKind = "native_transfer"
)

// Effect is an instruction returned to the host. Contract is set for token
// contract calls, Denom for native transfers.
type Effect struct {
	Kind      EffectKind `json:"kind"`
	Contract  string     `json:"contract,omitempty"`
	Denom     string     `json:"denom,omitempty"`
	Owner     string     `json:"owner,omitempty"`
	Recipient string     `json:"recipient,omitempty"`
	Amount    math.Int   `json:"amount"`
}

// NewTransfer moves amount of a token held by the pool to recipient.
func NewTransfer(contract, recipient string, amount math.Int) Effect {
	return Effect{Kind: EffectTransfer, Contract: contract, Recipient: recipient, Amount: amount}
}

// NewTransferFrom moves amount out of owner's allowance to recipient.
func NewTransferFrom(contract, owner, recipient string, amount math.Int) Effect {
	return Effect{Kind: EffectTransferFrom, Contract: contract, Owner: owner, Recipient: recipient, Amount: amount}
}

// NewMint issues share tokens to recipient.
func NewMint(contract, recipient string, amount math.Int) Effect {
	return Effect{Kind: EffectMint, Contract: contract, Recipient: recipient, Amount: amount}
}

// NewBurnFrom burns share tokens out of owner's allowance.
func NewBurnFrom(contract, owner string, amount math.Int) Effect {
	return Effect{Kind: EffectBurnFrom, Contract: contract, Owner: owner, Amount: amount}
}

// NewNativeTransfer sends native funds held by the pool to recipient.
func NewNativeTransfer(denom, recipient string, amount math.Int) Effect {
	return Effect{Kind: EffectNativeTransfer, Denom: denom, Recipient: recipient, Amount: amount}
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectNativeTransfer:
		return fmt.Sprintf("%s %s%s -> %s", e.Kind, e.Amount, e.Denom, e.Recipient)
	case EffectTransferFrom:
		return fmt.Sprintf("%s %s@%s %s -> %s", e.Kind, e.Amount, e.Contract, e.Owner, e.Recipient)
	case EffectBurnFrom:
		return fmt.Sprintf("%s %s@%s from %s", e.Kind, e.Amount, e.Contract, e.Owner)
	default:
		return fmt.Sprintf("%s %s@%s -> %s", e.Kind, e.Amount, e.Contract, e.Recipient)
	}
}

// Effects is an ordered instruction list.
type Effects []Effect

// OfKind returns the effects of a single kind, preserving order.
func (es Effects) OfKind(kind EffectKind) Effects {
	var out Effects
	for _, e := range es {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
