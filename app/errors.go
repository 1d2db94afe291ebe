package app

import (
	errorsmod "cosmossdk.io/errors"
)

// LedgerCodespace is the error codespace of the local token ledger.
const LedgerCodespace = "ledger"

var (
	ErrInsufficientTokenBalance = errorsmod.Register(LedgerCodespace, 2, "insufficient token balance")
	ErrInsufficientApproval     = errorsmod.Register(LedgerCodespace, 3, "insufficient approval")
	ErrInsufficientNative       = errorsmod.Register(LedgerCodespace, 4, "insufficient native balance")
	ErrUnknownEffect            = errorsmod.Register(LedgerCodespace, 5, "unknown effect kind")
	ErrInvalidLedgerAmount      = errorsmod.Register(LedgerCodespace, 6, "invalid amount")
	ErrBrokenInvariant          = errorsmod.Register(LedgerCodespace, 7, "host invariant broken")
)
