package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrInvalidAmount         = errors.Register(ModuleName, 2, "invalid amount")
	ErrInsufficientFunds     = errors.Register(ModuleName, 3, "insufficient funds attached")
	ErrInsufficientAllowance = errors.Register(ModuleName, 4, "insufficient allowance")
	ErrInsufficientBalance   = errors.Register(ModuleName, 5, "insufficient share balance")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 6, "insufficient liquidity in pool")
	ErrUnsupportedAsset      = errors.Register(ModuleName, 7, "unsupported asset")
	ErrEmptyPool             = errors.Register(ModuleName, 8, "pool is empty")
	ErrInvalidAddress        = errors.Register(ModuleName, 9, "invalid address")
	ErrNotInitialized        = errors.Register(ModuleName, 10, "contract not initialized")
	ErrAlreadyInitialized    = errors.Register(ModuleName, 11, "contract already initialized")
	ErrInvalidParams         = errors.Register(ModuleName, 12, "invalid params")
	ErrOverflow              = errors.Register(ModuleName, 13, "arithmetic overflow")
	ErrSlippageExceeded      = errors.Register(ModuleName, 14, "output amount less than minimum required")
	ErrInvariantViolation    = errors.Register(ModuleName, 15, "pool invariant violated")
	ErrInvalidGenesis        = errors.Register(ModuleName, 16, "invalid genesis state")
	ErrTokenQueryFailed      = errors.Register(ModuleName, 17, "token contract query failed")
)
