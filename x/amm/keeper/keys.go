package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	// PoolKey is the key for the singleton liquidity pool
	PoolKey = []byte{0x01}

	// ConfigKey is the key for the contract config
	ConfigKey = []byte{0x02}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x03}

	// SharesKeyPrefix is the prefix for ShareAccountBook entries
	SharesKeyPrefix = []byte{0x04}

	// AllowanceKeyPrefix is the prefix for cached token-B allowances
	AllowanceKeyPrefix = []byte{0x05}
)

// SharesKey returns the store key for an account's share balance
func SharesKey(account sdk.AccAddress) []byte {
	return append(append([]byte{}, SharesKeyPrefix...), account.Bytes()...)
}

// AllowanceKey returns the store key for an account's cached allowance
func AllowanceKey(account sdk.AccAddress) []byte {
	return append(append([]byte{}, AllowanceKeyPrefix...), account.Bytes()...)
}
