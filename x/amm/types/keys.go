package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// DefaultDenomA is the native asset held by the pool
	DefaultDenomA = "orai"

	// DefaultDenomB is the asset identifier callers use for the external token
	DefaultDenomB = "usdt"
)
