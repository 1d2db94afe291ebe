package types

import (
	"context"

	"cosmossdk.io/math"
)

// TokenKeeper is the read side of the external fungible-token contracts: the
// allowance an owner has granted a spender on a given contract.
type TokenKeeper interface {
	Allowance(ctx context.Context, contract, owner, spender string) (math.Int, error)
}
