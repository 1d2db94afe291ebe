package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ShareBalance is one ShareAccountBook entry.
type ShareBalance struct {
	Address string   `json:"address"`
	Shares  math.Int `json:"shares"`
}

// AllowanceRecord is the last token-B allowance observed for an account.
type AllowanceRecord struct {
	Address   string   `json:"address"`
	Allowance math.Int `json:"allowance"`
}

// GenesisState is the full exported state of the module. Config is nil until
// the contract has been initialized.
type GenesisState struct {
	Config     *ContractConfig   `json:"config,omitempty"`
	Params     Params            `json:"params"`
	Pool       LiquidityPool     `json:"pool"`
	Shares     []ShareBalance    `json:"shares"`
	Allowances []AllowanceRecord `json:"allowances"`
}

// DefaultGenesis returns the default genesis state for the AMM module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Pool:       EmptyPool(),
		Shares:     []ShareBalance{},
		Allowances: []AllowanceRecord{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.Config != nil {
		if err := gs.Config.Validate(); err != nil {
			return err
		}
	}
	if err := gs.Pool.Validate(); err != nil {
		return err
	}
	if gs.Config == nil && !gs.Pool.IsEmpty() {
		return ErrInvalidGenesis.Wrap("seeded pool requires a contract config")
	}

	seen := make(map[string]struct{}, len(gs.Shares))
	total := math.ZeroInt()
	for _, sb := range gs.Shares {
		if _, err := sdk.AccAddressFromBech32(sb.Address); err != nil {
			return ErrInvalidGenesis.Wrapf("share holder %q: %s", sb.Address, err)
		}
		if _, dup := seen[sb.Address]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate share holder %s", sb.Address)
		}
		seen[sb.Address] = struct{}{}
		if err := ValidateUint128(sb.Shares); err != nil {
			return ErrInvalidGenesis.Wrapf("share holder %s: %s", sb.Address, err)
		}
		total = total.Add(sb.Shares)
	}
	if !total.Equal(gs.Pool.TotalShares) {
		return ErrInvalidGenesis.Wrapf("sum of share balances %s != total shares %s", total, gs.Pool.TotalShares)
	}

	seen = make(map[string]struct{}, len(gs.Allowances))
	for _, ar := range gs.Allowances {
		if _, err := sdk.AccAddressFromBech32(ar.Address); err != nil {
			return ErrInvalidGenesis.Wrapf("allowance record %q: %s", ar.Address, err)
		}
		if _, dup := seen[ar.Address]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate allowance record %s", ar.Address)
		}
		seen[ar.Address] = struct{}{}
		if err := ValidateUint128(ar.Allowance); err != nil {
			return ErrInvalidGenesis.Wrapf("allowance record %s: %s", ar.Address, err)
		}
	}
	return nil
}
