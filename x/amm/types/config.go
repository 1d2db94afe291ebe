package types

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ContractConfig identifies the owner, the two pool assets and the external
// token contracts the pool moves funds through. It is immutable once stored.
type ContractConfig struct {
	Owner              string `json:"owner"`
	DenomA             string `json:"denom_a"`
	DenomB             string `json:"denom_b"`
	TokenBContract     string `json:"token_b_contract"`
	ShareTokenContract string `json:"share_token_contract"`
}

// Validate performs stateless checks on the config.
func (c ContractConfig) Validate() error {
	if _, err := sdk.AccAddressFromBech32(c.Owner); err != nil {
		return ErrInvalidAddress.Wrapf("invalid owner address: %s", err)
	}
	if strings.TrimSpace(c.DenomA) == "" || strings.TrimSpace(c.DenomB) == "" {
		return ErrUnsupportedAsset.Wrap("asset identifiers cannot be empty")
	}
	if c.DenomA == c.DenomB {
		return ErrUnsupportedAsset.Wrapf("asset identifiers must differ, both are %q", c.DenomA)
	}
	if strings.TrimSpace(c.TokenBContract) == "" {
		return ErrInvalidAddress.Wrap("token b contract cannot be empty")
	}
	if strings.TrimSpace(c.ShareTokenContract) == "" {
		return ErrInvalidAddress.Wrap("share token contract cannot be empty")
	}
	if c.TokenBContract == c.ShareTokenContract {
		return ErrInvalidAddress.Wrap("token b and share token contracts must differ")
	}
	return nil
}

// IsAssetA reports whether the identifier names the native asset.
func (c ContractConfig) IsAssetA(asset string) bool {
	return asset == c.DenomA
}

// IsAssetB reports whether the identifier names the external token.
func (c ContractConfig) IsAssetB(asset string) bool {
	return asset == c.DenomB || (asset != "" && asset == c.TokenBContract)
}

// Counterpart returns the other pool asset for a supported input asset.
func (c ContractConfig) Counterpart(asset string) (string, error) {
	switch {
	case c.IsAssetA(asset):
		return c.DenomB, nil
	case c.IsAssetB(asset):
		return c.DenomA, nil
	default:
		return "", ErrUnsupportedAsset.Wrapf("%q is neither %s nor %s", asset, c.DenomA, c.DenomB)
	}
}
