package types

import (
	"fmt"
)

// ShareMintFormula selects how shares are minted when seeding an empty pool.
type ShareMintFormula string

const (
	// ShareMintGeometricMean mints floor(sqrt(a*b)) shares.
	ShareMintGeometricMean ShareMintFormula = "geometric_mean"

	// ShareMintScaledGeometricMean mints floor(sqrt(a*b) / 3.14918), computed as
	// floor(isqrt(a*b*ScaledMintNumerator^2) / ScaledMintDenominator) so the
	// square root is not truncated before scaling.
	ShareMintScaledGeometricMean ShareMintFormula = "scaled_geometric_mean"
)

const (
	// BpsDenominator is the basis-point scale of FeeBps
	BpsDenominator = 10_000

	// DefaultFeeBps is the 0.30% trading fee
	DefaultFeeBps uint32 = 30

	ScaledMintNumerator   = 100_000
	ScaledMintDenominator = 314_918
)

// Params holds the pricing and minting configuration of the pool.
type Params struct {
	FeeBps           uint32           `json:"fee_bps"`
	ShareMintFormula ShareMintFormula `json:"share_mint_formula"`
}

// DefaultParams returns default parameters for the amm module
func DefaultParams() Params {
	return Params{
		FeeBps:           DefaultFeeBps,
		ShareMintFormula: ShareMintGeometricMean,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.FeeBps >= BpsDenominator {
		return ErrInvalidParams.Wrapf("fee bps must be below %d, got %d", BpsDenominator, p.FeeBps)
	}
	return p.ShareMintFormula.Validate()
}

// Validate checks that the formula is one of the known variants.
func (f ShareMintFormula) Validate() error {
	switch f {
	case ShareMintGeometricMean, ShareMintScaledGeometricMean:
		return nil
	default:
		return ErrInvalidParams.Wrapf("unknown share mint formula %q", string(f))
	}
}

func (p Params) String() string {
	return fmt.Sprintf("fee_bps=%d share_mint_formula=%s", p.FeeBps, p.ShareMintFormula)
}
