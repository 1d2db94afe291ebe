package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// MaxUint128 is the largest reserve, share or amount value the pool accepts.
var MaxUint128 = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// LiquidityPool is the singleton pool ledger.
type LiquidityPool struct {
	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`
}

// EmptyPool returns a pool with every field zero.
func EmptyPool() LiquidityPool {
	return LiquidityPool{
		ReserveA:    math.ZeroInt(),
		ReserveB:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
	}
}

// IsEmpty reports whether no shares are outstanding.
func (p LiquidityPool) IsEmpty() bool {
	return p.TotalShares.IsZero()
}

// HasReserves reports whether both reserves are positive.
func (p LiquidityPool) HasReserves() bool {
	return p.ReserveA.IsPositive() && p.ReserveB.IsPositive()
}

// Validate checks the ledger invariants that hold independently of the share book.
func (p LiquidityPool) Validate() error {
	fields := []struct {
		name string
		v    math.Int
	}{
		{"reserve_a", p.ReserveA},
		{"reserve_b", p.ReserveB},
		{"total_shares", p.TotalShares},
	}
	for _, f := range fields {
		if f.v.IsNil() {
			return ErrInvariantViolation.Wrapf("%s is nil", f.name)
		}
		if err := ValidateUint128(f.v); err != nil {
			return ErrInvariantViolation.Wrapf("%s: %s", f.name, err)
		}
	}

	zeroA, zeroB, zeroShares := p.ReserveA.IsZero(), p.ReserveB.IsZero(), p.TotalShares.IsZero()
	if zeroA != zeroB || zeroB != zeroShares {
		return ErrInvariantViolation.Wrapf("pool must be fully empty or fully seeded: %s", p)
	}
	return nil
}

func (p LiquidityPool) String() string {
	return fmt.Sprintf("reserve_a=%s reserve_b=%s total_shares=%s", p.ReserveA, p.ReserveB, p.TotalShares)
}

// ValidateUint128 rejects values outside [0, 2^128-1].
func ValidateUint128(v math.Int) error {
	if v.IsNil() {
		return fmt.Errorf("value is nil")
	}
	if v.IsNegative() {
		return fmt.Errorf("value %s is negative", v)
	}
	if v.GT(MaxUint128) {
		return fmt.Errorf("value %s exceeds 128 bits", v)
	}
	return nil
}

// ValidatePositiveAmount checks a caller-declared amount.
func ValidatePositiveAmount(name string, v math.Int) error {
	if v.IsNil() || !v.IsPositive() {
		return ErrInvalidAmount.Wrapf("%s must be positive", name)
	}
	if err := ValidateUint128(v); err != nil {
		return ErrInvalidAmount.Wrapf("%s: %s", name, err)
	}
	return nil
}
