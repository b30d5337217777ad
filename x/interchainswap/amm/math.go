// Package amm implements the weighted-product automated market maker used
// by the interchainswap module: deterministic fixed-point math over a pool
// snapshot, with no store access of its own, so every rule here is testable
// without a running chain.
package amm

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/interchainswap/core/x/interchainswap/types"
)

var one = math.LegacyOneDec()

// PowFrac raises base to the rational exponent num/den as
// ApproxRoot(base^num, den), after reducing num/den by their greatest common
// divisor so base^num stays small — the standard two-primitive decomposition for a
// non-integer weighted-pool exponent built on cosmossdk.io/math.LegacyDec,
// which only exposes integer Power and integer-root ApproxRoot directly.
// Never use float64/math.Pow here: two replicas must produce bit-identical
// results, which native IEEE-754 does not guarantee (spec's fixed-point
// requirement).
func PowFrac(base math.LegacyDec, num, den int64) (math.LegacyDec, error) {
	if !base.IsPositive() {
		return math.LegacyDec{}, errorsmod.Wrap(types.ErrMathDomain, "base must be positive")
	}
	if den <= 0 || num < 0 {
		return math.LegacyDec{}, errorsmod.Wrap(types.ErrMathDomain, "exponent out of domain")
	}
	// base^num overflows LegacyDec long before base^(num/den) does
	// (1000^50 does, 1000^(1/2) does not), so reduce the fraction first.
	a, b := num, den
	for b != 0 {
		a, b = b, a%b
	}
	if a > 1 {
		num, den = num/a, den/a
	}
	powered := base.Power(uint64(num))
	root, err := powered.ApproxRoot(uint64(den))
	if err != nil {
		return math.LegacyDec{}, errorsmod.Wrap(types.ErrMathDomain, err.Error())
	}
	return root, nil
}

// feeMultiplier returns 1 - feeBps/10000 as a LegacyDec, the effective
// multiplier spec §4.2 applies to a swap's input (LeftSwap) or divides out
// of a swap's pre-fee input (RightSwap).
func feeMultiplier(feeBps int64) (math.LegacyDec, error) {
	if feeBps < 0 || feeBps >= 10000 {
		return math.LegacyDec{}, errorsmod.Wrapf(types.ErrMathDomain, "fee %d bps out of domain [0,10000)", feeBps)
	}
	return one.Sub(math.LegacyNewDec(feeBps).QuoInt64(10000)), nil
}
