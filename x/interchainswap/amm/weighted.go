package amm

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/interchainswap/core/x/interchainswap/types"
)

// MarketPrice returns the spot price SP = (Bi/wi) / (Bo/wo), simplified to
// (Bi*wo)/(Bo*wi) so the normalized weights' common factor of 1/100 cancels
// and the raw integer weights can be used directly.
func MarketPrice(balIn, balOut math.Int, weightIn, weightOut int64) (math.LegacyDec, error) {
	if balOut.IsZero() || balIn.IsZero() {
		return math.LegacyDec{}, errorsmod.Wrap(types.ErrEmptyPool, "cannot price an empty-side pool")
	}
	num := balIn.ToLegacyDec().MulInt64(weightOut)
	den := balOut.ToLegacyDec().MulInt64(weightIn)
	return num.Quo(den), nil
}

// DepositSingle issues LP for a single-sided deposit of amountIn against
// balIn: P = S * ((1 + Ai/Bi)^wi - 1). Requires an already-seeded pool
// (balIn > 0); a zero balance means this would be seeding a pool
// single-sided, which spec's design note #2 explicitly disallows — seeding
// must go through DepositDoubleSeed.
func DepositSingle(supply, balIn math.Int, weightIn int64, amountIn math.Int) (math.Int, error) {
	if balIn.IsZero() {
		return math.Int{}, errorsmod.Wrap(types.ErrEmptyPool, "single-sided deposit cannot seed an empty pool")
	}
	ratio := one.Add(amountIn.ToLegacyDec().Quo(balIn.ToLegacyDec()))
	powered, err := PowFrac(ratio, weightIn, 100)
	if err != nil {
		return math.Int{}, err
	}
	lp := supply.ToLegacyDec().Mul(powered.Sub(one))
	// Toward zero: protects existing LPs from being diluted by rounding.
	return lp.TruncateInt(), nil
}

// DepositDoubleSeed seeds an empty pool from its first double-sided
// deposit. S is the geometric mean of the two amounts (manipulation
// resistant, and matching the scenario in spec §8 S1: 1e6 ATOM + 1e6 OSMO
// seeds S = 1e6). The total is then split between the two legs by their
// pool weight so lpA+lpB == S exactly — any truncation remainder is folded
// into the second leg rather than lost, preserving supply conservation.
// minSupply rejects a seed small enough to be manipulation-prone, adapted
// from the teacher's MinimumInitialLiquidity dust-pool guard.
func DepositDoubleSeed(amountA, amountB math.Int, weightA, weightB int64, minSupply math.Int) (supply, lpA, lpB math.Int, err error) {
	if !amountA.IsPositive() || !amountB.IsPositive() {
		return math.Int{}, math.Int{}, math.Int{}, errorsmod.Wrap(types.ErrInvalidAmount, "seeding deposit requires positive amounts on both sides")
	}
	seed, sqrtErr := amountA.ToLegacyDec().Mul(amountB.ToLegacyDec()).ApproxSqrt()
	if sqrtErr != nil {
		return math.Int{}, math.Int{}, math.Int{}, errorsmod.Wrap(types.ErrMathDomain, sqrtErr.Error())
	}
	supply = seed.TruncateInt()
	if supply.LT(minSupply) {
		return math.Int{}, math.Int{}, math.Int{}, errorsmod.Wrapf(types.ErrDustPool, "seed supply %s below minimum %s", supply, minSupply)
	}
	lpA = supply.ToLegacyDec().MulInt64(weightA).QuoInt64(100).TruncateInt()
	lpB = supply.Sub(lpA)
	return supply, lpA, lpB, nil
}

// DepositDoubleLeg issues LP for one leg of an ongoing (post-seeding)
// double-sided deposit: P_k = S * (Ak/Bk), the linear form spec §4.2 gives
// for DoubleDeposit (the "(1 + A/B - 1)" expression collapses to A/B).
func DepositDoubleLeg(supply, bal, amount math.Int) (math.Int, error) {
	if bal.IsZero() {
		return math.Int{}, errorsmod.Wrap(types.ErrEmptyPool, "cannot deposit into an empty, unseeded side")
	}
	lp := supply.ToLegacyDec().Mul(amount.ToLegacyDec()).Quo(bal.ToLegacyDec())
	return lp.TruncateInt(), nil
}

// Withdraw redeems LP amount redeem for denom-out balance balOut:
// Ao = Bo * (1 - (1 - R/S)^(1/wo)).
func Withdraw(supply, balOut math.Int, weightOut int64, redeem math.Int) (math.Int, error) {
	if supply.IsZero() || balOut.IsZero() {
		return math.Int{}, errorsmod.Wrap(types.ErrEmptyPool, "cannot withdraw from an empty pool")
	}
	if redeem.GT(supply) {
		return math.Int{}, errorsmod.Wrap(types.ErrInsufficientFunds, "redeem amount exceeds outstanding supply")
	}
	ratio := one.Sub(redeem.ToLegacyDec().Quo(supply.ToLegacyDec()))
	// 1/wo == 100/weightOut.
	powered, err := PowFrac(ratio, 100, weightOut)
	if err != nil {
		return math.Int{}, err
	}
	amountOut := balOut.ToLegacyDec().Mul(one.Sub(powered))
	// Toward zero: protects the pool against over-paying on rounding.
	return amountOut.TruncateInt(), nil
}

// LeftSwap computes the out-given-in swap: fee is taken off the input
// first, then Ao = Bo * (1 - (Bi/(Bi+A'i))^(wi/wo)).
func LeftSwap(balIn, balOut math.Int, weightIn, weightOut int64, amountIn math.Int, feeBps int64) (math.Int, error) {
	if balIn.IsZero() || balOut.IsZero() {
		return math.Int{}, errorsmod.Wrap(types.ErrEmptyPool, "cannot swap against an empty pool side")
	}
	mult, err := feeMultiplier(feeBps)
	if err != nil {
		return math.Int{}, err
	}
	amountInAfterFee := amountIn.ToLegacyDec().Mul(mult)
	base := balIn.ToLegacyDec().Quo(balIn.ToLegacyDec().Add(amountInAfterFee))
	powered, err := PowFrac(base, weightIn, weightOut)
	if err != nil {
		return math.Int{}, err
	}
	amountOutDec := balOut.ToLegacyDec().Mul(one.Sub(powered))
	amountOut := amountOutDec.TruncateInt()
	if amountOut.GTE(balOut) {
		return math.Int{}, errorsmod.Wrap(types.ErrMathDomain, "swap would drain the pool's output side")
	}
	return amountOut, nil
}

// RightSwap computes the in-given-out swap: solve for the pre-fee input
// A'i = Bi * ((Bo/(Bo-Ao))^(wo/wi) - 1), then gross up by the fee so the
// caller's actual payment is Ai = A'i / (1 - f/10000).
func RightSwap(balIn, balOut math.Int, weightIn, weightOut int64, amountOut math.Int, feeBps int64) (math.Int, error) {
	if balIn.IsZero() || balOut.IsZero() {
		return math.Int{}, errorsmod.Wrap(types.ErrEmptyPool, "cannot swap against an empty pool side")
	}
	if amountOut.GTE(balOut) {
		return math.Int{}, errorsmod.Wrap(types.ErrMathDomain, "requested output exceeds the pool's output-side balance")
	}
	base := balOut.ToLegacyDec().Quo(balOut.Sub(amountOut).ToLegacyDec())
	powered, err := PowFrac(base, weightOut, weightIn)
	if err != nil {
		return math.Int{}, err
	}
	amountInPreFee := balIn.ToLegacyDec().Mul(powered.Sub(one))
	mult, err := feeMultiplier(feeBps)
	if err != nil {
		return math.Int{}, err
	}
	amountIn := amountInPreFee.Quo(mult)
	// Away from zero: protects the pool by never under-charging the payer.
	return amountIn.Ceil().TruncateInt(), nil
}

// InvariantV computes the weighted-product invariant V = B0^(w0/100) *
// B1^(w1/100), used to assert spec invariant 5 (monotonic non-decrease)
// across any sequence of fee-bearing operations.
func InvariantV(bal0, bal1 math.Int, weight0, weight1 int64) (math.LegacyDec, error) {
	if bal0.IsZero() || bal1.IsZero() {
		return math.LegacyDec{}, errorsmod.Wrap(types.ErrEmptyPool, "invariant undefined for an empty pool side")
	}
	p0, err := PowFrac(bal0.ToLegacyDec(), weight0, 100)
	if err != nil {
		return math.LegacyDec{}, err
	}
	p1, err := PowFrac(bal1.ToLegacyDec(), weight1, 100)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return p0.Mul(p1), nil
}
