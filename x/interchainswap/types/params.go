package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Params holds the interchainswap module's governance-controlled
// parameters. Store-backed (keeper/params.go), not a legacy x/params
// subspace — mirrors the teacher's newer store-based Params pattern.
type Params struct {
	// PoolFeeRate is exactly the Params contract's getPoolFeeRate() value
	// (spec §6): parts-per-million, range [1, 100000] for [0.0001%, 10%].
	PoolFeeRate int64 `json:"pool_fee_rate"`
	// MaxSlippageBps bounds the slippage value a swap message may request,
	// expressed in basis points of 1/10000.
	MaxSlippageBps int64 `json:"max_slippage_bps"`
	// MinInitialLiquidity is the minimum geometric-mean supply S a
	// CreatePool seeding double-deposit must mint, adapted from the
	// teacher's MinimumInitialLiquidity dust-pool guard: rejects pools
	// seeded with amounts small enough to be manipulation-prone.
	MinInitialLiquidity int64 `json:"min_initial_liquidity"`
}

// DefaultParams returns 3000 ppm (0.3%), the fee used by every literal
// scenario in spec §8, a max slippage of 50%, and the teacher's 1000-unit
// minimum initial liquidity floor.
func DefaultParams() Params {
	return Params{
		PoolFeeRate:         3000,
		MaxSlippageBps:      5000,
		MinInitialLiquidity: 1000,
	}
}

func (p Params) Validate() error {
	if p.PoolFeeRate < 1 || p.PoolFeeRate > 100000 {
		return errorsmod.Wrapf(ErrValidation, "pool fee rate %d out of range [1,100000]", p.PoolFeeRate)
	}
	if p.MaxSlippageBps <= 0 || p.MaxSlippageBps > 10000 {
		return errorsmod.Wrapf(ErrValidation, "max slippage %d out of range (0,10000]", p.MaxSlippageBps)
	}
	if p.MinInitialLiquidity < 0 {
		return errorsmod.Wrap(ErrValidation, "min initial liquidity cannot be negative")
	}
	return nil
}

// FeeRateBps converts the ppm-denominated PoolFeeRate into the basis points
// of 1/10000 the amm package's LeftSwap/RightSwap expect (spec §4.2's "f"):
// 3000 ppm (0.3%) → 30 bps, matching the fee used throughout spec §8's
// literal scenarios.
func (p Params) FeeRateBps() int64 {
	return p.PoolFeeRate / 100
}
