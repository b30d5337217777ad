package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/math"

	"github.com/interchainswap/core/x/interchainswap/types"
)

// GetParams loads module params from the store, falling back to defaults if
// genesis never set them (store-backed, not a legacy x/params subspace —
// the teacher's newer pattern in x/dex/keeper/params.go).
func (k Keeper) GetParams(ctx context.Context) types.Params {
	store := k.getStore(ctx)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams persists module params.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	bz, err := json.Marshal(params)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}

// GetPoolFeeRate implements types.ParamsKeeper, returning the fee rate as a
// decimal fraction: the parts-per-million PoolFeeRate divided by 1,000,000
// (the default 3000 ppm is returned as 0.003).
func (k Keeper) GetPoolFeeRate(ctx context.Context) math.LegacyDec {
	return math.LegacyNewDec(k.GetParams(ctx).PoolFeeRate).QuoInt64(1_000_000)
}

var _ types.ParamsKeeper = Keeper{}
