package keeper

import (
	"context"

	storetypes "cosmossdk.io/store/types"
	errorsmod "cosmossdk.io/errors"

	"github.com/interchainswap/core/x/interchainswap/types"
)

// MaxIterationLimit bounds GetAllPools/IteratePools the same way the
// teacher bounds its own pool listing, so an unbounded query can't be used
// to stall block processing.
const MaxIterationLimit = 100

// GetPool loads a pool by id.
func (k Keeper) GetPool(ctx context.Context, poolId string) (types.Pool, bool) {
	store := k.getStore(ctx)
	bz := store.Get(types.GetPoolKey(poolId))
	if bz == nil {
		return types.Pool{}, false
	}
	pool, err := types.UnmarshalPoolFromStore(bz)
	if err != nil {
		return types.Pool{}, false
	}
	return pool, true
}

// SetPool persists a pool and its denom-pair index entry.
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	bz, err := pool.MarshalForStore()
	if err != nil {
		return errorsmod.Wrap(err, "failed to marshal pool")
	}
	store := k.getStore(ctx)
	store.Set(types.GetPoolKey(pool.Id), bz)
	store.Set(types.GetPoolDenomKey(pool.Assets[0].Balance.Denom, pool.Assets[1].Balance.Denom), []byte(pool.Id))
	return nil
}

// HasPool reports whether a pool already exists.
func (k Keeper) HasPool(ctx context.Context, poolId string) bool {
	return k.getStore(ctx).Has(types.GetPoolKey(poolId))
}

// GetPoolByDenoms looks up a pool id by its (unordered) token pair.
func (k Keeper) GetPoolByDenoms(ctx context.Context, denomA, denomB string) (types.Pool, bool) {
	store := k.getStore(ctx)
	idBz := store.Get(types.GetPoolDenomKey(denomA, denomB))
	if idBz == nil {
		return types.Pool{}, false
	}
	return k.GetPool(ctx, string(idBz))
}

// IteratePools calls fn for every persisted pool, stopping early if fn
// returns true, and never visiting more than MaxIterationLimit pools.
func (k Keeper) IteratePools(ctx context.Context, fn func(types.Pool) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKey)
	defer iterator.Close()

	count := 0
	for ; iterator.Valid() && count < MaxIterationLimit; iterator.Next() {
		pool, err := types.UnmarshalPoolFromStore(iterator.Value())
		if err != nil {
			continue
		}
		count++
		if fn(pool) {
			break
		}
	}
}

// GetAllPools returns up to MaxIterationLimit persisted pools.
func (k Keeper) GetAllPools(ctx context.Context) []types.Pool {
	pools := make([]types.Pool, 0)
	k.IteratePools(ctx, func(p types.Pool) bool {
		pools = append(pools, p)
		return false
	})
	return pools
}
