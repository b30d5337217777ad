package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/interchainswap/core/x/interchainswap/types"
)

// InitGenesis sets params and restores every persisted pool. Pools are
// trusted as-is — they already passed types.GenesisState.Validate before
// reaching here (module.go calls it during InitGenesis).
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) error {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}
	for _, pool := range genState.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis dumps the current params and pool set.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	return &types.GenesisState{
		Params: k.GetParams(ctx),
		Pools:  k.GetAllPools(ctx),
	}
}
