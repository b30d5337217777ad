package types

import (
	errorsmod "cosmossdk.io/errors"
)

// GenesisState defines the interchainswap module's genesis state.
type GenesisState struct {
	Params Params `json:"params"`
	Pools  []Pool `json:"pools"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Pools:  []Pool{},
	}
}

// Validate performs basic genesis state validation, returning an error upon
// any failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(gs.Pools))
	for _, pool := range gs.Pools {
		if seen[pool.Id] {
			return errorsmod.Wrapf(ErrPoolAlreadyExists, "duplicate pool %s in genesis", pool.Id)
		}
		seen[pool.Id] = true
		if err := pool.Validate(); err != nil {
			return errorsmod.Wrapf(err, "pool %s", pool.Id)
		}
	}
	return nil
}
