package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterLegacyAminoCodec registers the module's messages on the provided
// LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreatePool{}, ModuleName+"/MsgCreatePool", nil)
	cdc.RegisterConcrete(&MsgSingleDeposit{}, ModuleName+"/MsgSingleDeposit", nil)
	cdc.RegisterConcrete(&MsgDoubleDeposit{}, ModuleName+"/MsgDoubleDeposit", nil)
	cdc.RegisterConcrete(&MsgWithdraw{}, ModuleName+"/MsgWithdraw", nil)
	cdc.RegisterConcrete(&MsgLeftSwap{}, ModuleName+"/MsgLeftSwap", nil)
	cdc.RegisterConcrete(&MsgRightSwap{}, ModuleName+"/MsgRightSwap", nil)
}

// RegisterInterfaces registers the module's messages with the given
// interface registry.
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreatePool{},
		&MsgSingleDeposit{},
		&MsgDoubleDeposit{},
		&MsgWithdraw{},
		&MsgLeftSwap{},
		&MsgRightSwap{},
	)
}

var (
	amino     = codec.NewLegacyAmino()
	ModuleCdc = codec.NewAminoCodec(amino)
)

func init() {
	RegisterLegacyAminoCodec(amino)
	amino.Seal()
}
