package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"
	clienttypes "github.com/cosmos/ibc-go/v8/modules/core/02-client/types"
)

// BankKeeper is the Bank contract this module consumes (spec §6): balance
// query, transfer, mint/burn of module-owned coins, and escrow-account
// routing. Satisfied by github.com/cosmos/cosmos-sdk/x/bank/keeper.Keeper.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	HasSupply(ctx context.Context, denom string) bool
}

// AccountKeeper is the Account contract this module consumes: address,
// sequence and public-key lookup, used only by DoubleDeposit's remote-leg
// signature check. Satisfied by github.com/cosmos/cosmos-sdk/x/auth/keeper.AccountKeeper.
type AccountKeeper interface {
	GetAccount(ctx context.Context, addr sdk.AccAddress) sdk.AccountI
}

// SignatureVerifier abstracts signature verification over a public key, so
// the keeper never has to branch on key type.
type SignatureVerifier interface {
	VerifySignature(pubKey []byte, keyType string, message, signature []byte) bool
}

// ParamsKeeper is the Params contract this module consumes: a
// governance-controlled fee rate. Implemented in-module by the store-backed
// keeper/params.go, but modeled as an injected collaborator per spec §6 so a
// host chain can centralize fee governance elsewhere.
type ParamsKeeper interface {
	GetPoolFeeRate(ctx context.Context) math.LegacyDec
}

// ChannelKeeper is the narrow slice of ibc-go's core ChannelKeeper the
// Delegator needs to emit a packet, mirrored on the same interface ibc-go's
// own transfer module declares in its expected_keepers.go rather than
// depending on the concrete *ibckeeper.Keeper — the pattern that lets a
// custom IBC application's keeper be unit-tested against a stub instead of a
// fully wired channel/client/connection stack.
type ChannelKeeper interface {
	SendPacket(
		ctx sdk.Context,
		chanCap *capabilitytypes.Capability,
		sourcePort, sourceChannel string,
		timeoutHeight clienttypes.Height,
		timeoutTimestamp uint64,
		data []byte,
	) (uint64, error)
}

// PortKeeper is the narrow slice of ibc-go's core PortKeeper BindPort needs.
type PortKeeper interface {
	BindPort(ctx sdk.Context, portID string) *capabilitytypes.Capability
	IsBound(ctx sdk.Context, portID string) bool
}
