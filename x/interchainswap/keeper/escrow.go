package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/interchainswap/core/x/interchainswap/types"
)

// EscrowAddress derives a deterministic, module-owned address from
// (port, channel) — never stored, always recomputed, the same
// derive-don't-store approach the teacher uses for its cached module
// address (x/dex/keeper/pool.go's GetModuleAddress). Every replica that
// knows the channel can independently recompute the same escrow address.
func EscrowAddress(portID, channelID string) sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName + "/" + portID + "/" + channelID)
}

// EscrowToModule moves coin from sender into the (port,channel) escrow
// address, the Delegator's step 4. It must run atomically with the
// surrounding handler's packet send — if the caller aborts afterward, the
// host's transactional commit rolls this transfer back too.
func (k Keeper) EscrowToModule(ctx context.Context, portID, channelID string, sender sdk.AccAddress, coin sdk.Coin) error {
	escrowAddr := EscrowAddress(portID, channelID)
	return k.bankKeeper.SendCoins(ctx, sender, escrowAddr, sdk.NewCoins(coin))
}

// RefundFromEscrow releases the original escrowed coin back to sender; used
// by Refund on Error ack or timeout (spec §4.5/§7).
func (k Keeper) RefundFromEscrow(ctx context.Context, portID, channelID string, sender sdk.AccAddress, coin sdk.Coin) error {
	escrowAddr := EscrowAddress(portID, channelID)
	return k.bankKeeper.SendCoins(ctx, escrowAddr, sender, sdk.NewCoins(coin))
}

// PayFromEscrow delivers a swap's or withdraw's output token from this
// chain's escrow to recipient (Relay Listener side, spec §4.6).
func (k Keeper) PayFromEscrow(ctx context.Context, portID, channelID string, recipient sdk.AccAddress, coin sdk.Coin) error {
	escrowAddr := EscrowAddress(portID, channelID)
	return k.bankKeeper.SendCoins(ctx, escrowAddr, recipient, sdk.NewCoins(coin))
}

// MintAndTransferLP mints pool-token LP and hands it to recipient; used when
// a SingleDeposit/DoubleDeposit ack finalizes, or a DoubleDeposit's remote
// leg mints a voucher on the peer chain (spec §4.6 — the voucher is an
// ordinary LP coin, not a distinct token class; see SPEC_FULL.md open
// question 4).
func (k Keeper) MintAndTransferLP(ctx context.Context, recipient sdk.AccAddress, coin sdk.Coin) error {
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, sdk.NewCoins(coin)); err != nil {
		return err
	}
	return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, sdk.NewCoins(coin))
}

// BurnLPFromModule burns LP coin previously pulled into the module account
// by the caller (Withdraw's ack finalization).
func (k Keeper) BurnLPFromModule(ctx context.Context, coin sdk.Coin) error {
	return k.bankKeeper.BurnCoins(ctx, types.ModuleName, sdk.NewCoins(coin))
}

// PullLPToModule transfers the LP coin the user is redeeming from their
// account into the module account so it can be burned atomically with the
// rest of Withdraw's ack handling.
func (k Keeper) PullLPToModule(ctx context.Context, sender sdk.AccAddress, coin sdk.Coin) error {
	return k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, sdk.NewCoins(coin))
}
