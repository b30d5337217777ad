package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	clienttypes "github.com/cosmos/ibc-go/v8/modules/core/02-client/types"

	"github.com/interchainswap/core/x/interchainswap/types"
)

// The Delegator runs entirely on the initiating chain. For every user
// message it performs, in order: syntactic validation (already done by the
// message's ValidateBasic before it reaches here), an existence/state
// check, a balance check, escrow, and packet emission (spec §4.5). It never
// mutates the Pool Store — only Escrow and SendPacket.

func (k Keeper) sendPacket(ctx sdk.Context, sourceChannel string, timeoutHeight uint64, timeoutTimestamp uint64, data []byte) (uint64, error) {
	chanCap, ok := k.GetChannelCapability(ctx, types.PortID, sourceChannel)
	if !ok {
		return 0, errorsmod.Wrap(types.ErrValidation, "no channel capability found for the given port/channel")
	}
	height := clienttypes.ZeroHeight()
	if timeoutHeight > 0 {
		height = clienttypes.NewHeight(0, timeoutHeight)
	}
	return k.channelKeeper.SendPacket(ctx, chanCap, types.PortID, sourceChannel, height, timeoutTimestamp, data)
}

// DelegateCreatePool validates pool absence, then emits the packet. There is
// nothing to escrow for a bare pool creation — the seeding liquidity is a
// separate DoubleDeposit the caller must submit once the pool's create ack
// returns the derived pool id.
func (k Keeper) DelegateCreatePool(ctx sdk.Context, msg types.MsgCreatePool) (uint64, error) {
	poolId := types.GeneratePoolId(msg.Denoms[0], msg.Denoms[1])
	if k.HasPool(ctx, poolId) {
		return 0, errorsmod.Wrapf(types.ErrPoolAlreadyExists, "pool %s already exists", poolId)
	}

	packet := types.NewCreatePoolPacket(types.PortID, msg.SourceChannel, msg.Sender, msg.Denoms, msg.Decimals, msg.Weights)
	if err := packet.ValidateBasic(); err != nil {
		return 0, err
	}
	data, err := packet.GetBytes()
	if err != nil {
		return 0, err
	}

	seq, err := k.sendPacket(ctx, msg.SourceChannel, msg.TimeoutHeight, msg.TimeoutTimestamp, data)
	if err != nil {
		return 0, err
	}
	if err := k.SetPendingOp(ctx, PendingOp{
		PortID: types.PortID, ChannelID: msg.SourceChannel, Sequence: seq,
		PacketType: types.CreatePoolType, Sender: msg.Sender, PoolId: poolId,
	}); err != nil {
		return 0, err
	}
	return seq, nil
}

// DelegateSingleDeposit requires an existing, Ready pool, escrows the
// deposit, then emits the packet.
func (k Keeper) DelegateSingleDeposit(ctx sdk.Context, msg types.MsgSingleDeposit) (uint64, error) {
	pool, found := k.GetPool(ctx, msg.PoolId)
	if !found {
		return 0, errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s not found", msg.PoolId)
	}
	if pool.Status != types.PoolStatusReady {
		return 0, errorsmod.Wrap(types.ErrInvalidState, "pool is not ready for single-sided deposit")
	}
	if _, ok := pool.AssetIndex(msg.Token.Denom); !ok {
		return 0, errorsmod.Wrapf(types.ErrValidation, "denom %s is not part of pool %s", msg.Token.Denom, msg.PoolId)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return 0, errorsmod.Wrap(types.ErrValidation, err.Error())
	}
	coin := sdk.NewCoin(msg.Token.Denom, msg.Token.Amount)
	if bal := k.bankKeeper.GetBalance(ctx, sender, coin.Denom); bal.Amount.LT(coin.Amount) {
		return 0, errorsmod.Wrapf(types.ErrInsufficientFunds, "sender holds %s, needs %s", bal, coin)
	}

	if err := k.EscrowToModule(ctx, types.PortID, msg.SourceChannel, sender, coin); err != nil {
		return 0, err
	}

	packet := types.NewSingleDepositPacket(msg.PoolId, msg.Sender, msg.Token)
	if err := packet.ValidateBasic(); err != nil {
		return 0, err
	}
	data, err := packet.GetBytes()
	if err != nil {
		return 0, err
	}

	seq, err := k.sendPacket(ctx, msg.SourceChannel, msg.TimeoutHeight, msg.TimeoutTimestamp, data)
	if err != nil {
		return 0, err
	}
	if err := k.SetPendingOp(ctx, PendingOp{
		PortID: types.PortID, ChannelID: msg.SourceChannel, Sequence: seq,
		PacketType: types.SingleDepositType, Sender: msg.Sender, PoolId: msg.PoolId, EscrowCoin: msg.Token,
	}); err != nil {
		return 0, err
	}
	return seq, nil
}

// DelegateDoubleDeposit escrows only the local leg (the remote leg is
// escrowed on the peer chain by the same flow, driven by its own submitted
// message) and carries the remote leg's claimed sender/sequence/signature
// for the Relay Listener to verify against Account.
func (k Keeper) DelegateDoubleDeposit(ctx sdk.Context, msg types.MsgDoubleDeposit) (uint64, error) {
	pool, found := k.GetPool(ctx, msg.PoolId)
	if !found {
		return 0, errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s not found", msg.PoolId)
	}
	if _, ok := pool.AssetIndex(msg.LocalToken.Denom); !ok {
		return 0, errorsmod.Wrapf(types.ErrValidation, "denom %s is not part of pool %s", msg.LocalToken.Denom, msg.PoolId)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return 0, errorsmod.Wrap(types.ErrValidation, err.Error())
	}
	coin := sdk.NewCoin(msg.LocalToken.Denom, msg.LocalToken.Amount)
	if bal := k.bankKeeper.GetBalance(ctx, sender, coin.Denom); bal.Amount.LT(coin.Amount) {
		return 0, errorsmod.Wrapf(types.ErrInsufficientFunds, "sender holds %s, needs %s", bal, coin)
	}

	if err := k.EscrowToModule(ctx, types.PortID, msg.SourceChannel, sender, coin); err != nil {
		return 0, err
	}

	packet := types.NewDoubleDepositPacket(msg.PoolId,
		types.DepositLeg{Sender: msg.Sender, Token: msg.LocalToken},
		types.DepositLeg{Sender: msg.RemoteSender, Token: msg.RemoteToken, Sequence: msg.RemoteSequence, Signature: msg.RemoteSignature},
	)
	if err := packet.ValidateBasic(); err != nil {
		return 0, err
	}
	data, err := packet.GetBytes()
	if err != nil {
		return 0, err
	}

	seq, err := k.sendPacket(ctx, msg.SourceChannel, msg.TimeoutHeight, msg.TimeoutTimestamp, data)
	if err != nil {
		return 0, err
	}
	if err := k.SetPendingOp(ctx, PendingOp{
		PortID: types.PortID, ChannelID: msg.SourceChannel, Sequence: seq,
		PacketType: types.DoubleDepositType, Sender: msg.Sender, PoolId: msg.PoolId, EscrowCoin: msg.LocalToken,
	}); err != nil {
		return 0, err
	}
	return seq, nil
}

// DelegateWithdraw requires Ready, pulls the LP coin into the module account
// (not burned yet — burn is deferred to ack finalization per spec §4.6), and
// emits the packet.
func (k Keeper) DelegateWithdraw(ctx sdk.Context, msg types.MsgWithdraw) (uint64, error) {
	pool, found := k.GetPool(ctx, msg.PoolCoin.Denom)
	if !found {
		return 0, errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s not found", msg.PoolCoin.Denom)
	}
	if pool.Status != types.PoolStatusReady {
		return 0, errorsmod.Wrap(types.ErrInvalidState, "pool is not ready for withdrawal")
	}
	if msg.PoolCoin.Amount.GT(pool.Supply.Amount) {
		return 0, errorsmod.Wrap(types.ErrInsufficientFunds, "redeem amount exceeds outstanding supply")
	}
	if _, ok := pool.AssetIndex(msg.DenomOut); !ok {
		return 0, errorsmod.Wrapf(types.ErrValidation, "denom %s is not part of pool %s", msg.DenomOut, pool.Id)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return 0, errorsmod.Wrap(types.ErrValidation, err.Error())
	}
	lpCoin := sdk.NewCoin(msg.PoolCoin.Denom, msg.PoolCoin.Amount)
	if bal := k.bankKeeper.GetBalance(ctx, sender, lpCoin.Denom); bal.Amount.LT(lpCoin.Amount) {
		return 0, errorsmod.Wrapf(types.ErrInsufficientFunds, "sender holds %s, needs %s", bal, lpCoin)
	}
	if err := k.PullLPToModule(ctx, sender, lpCoin); err != nil {
		return 0, err
	}

	packet := types.NewWithdrawPacket(msg.Sender, msg.PoolCoin, msg.DenomOut)
	if err := packet.ValidateBasic(); err != nil {
		return 0, err
	}
	data, err := packet.GetBytes()
	if err != nil {
		return 0, err
	}

	seq, err := k.sendPacket(ctx, msg.SourceChannel, msg.TimeoutHeight, msg.TimeoutTimestamp, data)
	if err != nil {
		return 0, err
	}
	if err := k.SetPendingOp(ctx, PendingOp{
		PortID: types.PortID, ChannelID: msg.SourceChannel, Sequence: seq,
		PacketType: types.WithdrawType, Sender: msg.Sender, PoolId: pool.Id, EscrowCoin: msg.PoolCoin,
	}); err != nil {
		return 0, err
	}
	return seq, nil
}

// DelegateLeftSwap requires Ready, escrows the input, emits the packet.
func (k Keeper) DelegateLeftSwap(ctx sdk.Context, msg types.MsgLeftSwap) (uint64, error) {
	return k.delegateSwap(ctx, types.LeftSwapType, msg.Sender, msg.SourceChannel, msg.TokenIn, msg.TokenOut, msg.Slippage, msg.Recipient, msg.TimeoutHeight, msg.TimeoutTimestamp)
}

// DelegateRightSwap requires Ready, escrows the input amount the caller
// names in TokenIn, emits the packet. The Relay Listener computes the
// actual input required and accepts it up to TokenIn.Amount *
// (1 + slippage/10000), which can exceed the escrowed amount. The ack
// handler credits that computed input to the local mirror without moving
// escrow, so any difference from the escrowed amount is neither refunded
// nor collected.
func (k Keeper) DelegateRightSwap(ctx sdk.Context, msg types.MsgRightSwap) (uint64, error) {
	return k.delegateSwap(ctx, types.RightSwapType, msg.Sender, msg.SourceChannel, msg.TokenIn, msg.TokenOut, msg.Slippage, msg.Recipient, msg.TimeoutHeight, msg.TimeoutTimestamp)
}

func (k Keeper) delegateSwap(ctx sdk.Context, swapType, sender, sourceChannel string, tokenIn, tokenOut types.Coin, slippage int64, recipient string, timeoutHeight, timeoutTimestamp uint64) (uint64, error) {
	pool, found := k.GetPoolByDenoms(ctx, tokenIn.Denom, tokenOut.Denom)
	if !found {
		return 0, errorsmod.Wrapf(types.ErrPoolNotFound, "no pool for %s/%s", tokenIn.Denom, tokenOut.Denom)
	}
	if pool.Status != types.PoolStatusReady {
		return 0, errorsmod.Wrap(types.ErrInvalidState, "pool is not ready for swaps")
	}
	if maxSlippage := k.GetParams(ctx).MaxSlippageBps; slippage > maxSlippage {
		return 0, errorsmod.Wrapf(types.ErrValidation, "slippage %d bps exceeds the maximum %d", slippage, maxSlippage)
	}

	senderAddr, err := sdk.AccAddressFromBech32(sender)
	if err != nil {
		return 0, errorsmod.Wrap(types.ErrValidation, err.Error())
	}
	inCoin := sdk.NewCoin(tokenIn.Denom, tokenIn.Amount)
	if bal := k.bankKeeper.GetBalance(ctx, senderAddr, inCoin.Denom); bal.Amount.LT(inCoin.Amount) {
		return 0, errorsmod.Wrapf(types.ErrInsufficientFunds, "sender holds %s, needs %s", bal, inCoin)
	}
	if err := k.EscrowToModule(ctx, types.PortID, sourceChannel, senderAddr, inCoin); err != nil {
		return 0, err
	}

	var packet types.SwapPacketData
	if swapType == types.LeftSwapType {
		packet = types.NewLeftSwapPacket(sender, tokenIn, tokenOut, slippage, recipient)
	} else {
		packet = types.NewRightSwapPacket(sender, tokenIn, tokenOut, slippage, recipient)
	}
	if err := packet.ValidateBasic(); err != nil {
		return 0, err
	}
	data, err := packet.GetBytes()
	if err != nil {
		return 0, err
	}

	seq, err := k.sendPacket(ctx, sourceChannel, timeoutHeight, timeoutTimestamp, data)
	if err != nil {
		return 0, err
	}
	if err := k.SetPendingOp(ctx, PendingOp{
		PortID: types.PortID, ChannelID: sourceChannel, Sequence: seq,
		PacketType: swapType, Sender: sender, PoolId: pool.Id, EscrowCoin: tokenIn,
		SentAt: ctx.BlockTime(),
	}); err != nil {
		return 0, err
	}
	return seq, nil
}
