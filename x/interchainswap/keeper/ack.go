package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"

	"github.com/interchainswap/core/x/interchainswap/amm"
	"github.com/interchainswap/core/x/interchainswap/types"
)

// OnAcknowledgementPacket runs on the initiating chain once the receiving
// chain's ack comes back (spec §4.6/§4.5). A Success ack finalizes the
// Delegator's optimistic escrow: the initiator recomputes, against its own
// local mirror, exactly what the Relay Listener already computed on the
// counterparty, so both replicas converge on identical state once every
// in-flight packet has drained (invariant 4). An Error ack refunds.
func (k Keeper) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, ack channeltypes.Acknowledgement) error {
	op, found := k.GetPendingOp(ctx, packet.SourceChannel, packet.Sequence)
	if !found {
		return nil
	}
	defer k.DeletePendingOp(ctx, packet.SourceChannel, packet.Sequence)

	if !ack.Success() {
		return k.RefundPendingOp(ctx, op)
	}

	if !op.SentAt.IsZero() && (op.PacketType == types.LeftSwapType || op.PacketType == types.RightSwapType) {
		GetMetrics().SwapLatency.Observe(ctx.BlockTime().Sub(op.SentAt).Seconds())
	}

	original, err := types.ParsePacketData(packet.Data)
	if err != nil {
		return err
	}

	result := ack.GetResult()

	switch p := original.(type) {
	case types.CreatePoolPacketData:
		return k.finalizeCreatePool(ctx, packet, p)
	case types.SingleDepositPacketData:
		return k.finalizeSingleDeposit(ctx, p, result)
	case types.DoubleDepositPacketData:
		return k.finalizeDoubleDeposit(ctx, p, result)
	case types.WithdrawPacketData:
		return k.finalizeWithdraw(ctx, p)
	case types.SwapPacketData:
		return k.finalizeSwap(ctx, p)
	default:
		return errorsmod.Wrap(types.ErrInvalidPacket, "unrecognized packet payload in ack finalization")
	}
}

// OnTimeoutPacket runs on the initiating chain when a packet's relay window
// elapses with no ack. Always a Refund — the receiving chain never applied
// the operation (spec §4.5/§7).
func (k Keeper) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet) error {
	op, found := k.GetPendingOp(ctx, packet.SourceChannel, packet.Sequence)
	if !found {
		return nil
	}
	defer k.DeletePendingOp(ctx, packet.SourceChannel, packet.Sequence)
	GetMetrics().PacketTimeouts.WithLabelValues(op.PacketType).Inc()
	return k.RefundPendingOp(ctx, op)
}

func (k Keeper) RefundPendingOp(ctx sdk.Context, op PendingOp) error {
	if op.EscrowCoin.Denom == "" || !op.EscrowCoin.IsPositive() {
		return nil
	}
	sender, err := sdk.AccAddressFromBech32(op.Sender)
	if err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}
	coin := sdk.NewCoin(op.EscrowCoin.Denom, op.EscrowCoin.Amount)
	GetMetrics().Refunds.WithLabelValues(op.PacketType).Inc()

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeRefund,
		sdk.NewAttribute(types.AttributeKeyPacketType, op.PacketType),
		sdk.NewAttribute(types.AttributeKeySender, op.Sender),
	))

	if op.PacketType == types.WithdrawType {
		// The Delegator pulled the LP coin into the module account
		// (PullLPToModule), not into port/channel escrow — return it the
		// same way.
		return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, sender, sdk.NewCoins(coin))
	}
	return k.RefundFromEscrow(ctx, op.PortID, op.ChannelID, sender, coin)
}

// finalizeCreatePool builds this chain's own local mirror of the pool the
// Delegator requested, using this chain's own Native/Remote resolution —
// deliberately independent of the receiving chain's, since the same token
// is Native on exactly one side. It does not yet mark the pool Ready; per
// SPEC_FULL.md open question 1, readiness only transitions on the first
// successful DoubleDeposit ack.
func (k Keeper) finalizeCreatePool(ctx sdk.Context, packet channeltypes.Packet, p types.CreatePoolPacketData) error {
	poolId := types.GeneratePoolId(p.Denoms[0], p.Denoms[1])
	if k.HasPool(ctx, poolId) {
		return nil
	}
	sides, err := k.resolveSides(ctx, p.Denoms)
	if err != nil {
		return err
	}
	pool := types.Pool{
		Id: poolId,
		Assets: [2]types.PoolAsset{
			{Side: sides[0], Balance: types.NewCoin(p.Denoms[0], math.ZeroInt()), Weight: p.Weights[0], Decimal: p.Decimals[0]},
			{Side: sides[1], Balance: types.NewCoin(p.Denoms[1], math.ZeroInt()), Weight: p.Weights[1], Decimal: p.Decimals[1]},
		},
		Supply:    types.NewCoin(poolId, math.ZeroInt()),
		Status:    types.PoolStatusInitial,
		PortId:    packet.SourcePort,
		ChannelId: packet.SourceChannel,
	}
	if err := pool.Validate(); err != nil {
		return err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}
	m := GetMetrics()
	m.PoolCreations.Inc()
	m.PoolsTotal.Inc()
	return nil
}

func (k Keeper) finalizeSingleDeposit(ctx sdk.Context, p types.SingleDepositPacketData, ackBytes []byte) error {
	var ack types.SingleDepositAck
	if err := json.Unmarshal(ackBytes, &ack); err != nil {
		return errorsmod.Wrap(types.ErrInvalidPacket, err.Error())
	}
	pool, found := k.GetPool(ctx, p.PoolId)
	if !found {
		return errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s not found", p.PoolId)
	}
	idx, ok := pool.AssetIndex(p.Token.Denom)
	if !ok {
		return errorsmod.Wrapf(types.ErrValidation, "denom %s is not part of pool %s", p.Token.Denom, p.PoolId)
	}

	pool.Assets[idx].Balance.Amount = pool.Assets[idx].Balance.Amount.Add(p.Token.Amount)
	pool.Supply.Amount = pool.Supply.Amount.Add(ack.PoolToken.Amount)
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	sender, err := sdk.AccAddressFromBech32(p.Sender)
	if err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}
	GetMetrics().DepositsTotal.WithLabelValues(pool.Id, "single").Inc()
	return k.MintAndTransferLP(ctx, sender, sdk.NewCoin(pool.Id, ack.PoolToken.Amount))
}

func (k Keeper) finalizeDoubleDeposit(ctx sdk.Context, p types.DoubleDepositPacketData, ackBytes []byte) error {
	var ack types.DoubleDepositAck
	if err := json.Unmarshal(ackBytes, &ack); err != nil {
		return errorsmod.Wrap(types.ErrInvalidPacket, err.Error())
	}
	pool, found := k.GetPool(ctx, p.PoolId)
	if !found {
		return errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s not found", p.PoolId)
	}
	localIdx, ok := pool.AssetIndex(p.LocalDeposit.Token.Denom)
	if !ok {
		return errorsmod.Wrapf(types.ErrValidation, "denom %s is not part of pool %s", p.LocalDeposit.Token.Denom, p.PoolId)
	}
	remoteIdx := types.OtherIndex(localIdx)

	lpLocal := ack.PoolTokens[localIdx].Amount
	lpRemote := ack.PoolTokens[remoteIdx].Amount

	pool.Assets[localIdx].Balance.Amount = pool.Assets[localIdx].Balance.Amount.Add(p.LocalDeposit.Token.Amount)
	pool.Assets[remoteIdx].Balance.Amount = pool.Assets[remoteIdx].Balance.Amount.Add(p.RemoteDeposit.Token.Amount)

	if pool.Status == types.PoolStatusInitial {
		// The seeding deposit: the receiving chain computed supply = lpLocal
		// + lpRemote from nothing, so this mirror adopts that total directly
		// instead of incrementing from zero a second time.
		pool.Supply.Amount = lpLocal.Add(lpRemote)
		pool.Status = types.PoolStatusReady
		ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypePoolReady, sdk.NewAttribute(types.AttributeKeyPoolId, pool.Id)))
	} else {
		// The receiving chain already credited the remote leg's supply
		// share against its own mirror; this chain applies only the local
		// leg's share so the two additions sum to lpLocal+lpRemote exactly
		// once, not twice.
		pool.Supply.Amount = pool.Supply.Amount.Add(lpLocal)
	}

	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	sender, err := sdk.AccAddressFromBech32(p.LocalDeposit.Sender)
	if err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}
	GetMetrics().DepositsTotal.WithLabelValues(pool.Id, "double").Inc()
	return k.MintAndTransferLP(ctx, sender, sdk.NewCoin(pool.Id, lpLocal))
}

func (k Keeper) finalizeWithdraw(ctx sdk.Context, p types.WithdrawPacketData) error {
	pool, found := k.GetPool(ctx, p.PoolCoin.Denom)
	if !found {
		return errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s not found", p.PoolCoin.Denom)
	}
	idx, ok := pool.AssetIndex(p.DenomOut)
	if !ok {
		return errorsmod.Wrapf(types.ErrValidation, "denom %s is not part of pool %s", p.DenomOut, pool.Id)
	}

	amountOut, err := amm.Withdraw(pool.Supply.Amount, pool.Assets[idx].Balance.Amount, pool.Assets[idx].Weight, p.PoolCoin.Amount)
	if err != nil {
		return err
	}

	pool.Assets[idx].Balance.Amount = pool.Assets[idx].Balance.Amount.Sub(amountOut)
	pool.Supply.Amount = pool.Supply.Amount.Sub(p.PoolCoin.Amount)
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	lpCoin := sdk.NewCoin(p.PoolCoin.Denom, p.PoolCoin.Amount)
	GetMetrics().WithdrawalsTotal.WithLabelValues(pool.Id).Inc()
	return k.BurnLPFromModule(ctx, lpCoin)
}

func (k Keeper) finalizeSwap(ctx sdk.Context, p types.SwapPacketData) error {
	pool, found := k.GetPoolByDenoms(ctx, p.TokenIn.Denom, p.TokenOut.Denom)
	if !found {
		return errorsmod.Wrapf(types.ErrPoolNotFound, "no pool for %s/%s", p.TokenIn.Denom, p.TokenOut.Denom)
	}
	inIdx, ok := pool.AssetIndex(p.TokenIn.Denom)
	if !ok {
		return errorsmod.Wrap(types.ErrValidation, "token_in is not part of this pool")
	}
	outIdx := types.OtherIndex(inIdx)

	// Mirror the counterparty's balance mutation: input side increases by
	// the escrowed input, output side decreases by the delivered output.
	// The escrowed input itself is never returned (spec §4.6).
	feeBps := k.GetParams(ctx).FeeRateBps()
	var amountOut, amountIn math.Int
	var err error
	if p.Type == types.LeftSwapType {
		amountOut, err = amm.LeftSwap(pool.Assets[inIdx].Balance.Amount, pool.Assets[outIdx].Balance.Amount,
			pool.Assets[inIdx].Weight, pool.Assets[outIdx].Weight, p.TokenIn.Amount, feeBps)
		amountIn = p.TokenIn.Amount
	} else {
		amountIn, err = amm.RightSwap(pool.Assets[inIdx].Balance.Amount, pool.Assets[outIdx].Balance.Amount,
			pool.Assets[inIdx].Weight, pool.Assets[outIdx].Weight, p.TokenOut.Amount, feeBps)
		amountOut = p.TokenOut.Amount
	}
	if err != nil {
		return err
	}

	pool.Assets[inIdx].Balance.Amount = pool.Assets[inIdx].Balance.Amount.Add(amountIn)
	pool.Assets[outIdx].Balance.Amount = pool.Assets[outIdx].Balance.Amount.Sub(amountOut)

	// feeAmt approximates the fee retained in reserves: amm applies feeBps to
	// whichever side is actually charged (amountIn), so amountIn*feeBps/10000
	// is the same quantity LeftSwap/RightSwap each fold into their formula.
	feeAmt := amountIn.ToLegacyDec().MulInt64(feeBps).QuoInt64(10000).TruncateInt()

	m := GetMetrics()
	m.SwapsTotal.WithLabelValues(pool.Id, p.Type).Inc()
	m.SwapVolume.WithLabelValues(pool.Id, p.TokenIn.Denom).Add(amountIn.ToLegacyDec().MustFloat64())
	m.SwapFeesCollected.WithLabelValues(pool.Id, p.TokenIn.Denom).Add(feeAmt.ToLegacyDec().MustFloat64())

	return k.SetPool(ctx, pool)
}
