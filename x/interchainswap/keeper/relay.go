package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"
	ibcexported "github.com/cosmos/ibc-go/v8/modules/core/exported"

	"github.com/interchainswap/core/x/interchainswap/amm"
	"github.com/interchainswap/core/x/interchainswap/types"
)

// OnRecvPacket is the Relay Listener's receipt path (spec §4.6): decode by
// type (already done by the caller via types.ParsePacketData), execute the
// matching handler, and return a Success or Error acknowledgement. Handlers
// never return a Go error for a business-logic rejection — those become
// Error acks so the sender's escrow can be refunded — only truly
// unrecoverable conditions should ever reach the caller as an error.
func (k Keeper) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, data types.IBCPacketData) ibcexported.Acknowledgement {
	switch p := data.(type) {
	case types.CreatePoolPacketData:
		return k.handleCreatePool(ctx, packet, p)
	case types.SingleDepositPacketData:
		return k.handleSingleDeposit(ctx, p)
	case types.DoubleDepositPacketData:
		return k.handleDoubleDeposit(ctx, p)
	case types.WithdrawPacketData:
		return k.handleWithdraw(ctx, p)
	case types.SwapPacketData:
		if p.Type == types.LeftSwapType {
			return k.handleLeftSwap(ctx, p)
		}
		return k.handleRightSwap(ctx, p)
	default:
		return channeltypes.NewErrorAcknowledgement(errorsmod.Wrap(types.ErrInvalidPacket, "unrecognized packet payload"))
	}
}

func errAck(err error) ibcexported.Acknowledgement {
	return channeltypes.NewErrorAcknowledgement(err)
}

func resultAck(v any) ibcexported.Acknowledgement {
	bz, err := marshalAck(v)
	if err != nil {
		return errAck(err)
	}
	return channeltypes.NewResultAcknowledgement(bz)
}

func (k Keeper) handleCreatePool(ctx sdk.Context, packet channeltypes.Packet, p types.CreatePoolPacketData) ibcexported.Acknowledgement {
	poolId := types.GeneratePoolId(p.Denoms[0], p.Denoms[1])
	if k.HasPool(ctx, poolId) {
		return errAck(errorsmod.Wrapf(types.ErrPoolAlreadyExists, "pool %s already exists", poolId))
	}

	sides, err := k.resolveSides(ctx, p.Denoms)
	if err != nil {
		return errAck(err)
	}

	pool := types.Pool{
		Id: poolId,
		Assets: [2]types.PoolAsset{
			{Side: sides[0], Balance: types.NewCoin(p.Denoms[0], math.ZeroInt()), Weight: p.Weights[0], Decimal: p.Decimals[0]},
			{Side: sides[1], Balance: types.NewCoin(p.Denoms[1], math.ZeroInt()), Weight: p.Weights[1], Decimal: p.Decimals[1]},
		},
		Supply: types.NewCoin(poolId, math.ZeroInt()),
		Status: types.PoolStatusInitial,
		// This chain's own local channel-end identifiers, used later to
		// derive this chain's escrow address for the pool.
		PortId:    packet.DestinationPort,
		ChannelId: packet.DestinationChannel,
	}
	if err := pool.Validate(); err != nil {
		return errAck(err)
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return errAck(err)
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypePoolCreated, sdk.NewAttribute(types.AttributeKeyPoolId, poolId)))
	return resultAck(types.CreatePoolAck{PoolId: poolId})
}

// resolveSides assigns Native/Remote per denom on this chain: a denom this
// chain's Bank already mints supply for is Native, otherwise Remote. Must
// end up with exactly one of each (spec invariant 3).
func (k Keeper) resolveSides(ctx sdk.Context, denoms [2]string) ([2]types.PoolSide, error) {
	var sides [2]types.PoolSide
	nativeCount := 0
	for i, denom := range denoms {
		if k.bankKeeper.HasSupply(ctx, denom) {
			sides[i] = types.Native
			nativeCount++
		} else {
			sides[i] = types.Remote
		}
	}
	if nativeCount != 1 {
		return sides, errorsmod.Wrap(types.ErrValidation, "exactly one pool asset must be native to this chain")
	}
	return sides, nil
}

func (k Keeper) handleSingleDeposit(ctx sdk.Context, p types.SingleDepositPacketData) ibcexported.Acknowledgement {
	pool, found := k.GetPool(ctx, p.PoolId)
	if !found {
		return errAck(errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s not found", p.PoolId))
	}
	if pool.Status != types.PoolStatusReady {
		return errAck(errorsmod.Wrap(types.ErrInvalidState, "pool is not ready for single-sided deposit"))
	}
	idx, ok := pool.AssetIndex(p.Token.Denom)
	if !ok {
		return errAck(errorsmod.Wrapf(types.ErrValidation, "denom %s is not part of pool %s", p.Token.Denom, p.PoolId))
	}

	lp, err := amm.DepositSingle(pool.Supply.Amount, pool.Assets[idx].Balance.Amount, pool.Assets[idx].Weight, p.Token.Amount)
	if err != nil {
		return errAck(err)
	}

	pool.Assets[idx].Balance.Amount = pool.Assets[idx].Balance.Amount.Add(p.Token.Amount)
	// Supply changes only on the initiator after ack (spec §4.6).
	if err := k.SetPool(ctx, pool); err != nil {
		return errAck(err)
	}

	return resultAck(types.SingleDepositAck{PoolToken: types.NewCoin(pool.Id, lp)})
}

func (k Keeper) handleDoubleDeposit(ctx sdk.Context, p types.DoubleDepositPacketData) ibcexported.Acknowledgement {
	pool, found := k.GetPool(ctx, p.PoolId)
	if !found {
		return errAck(errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s not found", p.PoolId))
	}
	localIdx, ok := pool.AssetIndex(p.LocalDeposit.Token.Denom)
	if !ok {
		return errAck(errorsmod.Wrapf(types.ErrValidation, "denom %s is not part of pool %s", p.LocalDeposit.Token.Denom, p.PoolId))
	}
	remoteIdx, ok := pool.AssetIndex(p.RemoteDeposit.Token.Denom)
	if !ok || remoteIdx == localIdx {
		return errAck(errorsmod.Wrap(types.ErrValidation, "remote deposit must be the pool's other asset"))
	}

	remoteSender, err := sdk.AccAddressFromBech32(p.RemoteDeposit.Sender)
	if err != nil {
		return errAck(errorsmod.Wrap(types.ErrValidation, err.Error()))
	}
	if err := k.verifyRemoteDeposit(ctx, p); err != nil {
		return errAck(err)
	}

	localAmt := p.LocalDeposit.Token.Amount
	remoteAmt := p.RemoteDeposit.Token.Amount

	var lpLocal, lpRemote math.Int
	seeding := pool.Status == types.PoolStatusInitial
	if seeding {
		var supply math.Int
		var lp0, lp1 math.Int
		supply, lp0, lp1, err = amm.DepositDoubleSeed(
			amountForIndex(localIdx, localAmt, remoteAmt, 0), amountForIndex(localIdx, localAmt, remoteAmt, 1),
			pool.Assets[0].Weight, pool.Assets[1].Weight,
			math.NewInt(k.GetParams(ctx).MinInitialLiquidity),
		)
		if err != nil {
			return errAck(err)
		}
		if localIdx == 0 {
			lpLocal, lpRemote = lp0, lp1
		} else {
			lpLocal, lpRemote = lp1, lp0
		}
		pool.Supply.Amount = supply
		pool.Status = types.PoolStatusReady
		ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypePoolReady, sdk.NewAttribute(types.AttributeKeyPoolId, pool.Id)))
	} else {
		lpLocal, err = amm.DepositDoubleLeg(pool.Supply.Amount, pool.Assets[localIdx].Balance.Amount, localAmt)
		if err != nil {
			return errAck(err)
		}
		lpRemote, err = amm.DepositDoubleLeg(pool.Supply.Amount, pool.Assets[remoteIdx].Balance.Amount, remoteAmt)
		if err != nil {
			return errAck(err)
		}
		// This chain is only ever authoritative for the remote leg's
		// supply credit here; the local leg's credit is applied by the
		// initiator's own ack handler against its mirror (see ack.go).
		pool.Supply.Amount = pool.Supply.Amount.Add(lpRemote)
	}

	pool.Assets[localIdx].Balance.Amount = pool.Assets[localIdx].Balance.Amount.Add(localAmt)
	pool.Assets[remoteIdx].Balance.Amount = pool.Assets[remoteIdx].Balance.Amount.Add(remoteAmt)

	if err := k.SetPool(ctx, pool); err != nil {
		return errAck(err)
	}

	remoteLPCoin := sdk.NewCoin(pool.Id, lpRemote)
	if err := k.MintAndTransferLP(ctx, remoteSender, remoteLPCoin); err != nil {
		return errAck(err)
	}

	var ack types.DoubleDepositAck
	if localIdx == 0 {
		ack.PoolTokens = [2]types.Coin{types.NewCoin(pool.Id, lpLocal), types.NewCoin(pool.Id, lpRemote)}
	} else {
		ack.PoolTokens = [2]types.Coin{types.NewCoin(pool.Id, lpRemote), types.NewCoin(pool.Id, lpLocal)}
	}
	return resultAck(ack)
}

func amountForIndex(localIdx int, localAmt, remoteAmt math.Int, want int) math.Int {
	if want == localIdx {
		return localAmt
	}
	return remoteAmt
}

// verifyRemoteDeposit checks the DoubleDeposit's remote leg is authorized:
// the canonical message {sender, sequence, token} must be signed by the
// account's current key, and the claimed sequence must match the account's
// actual sequence (spec §4.6).
func (k Keeper) verifyRemoteDeposit(ctx sdk.Context, p types.DoubleDepositPacketData) error {
	addr, err := sdk.AccAddressFromBech32(p.RemoteDeposit.Sender)
	if err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}
	account := k.accountKeeper.GetAccount(ctx, addr)
	if account == nil {
		return errorsmod.Wrap(types.ErrSignatureInvalid, "remote deposit sender has no account on this chain")
	}
	if account.GetSequence() != p.RemoteDeposit.Sequence {
		return errorsmod.Wrapf(types.ErrSequenceMismatch, "expected sequence %d, got %d", account.GetSequence(), p.RemoteDeposit.Sequence)
	}
	pubKey := account.GetPubKey()
	if pubKey == nil {
		return errorsmod.Wrap(types.ErrSignatureInvalid, "remote deposit sender has no public key on record")
	}
	msg := canonicalDepositMessage(p.RemoteDeposit.Sender, p.RemoteDeposit.Sequence, p.RemoteDeposit.Token)
	if !k.sigVerifier.VerifySignature(pubKey.Bytes(), pubKey.Type(), msg, p.RemoteDeposit.Signature) {
		return errorsmod.Wrap(types.ErrSignatureInvalid, "remote deposit signature verification failed")
	}
	return nil
}

func canonicalDepositMessage(sender string, sequence uint64, token types.Coin) []byte {
	bz, _ := marshalAck(struct {
		Sender   string     `json:"sender"`
		Sequence uint64     `json:"sequence"`
		Token    types.Coin `json:"token"`
	}{sender, sequence, token})
	return bz
}

func (k Keeper) handleWithdraw(ctx sdk.Context, p types.WithdrawPacketData) ibcexported.Acknowledgement {
	pool, found := k.GetPool(ctx, p.PoolCoin.Denom)
	if !found {
		return errAck(errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s not found", p.PoolCoin.Denom))
	}
	if pool.Status != types.PoolStatusReady {
		return errAck(errorsmod.Wrap(types.ErrInvalidState, "pool is not ready for withdrawal"))
	}
	idx, ok := pool.AssetIndex(p.DenomOut)
	if !ok {
		return errAck(errorsmod.Wrapf(types.ErrValidation, "denom %s is not part of pool %s", p.DenomOut, pool.Id))
	}

	amountOut, err := amm.Withdraw(pool.Supply.Amount, pool.Assets[idx].Balance.Amount, pool.Assets[idx].Weight, p.PoolCoin.Amount)
	if err != nil {
		return errAck(err)
	}

	recipient, err := sdk.AccAddressFromBech32(p.Sender)
	if err != nil {
		return errAck(errorsmod.Wrap(types.ErrValidation, err.Error()))
	}
	outCoin := sdk.NewCoin(p.DenomOut, amountOut)
	if err := k.PayFromEscrow(ctx, pool.PortId, pool.ChannelId, recipient, outCoin); err != nil {
		return errAck(err)
	}

	pool.Assets[idx].Balance.Amount = pool.Assets[idx].Balance.Amount.Sub(amountOut)
	// Supply burn is deferred to ack handling on the initiator.
	if err := k.SetPool(ctx, pool); err != nil {
		return errAck(err)
	}

	return resultAck(types.WithdrawAck{Tokens: []types.Coin{types.NewCoin(p.DenomOut, amountOut)}})
}

func (k Keeper) handleLeftSwap(ctx sdk.Context, p types.SwapPacketData) ibcexported.Acknowledgement {
	pool, found := k.GetPoolByDenoms(ctx, p.TokenIn.Denom, p.TokenOut.Denom)
	if !found {
		return errAck(errorsmod.Wrapf(types.ErrPoolNotFound, "no pool for %s/%s", p.TokenIn.Denom, p.TokenOut.Denom))
	}
	if pool.Status != types.PoolStatusReady {
		return errAck(errorsmod.Wrap(types.ErrInvalidState, "pool is not ready for swaps"))
	}
	inIdx, ok := pool.AssetIndex(p.TokenIn.Denom)
	if !ok {
		return errAck(errorsmod.Wrap(types.ErrValidation, "token_in is not part of this pool"))
	}
	outIdx := types.OtherIndex(inIdx)

	feeBps := k.GetParams(ctx).FeeRateBps()
	amountOut, err := amm.LeftSwap(pool.Assets[inIdx].Balance.Amount, pool.Assets[outIdx].Balance.Amount,
		pool.Assets[inIdx].Weight, pool.Assets[outIdx].Weight, p.TokenIn.Amount, feeBps)
	if err != nil {
		return errAck(err)
	}

	// Slippage guard (invariant 9): actualOut >= tokenOut.amount * (1 - slippage/10000).
	minOut := p.TokenOut.Amount.ToLegacyDec().Mul(
		math.LegacyOneDec().Sub(math.LegacyNewDec(p.Slippage).QuoInt64(10000)),
	).TruncateInt()
	if amountOut.LT(minOut) {
		return errAck(errorsmod.Wrapf(types.ErrSlippageExceeded, "actual output %s below minimum %s", amountOut, minOut))
	}

	recipient, err := sdk.AccAddressFromBech32(p.Recipient)
	if err != nil {
		return errAck(errorsmod.Wrap(types.ErrValidation, err.Error()))
	}
	outCoin := sdk.NewCoin(pool.Assets[outIdx].Balance.Denom, amountOut)
	if err := k.PayFromEscrow(ctx, pool.PortId, pool.ChannelId, recipient, outCoin); err != nil {
		return errAck(err)
	}

	pool.Assets[inIdx].Balance.Amount = pool.Assets[inIdx].Balance.Amount.Add(p.TokenIn.Amount)
	pool.Assets[outIdx].Balance.Amount = pool.Assets[outIdx].Balance.Amount.Sub(amountOut)
	if err := k.SetPool(ctx, pool); err != nil {
		return errAck(err)
	}

	GetMetrics().SwapsTotal.WithLabelValues(pool.Id, types.LeftSwapType).Inc()
	return resultAck(types.SwapAck{Tokens: []types.Coin{outCoin2Coin(outCoin)}})
}

func (k Keeper) handleRightSwap(ctx sdk.Context, p types.SwapPacketData) ibcexported.Acknowledgement {
	pool, found := k.GetPoolByDenoms(ctx, p.TokenIn.Denom, p.TokenOut.Denom)
	if !found {
		return errAck(errorsmod.Wrapf(types.ErrPoolNotFound, "no pool for %s/%s", p.TokenIn.Denom, p.TokenOut.Denom))
	}
	if pool.Status != types.PoolStatusReady {
		return errAck(errorsmod.Wrap(types.ErrInvalidState, "pool is not ready for swaps"))
	}
	outIdx, ok := pool.AssetIndex(p.TokenOut.Denom)
	if !ok {
		return errAck(errorsmod.Wrap(types.ErrValidation, "token_out is not part of this pool"))
	}
	inIdx := types.OtherIndex(outIdx)

	feeBps := k.GetParams(ctx).FeeRateBps()
	amountIn, err := amm.RightSwap(pool.Assets[inIdx].Balance.Amount, pool.Assets[outIdx].Balance.Amount,
		pool.Assets[inIdx].Weight, pool.Assets[outIdx].Weight, p.TokenOut.Amount, feeBps)
	if err != nil {
		return errAck(err)
	}

	// Symmetric slippage guard (SPEC_FULL.md open question 3): the actual
	// required input must not exceed expectedIn * (1 + slippage/10000).
	maxIn := p.TokenIn.Amount.ToLegacyDec().Mul(
		math.LegacyOneDec().Add(math.LegacyNewDec(p.Slippage).QuoInt64(10000)),
	).Ceil().TruncateInt()
	if amountIn.GT(maxIn) {
		return errAck(errorsmod.Wrapf(types.ErrSlippageExceeded, "actual input %s exceeds maximum %s", amountIn, maxIn))
	}

	recipient, err := sdk.AccAddressFromBech32(p.Recipient)
	if err != nil {
		return errAck(errorsmod.Wrap(types.ErrValidation, err.Error()))
	}
	outCoin := sdk.NewCoin(p.TokenOut.Denom, p.TokenOut.Amount)
	if err := k.PayFromEscrow(ctx, pool.PortId, pool.ChannelId, recipient, outCoin); err != nil {
		return errAck(err)
	}

	pool.Assets[inIdx].Balance.Amount = pool.Assets[inIdx].Balance.Amount.Add(amountIn)
	pool.Assets[outIdx].Balance.Amount = pool.Assets[outIdx].Balance.Amount.Sub(p.TokenOut.Amount)
	if err := k.SetPool(ctx, pool); err != nil {
		return errAck(err)
	}

	GetMetrics().SwapsTotal.WithLabelValues(pool.Id, types.RightSwapType).Inc()
	return resultAck(types.SwapAck{Tokens: []types.Coin{types.NewCoin(p.TokenIn.Denom, amountIn), outCoin2Coin(outCoin)}})
}

func outCoin2Coin(c sdk.Coin) types.Coin { return types.NewCoin(c.Denom, c.Amount) }
