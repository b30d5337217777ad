package keeper_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/interchainswap/core/testutil/keeper"
	"github.com/interchainswap/core/x/interchainswap/keeper"
	"github.com/interchainswap/core/x/interchainswap/types"
)

func ackPacket(seq uint64, data []byte) channeltypes.Packet {
	return channeltypes.Packet{
		SourcePort:         types.PortID,
		SourceChannel:      "channel-7",
		DestinationPort:    types.PortID,
		DestinationChannel: "channel-3",
		Sequence:           seq,
		Data:               data,
	}
}

func mustBytes(t *testing.T, v any) []byte {
	bz, err := json.Marshal(v)
	require.NoError(t, err)
	return bz
}

func TestOnAcknowledgementPacket_ErrorAckRefundsSingleDeposit(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	pool := readyPool(t, k, ctx, "uatom", "uosmo", math.NewInt(1_000_000), math.NewInt(1_000_000))

	sender := sdk.AccAddress([]byte("single-depositor-16"))
	coin := types.NewCoin("uatom", math.NewInt(50_000))
	require.NoError(t, bk.MintCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin("uatom", coin.Amount))))
	require.NoError(t, bk.SendCoinsFromModuleToAccount(ctx, types.ModuleName, keeper.EscrowAddress(types.PortID, "channel-7"), sdk.NewCoins(sdk.NewCoin("uatom", coin.Amount))))

	require.NoError(t, k.SetPendingOp(ctx, keeper.PendingOp{
		PortID: types.PortID, ChannelID: "channel-7", Sequence: 1,
		PacketType: types.SingleDepositType, Sender: sender.String(), PoolId: pool.Id, EscrowCoin: coin,
	}))

	packetData := types.NewSingleDepositPacket(pool.Id, sender.String(), coin)
	data, err := packetData.GetBytes()
	require.NoError(t, err)
	packet := ackPacket(1, data)

	ack := channeltypes.NewErrorAcknowledgement(fmt.Errorf("rejected"))
	require.NoError(t, k.OnAcknowledgementPacket(ctx, packet, ack))

	require.Equal(t, coin.Amount, bk.GetBalance(ctx, sender, "uatom").Amount)
	_, found := k.GetPendingOp(ctx, "channel-7", 1)
	require.False(t, found)
}

func TestOnAcknowledgementPacket_ErrorAckRefundsWithdrawViaModuleAccount(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	pool := readyPool(t, k, ctx, "uatom", "uosmo", math.NewInt(1_000_000), math.NewInt(1_000_000))

	sender := sdk.AccAddress([]byte("withdraw-sender-1234"))
	lpCoin := types.NewCoin(pool.Id, math.NewInt(10_000))
	// DelegateWithdraw pulls the LP coin into the module account up front.
	require.NoError(t, bk.MintCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin(pool.Id, lpCoin.Amount))))

	require.NoError(t, k.SetPendingOp(ctx, keeper.PendingOp{
		PortID: types.PortID, ChannelID: "channel-7", Sequence: 2,
		PacketType: types.WithdrawType, Sender: sender.String(), PoolId: pool.Id, EscrowCoin: lpCoin,
	}))

	packetData := types.NewWithdrawPacket(sender.String(), lpCoin, "uatom")
	data, err := packetData.GetBytes()
	require.NoError(t, err)
	packet := ackPacket(2, data)

	ack := channeltypes.NewErrorAcknowledgement(fmt.Errorf("rejected"))
	require.NoError(t, k.OnAcknowledgementPacket(ctx, packet, ack))

	require.Equal(t, lpCoin.Amount, bk.GetBalance(ctx, sender, pool.Id).Amount)
	_, found := k.GetPendingOp(ctx, "channel-7", 2)
	require.False(t, found)
}

func TestOnAcknowledgementPacket_SuccessFinalizesSingleDeposit(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	pool := readyPool(t, k, ctx, "uatom", "uosmo", math.NewInt(1_000_000), math.NewInt(1_000_000))

	sender := sdk.AccAddress([]byte("single-depositor-ok"))
	coin := types.NewCoin("uatom", math.NewInt(50_000))

	require.NoError(t, k.SetPendingOp(ctx, keeper.PendingOp{
		PortID: types.PortID, ChannelID: "channel-7", Sequence: 3,
		PacketType: types.SingleDepositType, Sender: sender.String(), PoolId: pool.Id, EscrowCoin: coin,
	}))

	packetData := types.NewSingleDepositPacket(pool.Id, sender.String(), coin)
	data, err := packetData.GetBytes()
	require.NoError(t, err)
	packet := ackPacket(3, data)

	lpMinted := math.NewInt(49_000)
	ack := channeltypes.NewResultAcknowledgement(mustBytes(t, types.SingleDepositAck{PoolToken: types.NewCoin(pool.Id, lpMinted)}))
	require.NoError(t, k.OnAcknowledgementPacket(ctx, packet, ack))

	after, found := k.GetPool(ctx, pool.Id)
	require.True(t, found)
	require.True(t, after.Assets[0].Balance.Amount.Equal(pool.Assets[0].Balance.Amount.Add(coin.Amount)))
	require.True(t, after.Supply.Amount.Equal(pool.Supply.Amount.Add(lpMinted)))
	require.Equal(t, lpMinted, bk.GetBalance(ctx, sender, pool.Id).Amount)

	_, found = k.GetPendingOp(ctx, "channel-7", 3)
	require.False(t, found)
}

func TestOnAcknowledgementPacket_SuccessFinalizesDoubleDepositSeeding(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	poolId := types.GeneratePoolId("uatom", "uosmo")
	pool := types.Pool{
		Id: poolId,
		Assets: [2]types.PoolAsset{
			{Side: types.Native, Balance: types.NewCoin("uatom", math.ZeroInt()), Weight: 50, Decimal: 6},
			{Side: types.Remote, Balance: types.NewCoin("uosmo", math.ZeroInt()), Weight: 50, Decimal: 6},
		},
		Supply:    types.NewCoin(poolId, math.ZeroInt()),
		Status:    types.PoolStatusInitial,
		PortId:    types.PortID,
		ChannelId: "channel-3",
	}
	require.NoError(t, k.SetPool(ctx, pool))

	sender := sdk.AccAddress([]byte("double-deposit-local"))
	local := types.DepositLeg{Sender: sender.String(), Token: types.NewCoin("uatom", math.NewInt(1_000_000))}
	remote := types.DepositLeg{Sender: "cosmos1remotesender", Token: types.NewCoin("uosmo", math.NewInt(1_000_000))}

	require.NoError(t, k.SetPendingOp(ctx, keeper.PendingOp{
		PortID: types.PortID, ChannelID: "channel-7", Sequence: 4,
		PacketType: types.DoubleDepositType, Sender: sender.String(), PoolId: poolId, EscrowCoin: local.Token,
	}))

	packetData := types.NewDoubleDepositPacket(poolId, local, remote)
	data, err := packetData.GetBytes()
	require.NoError(t, err)
	packet := ackPacket(4, data)

	lpLocal, lpRemote := math.NewInt(1_000_000), math.NewInt(1_000_000)
	ack := channeltypes.NewResultAcknowledgement(mustBytes(t, types.DoubleDepositAck{
		PoolTokens: [2]types.Coin{types.NewCoin(poolId, lpLocal), types.NewCoin(poolId, lpRemote)},
	}))
	require.NoError(t, k.OnAcknowledgementPacket(ctx, packet, ack))

	after, found := k.GetPool(ctx, poolId)
	require.True(t, found)
	require.Equal(t, types.PoolStatusReady, after.Status)
	require.True(t, after.Supply.Amount.Equal(lpLocal.Add(lpRemote)), "seeding mirror adopts the full lpLocal+lpRemote total")
	require.Equal(t, lpLocal, bk.GetBalance(ctx, sender, poolId).Amount)
}

func TestOnTimeoutPacket_RefundsAndDeletesPendingOp(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	pool := readyPool(t, k, ctx, "uatom", "uosmo", math.NewInt(1_000_000), math.NewInt(1_000_000))

	sender := sdk.AccAddress([]byte("timeout-depositor-01"))
	coin := types.NewCoin("uatom", math.NewInt(25_000))
	require.NoError(t, bk.MintCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin("uatom", coin.Amount))))
	require.NoError(t, bk.SendCoinsFromModuleToAccount(ctx, types.ModuleName, keeper.EscrowAddress(types.PortID, "channel-7"), sdk.NewCoins(sdk.NewCoin("uatom", coin.Amount))))

	require.NoError(t, k.SetPendingOp(ctx, keeper.PendingOp{
		PortID: types.PortID, ChannelID: "channel-7", Sequence: 5,
		PacketType: types.SingleDepositType, Sender: sender.String(), PoolId: pool.Id, EscrowCoin: coin,
	}))

	packetData := types.NewSingleDepositPacket(pool.Id, sender.String(), coin)
	data, err := packetData.GetBytes()
	require.NoError(t, err)
	packet := ackPacket(5, data)

	require.NoError(t, k.OnTimeoutPacket(ctx, packet))

	require.Equal(t, coin.Amount, bk.GetBalance(ctx, sender, "uatom").Amount)
	_, found := k.GetPendingOp(ctx, "channel-7", 5)
	require.False(t, found)
}

func TestOnAcknowledgementPacket_NoPendingOpIsNoop(t *testing.T) {
	k, ctx, _, _ := keepertest.InterchainSwapKeeper(t)
	packet := ackPacket(99, nil)
	ack := channeltypes.NewErrorAcknowledgement(fmt.Errorf("rejected"))
	require.NoError(t, k.OnAcknowledgementPacket(ctx, packet, ack))
}
