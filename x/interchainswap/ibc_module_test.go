package interchainswap_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"
	"github.com/stretchr/testify/require"

	interchainswap "github.com/interchainswap/core/x/interchainswap"
	keepertest "github.com/interchainswap/core/testutil/keeper"
	"github.com/interchainswap/core/x/interchainswap/keeper"
	"github.com/interchainswap/core/x/interchainswap/types"
)

func TestOnChanCloseInit_AlwaysRejected(t *testing.T) {
	k, ctx, _, _ := keepertest.InterchainSwapKeeper(t)
	im := interchainswap.NewIBCModule(k, codec.NewProtoCodec(codectypes.NewInterfaceRegistry()))

	err := im.OnChanCloseInit(ctx, types.PortID, "channel-7")
	require.Error(t, err)
}

// TestOnChanCloseConfirm_RefundsEveryOutstandingPendingOp exercises
// SPEC_FULL.md's forced-close cleanup: a channel that closes with unacked
// packets still in flight must not strand their senders' escrowed funds.
func TestOnChanCloseConfirm_RefundsEveryOutstandingPendingOp(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	im := interchainswap.NewIBCModule(k, codec.NewProtoCodec(codectypes.NewInterfaceRegistry()))

	senderA := sdk.AccAddress([]byte("close-cleanup-send-a"))
	senderB := sdk.AccAddress([]byte("close-cleanup-send-b"))
	coinA := types.NewCoin("uatom", math.NewInt(10_000))
	coinB := types.NewCoin("uatom", math.NewInt(20_000))

	require.NoError(t, bk.MintCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin("uatom", coinA.Amount.Add(coinB.Amount)))))
	require.NoError(t, bk.SendCoinsFromModuleToAccount(ctx, types.ModuleName, keeper.EscrowAddress(types.PortID, "channel-7"), sdk.NewCoins(sdk.NewCoin("uatom", coinA.Amount.Add(coinB.Amount)))))

	require.NoError(t, k.SetPendingOp(ctx, keeper.PendingOp{
		PortID: types.PortID, ChannelID: "channel-7", Sequence: 1,
		PacketType: types.SingleDepositType, Sender: senderA.String(), EscrowCoin: coinA,
	}))
	require.NoError(t, k.SetPendingOp(ctx, keeper.PendingOp{
		PortID: types.PortID, ChannelID: "channel-7", Sequence: 2,
		PacketType: types.SingleDepositType, Sender: senderB.String(), EscrowCoin: coinB,
	}))

	require.NoError(t, im.OnChanCloseConfirm(ctx, types.PortID, "channel-7"))

	require.Equal(t, coinA.Amount, bk.GetBalance(ctx, senderA, "uatom").Amount)
	require.Equal(t, coinB.Amount, bk.GetBalance(ctx, senderB, "uatom").Amount)
	require.Empty(t, k.GetPendingOpsForChannel(ctx, "channel-7"))
}

func TestOnRecvPacket_InvalidPayloadProducesErrorAck(t *testing.T) {
	k, ctx, _, _ := keepertest.InterchainSwapKeeper(t)
	im := interchainswap.NewIBCModule(k, codec.NewProtoCodec(codectypes.NewInterfaceRegistry()))

	packet := channeltypes.Packet{
		SourcePort: types.PortID, SourceChannel: "channel-7",
		DestinationPort: types.PortID, DestinationChannel: "channel-3",
		Sequence: 1, Data: []byte("not json"),
	}
	ack := im.OnRecvPacket(ctx, packet, sdk.AccAddress([]byte("relayer-addr-2222222")))
	require.False(t, ack.Success())
}

func TestOnAcknowledgementPacket_RejectsMalformedAckBytes(t *testing.T) {
	k, ctx, _, _ := keepertest.InterchainSwapKeeper(t)
	im := interchainswap.NewIBCModule(k, codec.NewProtoCodec(codectypes.NewInterfaceRegistry()))

	packet := channeltypes.Packet{
		SourcePort: types.PortID, SourceChannel: "channel-7",
		DestinationPort: types.PortID, DestinationChannel: "channel-3",
		Sequence: 1,
	}
	err := im.OnAcknowledgementPacket(ctx, packet, []byte("not an ack"), sdk.AccAddress([]byte("relayer-addr-2222222")))
	require.Error(t, err)
}
