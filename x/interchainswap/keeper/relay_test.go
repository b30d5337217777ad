package keeper_test

import (
	"context"
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/interchainswap/core/testutil/keeper"
	"github.com/interchainswap/core/x/interchainswap/keeper"
	"github.com/interchainswap/core/x/interchainswap/types"
)

func testPacket() channeltypes.Packet {
	return channeltypes.Packet{
		SourcePort:         types.PortID,
		SourceChannel:      "channel-7",
		DestinationPort:    types.PortID,
		DestinationChannel: "channel-3",
		Sequence:           1,
	}
}

// readyPool persists a two-asset Ready pool directly (bypassing the
// CreatePool/DoubleDeposit packet flow, which is exercised separately) so
// deposit/withdraw/swap handlers can be tested against known reserves.
func readyPool(t *testing.T, k keeper.Keeper, ctx sdk.Context, denomA, denomB string, balA, balB math.Int) types.Pool {
	poolId := types.GeneratePoolId(denomA, denomB)
	pool := types.Pool{
		Id: poolId,
		Assets: [2]types.PoolAsset{
			{Side: types.Native, Balance: types.NewCoin(denomA, balA), Weight: 50, Decimal: 6},
			{Side: types.Remote, Balance: types.NewCoin(denomB, balB), Weight: 50, Decimal: 6},
		},
		Supply:    types.NewCoin(poolId, math.NewInt(1_000_000)),
		Status:    types.PoolStatusReady,
		PortId:    types.PortID,
		ChannelId: "channel-3",
	}
	require.NoError(t, pool.Validate())
	require.NoError(t, k.SetPool(ctx, pool))
	return pool
}

func TestHandleCreatePool(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	// Give "uatom" nonzero supply so resolveSides treats it as Native; "ibc/osmo" stays Remote.
	require.NoError(t, bk.MintCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(1)))))

	packet := testPacket()
	p := types.NewCreatePoolPacket(types.PortID, "channel-7", "cosmos1sender", [2]string{"uatom", "ibc/osmo"}, [2]int64{6, 6}, [2]int64{50, 50})

	ack := k.OnRecvPacket(ctx, packet, p)
	require.True(t, ack.Success())

	poolId := types.GeneratePoolId("uatom", "ibc/osmo")
	pool, found := k.GetPool(ctx, poolId)
	require.True(t, found)
	require.Equal(t, types.PoolStatusInitial, pool.Status)
	require.Equal(t, packet.DestinationPort, pool.PortId)
	require.Equal(t, packet.DestinationChannel, pool.ChannelId)
	// Invariant 2: weights sum to 100.
	require.EqualValues(t, 100, pool.Assets[0].Weight+pool.Assets[1].Weight)

	// Re-creating the same pool must fail.
	dupAck := k.OnRecvPacket(ctx, packet, p)
	require.False(t, dupAck.Success())
}

func TestHandleCreatePool_RejectsTwoNativeOrTwoRemote(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	require.NoError(t, bk.MintCoins(ctx, types.ModuleName, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1)), sdk.NewCoin("uosmo", math.NewInt(1)))))

	p := types.NewCreatePoolPacket(types.PortID, "channel-7", "cosmos1sender", [2]string{"uatom", "uosmo"}, [2]int64{6, 6}, [2]int64{50, 50})
	ack := k.OnRecvPacket(ctx, testPacket(), p)
	require.False(t, ack.Success())
}

func TestHandleSingleDeposit(t *testing.T) {
	k, ctx, _, _ := keepertest.InterchainSwapKeeper(t)
	pool := readyPool(t, k, ctx, "uatom", "uosmo", math.NewInt(1_000_000), math.NewInt(1_000_000))

	p := types.NewSingleDepositPacket(pool.Id, "cosmos1depositor", types.NewCoin("uatom", math.NewInt(100_000)))
	ack := k.OnRecvPacket(ctx, testPacket(), p)
	require.True(t, ack.Success())

	after, found := k.GetPool(ctx, pool.Id)
	require.True(t, found)
	require.True(t, after.Assets[0].Balance.Amount.Equal(math.NewInt(1_100_000)))
	// Supply only changes on ack finalization, not here.
	require.True(t, after.Supply.Amount.Equal(pool.Supply.Amount))
}

func TestHandleSingleDeposit_PoolNotReady(t *testing.T) {
	k, ctx, _, _ := keepertest.InterchainSwapKeeper(t)
	poolId := types.GeneratePoolId("uatom", "uosmo")
	pool := types.Pool{
		Id: poolId,
		Assets: [2]types.PoolAsset{
			{Side: types.Native, Balance: types.NewCoin("uatom", math.ZeroInt()), Weight: 50, Decimal: 6},
			{Side: types.Remote, Balance: types.NewCoin("uosmo", math.ZeroInt()), Weight: 50, Decimal: 6},
		},
		Supply: types.NewCoin(poolId, math.ZeroInt()),
		Status: types.PoolStatusInitial,
	}
	require.NoError(t, k.SetPool(ctx, pool))

	p := types.NewSingleDepositPacket(poolId, "cosmos1depositor", types.NewCoin("uatom", math.NewInt(1)))
	ack := k.OnRecvPacket(ctx, testPacket(), p)
	require.False(t, ack.Success())
}

// canonicalDepositMessage reproduces the wire format verifyRemoteDeposit
// signs over (sender, sequence, token as canonical JSON), so the test can
// produce a signature the keeper will actually accept.
func canonicalDepositMessage(t *testing.T, sender string, sequence uint64, token types.Coin) []byte {
	bz, err := json.Marshal(struct {
		Sender   string     `json:"sender"`
		Sequence uint64     `json:"sequence"`
		Token    types.Coin `json:"token"`
	}{sender, sequence, token})
	require.NoError(t, err)
	return bz
}

func registerAccount(t *testing.T, ak interface {
	NewAccountWithAddress(ctx context.Context, addr sdk.AccAddress) sdk.AccountI
	SetAccount(ctx context.Context, acc sdk.AccountI)
}, ctx sdk.Context, priv *secp256k1.PrivKey) sdk.AccAddress {
	addr := sdk.AccAddress(priv.PubKey().Address())
	acc := ak.NewAccountWithAddress(ctx, addr)
	require.NoError(t, acc.SetPubKey(priv.PubKey()))
	ak.SetAccount(ctx, acc)
	return addr
}

func TestHandleDoubleDeposit_SeedsPool(t *testing.T) {
	k, ctx, _, ak := keepertest.InterchainSwapKeeper(t)
	poolId := types.GeneratePoolId("uatom", "uosmo")
	pool := types.Pool{
		Id: poolId,
		Assets: [2]types.PoolAsset{
			{Side: types.Native, Balance: types.NewCoin("uatom", math.ZeroInt()), Weight: 50, Decimal: 6},
			{Side: types.Remote, Balance: types.NewCoin("uosmo", math.ZeroInt()), Weight: 50, Decimal: 6},
		},
		Supply: types.NewCoin(poolId, math.ZeroInt()),
		Status: types.PoolStatusInitial,
	}
	require.NoError(t, k.SetPool(ctx, pool))

	priv := secp256k1.GenPrivKey()
	remoteAddr := registerAccount(t, ak, ctx, priv)
	remoteToken := types.NewCoin("uosmo", math.NewInt(1_000_000))
	sig, err := priv.Sign(canonicalDepositMessage(t, remoteAddr.String(), 0, remoteToken))
	require.NoError(t, err)

	p := types.DoubleDepositPacketData{
		Type:         types.DoubleDepositType,
		PoolId:       poolId,
		LocalDeposit: types.DepositLeg{Sender: "cosmos1localsender", Token: types.NewCoin("uatom", math.NewInt(1_000_000))},
		RemoteDeposit: types.DepositLeg{
			Sender: remoteAddr.String(), Token: remoteToken, Sequence: 0, Signature: sig,
		},
	}
	ack := k.OnRecvPacket(ctx, testPacket(), p)
	require.True(t, ack.Success(), "%v", ack)

	after, found := k.GetPool(ctx, poolId)
	require.True(t, found)
	require.Equal(t, types.PoolStatusReady, after.Status)
	require.True(t, after.Supply.Amount.IsPositive())
}

func TestHandleDoubleDeposit_BadSignatureRejected(t *testing.T) {
	k, ctx, _, ak := keepertest.InterchainSwapKeeper(t)
	poolId := types.GeneratePoolId("uatom", "uosmo")
	pool := types.Pool{
		Id: poolId,
		Assets: [2]types.PoolAsset{
			{Side: types.Native, Balance: types.NewCoin("uatom", math.ZeroInt()), Weight: 50, Decimal: 6},
			{Side: types.Remote, Balance: types.NewCoin("uosmo", math.ZeroInt()), Weight: 50, Decimal: 6},
		},
		Supply: types.NewCoin(poolId, math.ZeroInt()),
		Status: types.PoolStatusInitial,
	}
	require.NoError(t, k.SetPool(ctx, pool))

	priv := secp256k1.GenPrivKey()
	remoteAddr := registerAccount(t, ak, ctx, priv)
	wrongSigner := secp256k1.GenPrivKey()
	remoteToken := types.NewCoin("uosmo", math.NewInt(1_000_000))
	badSig, err := wrongSigner.Sign(canonicalDepositMessage(t, remoteAddr.String(), 0, remoteToken))
	require.NoError(t, err)

	p := types.DoubleDepositPacketData{
		Type:          types.DoubleDepositType,
		PoolId:        poolId,
		LocalDeposit:  types.DepositLeg{Sender: "cosmos1localsender", Token: types.NewCoin("uatom", math.NewInt(1_000_000))},
		RemoteDeposit: types.DepositLeg{Sender: remoteAddr.String(), Token: remoteToken, Sequence: 0, Signature: badSig},
	}
	ack := k.OnRecvPacket(ctx, testPacket(), p)
	require.False(t, ack.Success())

	_, found := k.GetPool(ctx, poolId)
	require.True(t, found)
	pool2, _ := k.GetPool(ctx, poolId)
	require.Equal(t, types.PoolStatusInitial, pool2.Status, "a rejected seeding deposit must not flip the pool Ready")
}

func TestHandleDoubleDeposit_RejectsSeedBelowMinimumInitialLiquidity(t *testing.T) {
	k, ctx, _, ak := keepertest.InterchainSwapKeeper(t)
	poolId := types.GeneratePoolId("uatom", "uosmo")
	pool := types.Pool{
		Id: poolId,
		Assets: [2]types.PoolAsset{
			{Side: types.Native, Balance: types.NewCoin("uatom", math.ZeroInt()), Weight: 50, Decimal: 6},
			{Side: types.Remote, Balance: types.NewCoin("uosmo", math.ZeroInt()), Weight: 50, Decimal: 6},
		},
		Supply: types.NewCoin(poolId, math.ZeroInt()),
		Status: types.PoolStatusInitial,
	}
	require.NoError(t, k.SetPool(ctx, pool))

	priv := secp256k1.GenPrivKey()
	remoteAddr := registerAccount(t, ak, ctx, priv)
	remoteToken := types.NewCoin("uosmo", math.NewInt(10))
	sig, err := priv.Sign(canonicalDepositMessage(t, remoteAddr.String(), 0, remoteToken))
	require.NoError(t, err)

	p := types.DoubleDepositPacketData{
		Type:         types.DoubleDepositType,
		PoolId:       poolId,
		LocalDeposit: types.DepositLeg{Sender: "cosmos1localsender", Token: types.NewCoin("uatom", math.NewInt(10))},
		RemoteDeposit: types.DepositLeg{
			Sender: remoteAddr.String(), Token: remoteToken, Sequence: 0, Signature: sig,
		},
	}
	ack := k.OnRecvPacket(ctx, testPacket(), p)
	require.False(t, ack.Success(), "a seed below the default 1000-unit floor must be rejected")

	after, found := k.GetPool(ctx, poolId)
	require.True(t, found)
	require.Equal(t, types.PoolStatusInitial, after.Status, "a rejected dust seed must not flip the pool Ready")
}

func TestHandleWithdraw(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	pool := readyPool(t, k, ctx, "uatom", "uosmo", math.NewInt(1_000_000), math.NewInt(1_000_000))
	// Fund the escrow address so PayFromEscrow can deliver the withdrawn token.
	require.NoError(t, bk.MintCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(1_000_000)))))
	require.NoError(t, bk.SendCoinsFromModuleToAccount(ctx, types.ModuleName, keeper.EscrowAddress(pool.PortId, pool.ChannelId), sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(1_000_000)))))

	sender := sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
	p := types.NewWithdrawPacket(sender.String(), types.NewCoin(pool.Id, math.NewInt(100_000)), "uatom")
	ack := k.OnRecvPacket(ctx, testPacket(), p)
	require.True(t, ack.Success(), "%v", ack)

	after, found := k.GetPool(ctx, pool.Id)
	require.True(t, found)
	require.True(t, after.Assets[0].Balance.Amount.LT(pool.Assets[0].Balance.Amount))
	// Supply burn deferred to ack.
	require.True(t, after.Supply.Amount.Equal(pool.Supply.Amount))

	got := bk.GetBalance(ctx, sender, "uatom")
	require.True(t, got.Amount.IsPositive())
}

func TestHandleLeftSwap_SlippageGuardRejectsExcessiveShortfall(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	pool := readyPool(t, k, ctx, "uatom", "uosmo", math.NewInt(1_000_000), math.NewInt(1_000_000))
	require.NoError(t, bk.MintCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin("uosmo", math.NewInt(1_000_000)))))
	require.NoError(t, bk.SendCoinsFromModuleToAccount(ctx, types.ModuleName, keeper.EscrowAddress(pool.PortId, pool.ChannelId), sdk.NewCoins(sdk.NewCoin("uosmo", math.NewInt(1_000_000)))))

	recipient := sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
	// tokenOut wildly overstates the expected output so the slippage guard rejects it.
	p := types.NewLeftSwapPacket("cosmos1trader", types.NewCoin("uatom", math.NewInt(10_000)), types.NewCoin("uosmo", math.NewInt(50_000)), 100, recipient.String())
	ack := k.OnRecvPacket(ctx, testPacket(), p)
	require.False(t, ack.Success())

	// Rejected swap must not have mutated the pool.
	after, found := k.GetPool(ctx, pool.Id)
	require.True(t, found)
	require.True(t, after.Assets[0].Balance.Amount.Equal(pool.Assets[0].Balance.Amount))
}

func TestHandleRightSwap_SlippageGuardRejectsExcessiveInput(t *testing.T) {
	k, ctx, bk, _ := keepertest.InterchainSwapKeeper(t)
	pool := readyPool(t, k, ctx, "uatom", "uosmo", math.NewInt(1_000_000), math.NewInt(1_000_000))
	require.NoError(t, bk.MintCoins(ctx, types.ModuleName, sdk.NewCoins(sdk.NewCoin("uosmo", math.NewInt(1_000_000)))))
	require.NoError(t, bk.SendCoinsFromModuleToAccount(ctx, types.ModuleName, keeper.EscrowAddress(pool.PortId, pool.ChannelId), sdk.NewCoins(sdk.NewCoin("uosmo", math.NewInt(1_000_000)))))

	recipient := sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
	// tokenIn wildly understates the required input so the slippage guard rejects it.
	p := types.NewRightSwapPacket("cosmos1trader", types.NewCoin("uatom", math.NewInt(1)), types.NewCoin("uosmo", math.NewInt(50_000)), 100, recipient.String())
	ack := k.OnRecvPacket(ctx, testPacket(), p)
	require.False(t, ack.Success())
}
