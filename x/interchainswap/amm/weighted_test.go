package amm

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/interchainswap/core/x/interchainswap/types"
)

// Scenario values from spec §8, fee = 30 bps, weights 50:50.

func TestDepositDoubleSeed_S1(t *testing.T) {
	supply, lpA, lpB, err := DepositDoubleSeed(math.NewInt(1_000_000), math.NewInt(1_000_000), 50, 50, math.NewInt(1000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), supply)
	require.Equal(t, supply, lpA.Add(lpB))
}

func TestDepositDoubleSeed_RejectsBelowMinimumInitialLiquidity(t *testing.T) {
	_, _, _, err := DepositDoubleSeed(math.NewInt(10), math.NewInt(10), 50, 50, math.NewInt(1000))
	require.ErrorIs(t, err, types.ErrDustPool)
}

func TestLeftSwap_S2(t *testing.T) {
	balIn := math.NewInt(1_000_000)
	balOut := math.NewInt(1_000_000)
	out, err := LeftSwap(balIn, balOut, 50, 50, math.NewInt(100_000), 30)
	require.NoError(t, err)
	// 1e6 * (1 - 1e6/1,099,700) truncated toward zero.
	require.Equal(t, math.NewInt(90661), out)
}

func TestRightSwap_S3(t *testing.T) {
	// Pool state after S2's left swap: the full 100,000 ATOM (fee included)
	// entered the pool, 90,661 OSMO left it.
	balIn := math.NewInt(1_100_000)
	balOut := math.NewInt(909_339)
	in, err := RightSwap(balIn, balOut, 50, 50, math.NewInt(50_000), 30)
	require.NoError(t, err)
	require.True(t, in.IsPositive())
}

func TestWithdraw_S4(t *testing.T) {
	out, err := Withdraw(math.NewInt(1_000_000), math.NewInt(909_301), 50, math.NewInt(100_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(172767), out)
}

func TestLeftSwap_RejectsEmptyPool(t *testing.T) {
	_, err := LeftSwap(math.ZeroInt(), math.NewInt(100), 50, 50, math.NewInt(10), 30)
	require.Error(t, err)
}

func TestRightSwap_RejectsOutputAtOrAboveBalance(t *testing.T) {
	_, err := RightSwap(math.NewInt(1000), math.NewInt(500), 50, 50, math.NewInt(500), 30)
	require.Error(t, err)
}

func TestWithdraw_RejectsOverRedeem(t *testing.T) {
	_, err := Withdraw(math.NewInt(1000), math.NewInt(1000), 50, math.NewInt(1001))
	require.Error(t, err)
}

func TestDepositSingle_RejectsEmptyPoolSeeding(t *testing.T) {
	_, err := DepositSingle(math.ZeroInt(), math.ZeroInt(), 50, math.NewInt(100))
	require.Error(t, err)
}
