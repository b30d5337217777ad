package types

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Invariant 1 (spec §8): pool id derivation is independent of argument
// order.
func TestGeneratePoolId_OrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		denomA := rapid.StringMatching(`[a-z]{3,8}`).Draw(t, "denomA")
		denomB := rapid.StringMatching(`[a-z]{3,8}`).Draw(t, "denomB")

		require.Equal(t, GeneratePoolId(denomA, denomB), GeneratePoolId(denomB, denomA))
	})
}

func TestGeneratePoolId_Deterministic(t *testing.T) {
	id1 := GeneratePoolId("atom", "osmo")
	id2 := GeneratePoolId("atom", "osmo")
	require.Equal(t, id1, id2)
	require.Equal(t, "pool", id1[:4])
}
