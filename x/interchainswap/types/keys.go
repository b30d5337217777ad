package types

import "strconv"

const (
	// ModuleName defines the module name
	ModuleName = "interchainswap"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// PortID is the port this module binds at initialization.
	PortID = "interchainswap"

	// IBCVersion is the only channel version this module accepts.
	IBCVersion = "ics101-1"
)

// Store key prefixes.
var (
	PoolKey       = []byte{0x01} // prefix: PoolKey || poolId -> Pool
	PoolDenomKey  = []byte{0x02} // prefix: PoolDenomKey || sortedDenoms -> poolId
	PendingOpKey  = []byte{0x03} // prefix: PendingOpKey || channelID || sequence -> keeper.PendingOp
	ParamsKey     = []byte{0x04} // singleton key -> Params
	NextSeqMemo   = []byte{0x05} // unused placeholder reserved for future migrations
)

// GetPoolKey returns the store key for a pool by its derived id.
func GetPoolKey(poolId string) []byte {
	return append(append([]byte{}, PoolKey...), []byte(poolId)...)
}

// GetPoolDenomKey returns the lookup key for a pool given its two denoms,
// regardless of the order they're supplied in (lookups must be
// order-independent since PoolId derivation itself sorts the denoms).
func GetPoolDenomKey(denomA, denomB string) []byte {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}
	key := append(append([]byte{}, PoolDenomKey...), []byte(denomA)...)
	key = append(key, '/')
	return append(key, []byte(denomB)...)
}

// GetPendingOpKey returns the store key for a pending cross-chain operation.
func GetPendingOpKey(channelID string, sequence uint64) []byte {
	key := append(append([]byte{}, PendingOpKey...), []byte(channelID)...)
	key = append(key, '/')
	return append(key, []byte(strconv.FormatUint(sequence, 10))...)
}
