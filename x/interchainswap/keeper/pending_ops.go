package keeper

import (
	"context"
	"encoding/json"
	"time"

	storetypes "cosmossdk.io/store/types"

	"github.com/interchainswap/core/x/interchainswap/types"
)

// PendingOp records everything the ack/timeout handler needs to finalize or
// refund an in-flight packet, keyed by (channel, sequence). Adapted from the
// teacher's shared x/shared/ibc ChannelOperation — generalized from
// "what to clean up on channel close" to "what to finalize-or-refund on
// ack/timeout", which is the same bookkeeping shape with a richer payload.
type PendingOp struct {
	PortID     string     `json:"port_id"`
	ChannelID  string     `json:"channel_id"`
	Sequence   uint64     `json:"sequence"`
	PacketType string     `json:"packet_type"`
	Sender     string     `json:"sender"`
	EscrowCoin types.Coin `json:"escrow_coin"`
	PoolId     string     `json:"pool_id,omitempty"`
	// SentAt is only set for swap packets, to back the swap_ack_latency_seconds
	// histogram; zero for every other packet type.
	SentAt time.Time `json:"sent_at,omitempty"`
}

func (k Keeper) SetPendingOp(ctx context.Context, op PendingOp) error {
	bz, err := json.Marshal(op)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.GetPendingOpKey(op.ChannelID, op.Sequence), bz)
	GetMetrics().PendingOps.WithLabelValues(op.ChannelID).Inc()
	return nil
}

func (k Keeper) GetPendingOp(ctx context.Context, channelID string, sequence uint64) (PendingOp, bool) {
	bz := k.getStore(ctx).Get(types.GetPendingOpKey(channelID, sequence))
	if bz == nil {
		return PendingOp{}, false
	}
	var op PendingOp
	if err := json.Unmarshal(bz, &op); err != nil {
		return PendingOp{}, false
	}
	return op, true
}

func (k Keeper) DeletePendingOp(ctx context.Context, channelID string, sequence uint64) {
	k.getStore(ctx).Delete(types.GetPendingOpKey(channelID, sequence))
	GetMetrics().PendingOps.WithLabelValues(channelID).Dec()
}

// GetPendingOpsForChannel returns every pending op still outstanding on a
// channel, used by the forced-close cleanup path (SPEC_FULL.md §10).
func (k Keeper) GetPendingOpsForChannel(ctx context.Context, channelID string) []PendingOp {
	prefix := append(append([]byte{}, types.PendingOpKey...), []byte(channelID+"/")...)
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var ops []PendingOp
	for ; iterator.Valid(); iterator.Next() {
		var op PendingOp
		if err := json.Unmarshal(iterator.Value(), &op); err != nil {
			continue
		}
		ops = append(ops, op)
	}
	return ops
}
