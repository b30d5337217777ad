package keeper

import "encoding/json"

// marshalAck encodes an acknowledgement payload (or the canonical message
// bytes fed to signature verification) as canonical JSON, the same wire
// convention the packet codec uses (types/packets.go).
func marshalAck(v any) ([]byte, error) {
	return json.Marshal(v)
}
