package keeper

import (
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
)

// DefaultSignatureVerifier implements types.SignatureVerifier over the two
// key types the SDK's account keeper actually stores. DoubleDeposit's
// remote leg is the only caller (relay.go's verifyRemoteDeposit).
type DefaultSignatureVerifier struct{}

func (DefaultSignatureVerifier) VerifySignature(pubKey []byte, keyType string, message, signature []byte) bool {
	switch keyType {
	case "secp256k1":
		return (&secp256k1.PubKey{Key: pubKey}).VerifySignature(message, signature)
	case "ed25519":
		return (&ed25519.PubKey{Key: pubKey}).VerifySignature(message, signature)
	default:
		return false
	}
}
