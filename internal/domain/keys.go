package domain

import (
	"encoding/hex"
	"fmt"
)

// SecretKey is a raw secp256k1 secret scalar.
type SecretKey [32]byte

// PublicKey is a raw x-only secp256k1 public key, the form events carry.
type PublicKey [32]byte

// Hex returns the lowercase hex form used on the wire.
func (p PublicKey) Hex() string { return hex.EncodeToString(p[:]) }

// PublicKeyFromHex parses the 64-char hex form events carry.
func PublicKeyFromHex(s string) (PublicKey, error) {
	var p PublicKey
	raw, err := hex.DecodeString(s)
	if err != nil {
		return p, fmt.Errorf("public key hex: %w", err)
	}
	if len(raw) != len(p) {
		return p, fmt.Errorf("public key must be %d bytes, got %d", len(p), len(raw))
	}
	copy(p[:], raw)
	return p, nil
}

// KeyPair holds the recipient identity for the process lifetime.
type KeyPair struct {
	Secret SecretKey
	Public PublicKey
}
