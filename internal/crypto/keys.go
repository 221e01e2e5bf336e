package crypto

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"feedbackdigest/internal/domain"
)

// Human-readable prefixes for the two key text forms.
const (
	hrpSecretKey = "nsec"
	hrpPublicKey = "npub"
)

// DecodeSecretKey parses the bech32 nsec form of a secret key. Mixed case,
// bad charset, bad checksum, misplaced separator, or a wrong prefix all
// fail with an error wrapping ErrKeyFormat.
func DecodeSecretKey(s string) (domain.SecretKey, error) {
	raw, err := decodeKey(s, hrpSecretKey)
	return domain.SecretKey(raw), err
}

// DecodePublicKey parses the bech32 npub form of a public key.
func DecodePublicKey(s string) (domain.PublicKey, error) {
	raw, err := decodeKey(s, hrpPublicKey)
	return domain.PublicKey(raw), err
}

// EncodeSecretKey renders the bech32 nsec form.
func EncodeSecretKey(k domain.SecretKey) (string, error) {
	return encodeKey(k[:], hrpSecretKey)
}

// EncodePublicKey renders the bech32 npub form.
func EncodePublicKey(k domain.PublicKey) (string, error) {
	return encodeKey(k[:], hrpPublicKey)
}

func decodeKey(s, wantHRP string) ([32]byte, error) {
	var out [32]byte
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	if hrp != wantHRP {
		return out, fmt.Errorf("%w: expected %q prefix, got %q", ErrKeyFormat, wantHRP, hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	if len(raw) != len(out) {
		return out, fmt.Errorf("%w: key must be %d bytes, got %d", ErrKeyFormat, len(out), len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func encodeKey(raw []byte, hrp string) (string, error) {
	data, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, data)
}

// GenerateKeyPair returns a fresh secp256k1 key pair with the public key
// in the x-only form events carry.
func GenerateKeyPair() (domain.KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return domain.KeyPair{}, err
	}
	defer priv.Zero()

	var kp domain.KeyPair
	copy(kp.Secret[:], priv.Serialize())
	kp.Public = xOnly(priv.PubKey())
	return kp, nil
}

// DerivePublicKey returns the x-only public key for a secret scalar.
func DerivePublicKey(sk domain.SecretKey) domain.PublicKey {
	priv := secp256k1.PrivKeyFromBytes(sk[:])
	defer priv.Zero()
	return xOnly(priv.PubKey())
}

func xOnly(pub *secp256k1.PublicKey) domain.PublicKey {
	var pk domain.PublicKey
	// SerializeCompressed yields a parity byte followed by the 32-byte X
	// coordinate; the wire form drops the parity.
	copy(pk[:], pub.SerializeCompressed()[1:])
	return pk
}
