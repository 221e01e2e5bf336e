package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"feedbackdigest/internal/domain"
	"feedbackdigest/internal/util/memzero"
)

// ConversationKey is the shared secret between two identities, used as
// input keying material for the envelope KDF.
type ConversationKey [32]byte

// NewConversationKey computes the ECDH shared secret between one party's
// secret scalar and the other's x-only public key, lifted as a compressed
// point with even Y. The returned key is the shared point's X coordinate,
// fed to the KDF as-is with no intermediate hash; clients targeting strict
// interoperability with other ecosystem implementations should verify that
// derivation against a live reference, since some variants hash first.
//
// Negating either point does not change the shared X coordinate, so the
// even-Y lift keeps the key symmetric between the two parties.
func NewConversationKey(sk domain.SecretKey, pk domain.PublicKey) (ConversationKey, error) {
	var ck ConversationKey

	priv := secp256k1.PrivKeyFromBytes(sk[:])
	defer priv.Zero()

	compressed := make([]byte, 0, 33)
	compressed = append(compressed, secp256k1.PubKeyFormatCompressedEven)
	compressed = append(compressed, pk[:]...)
	pub, err := secp256k1.ParsePubKey(compressed)
	if err != nil {
		return ck, fmt.Errorf("parse public point: %w", err)
	}

	var point, shared secp256k1.JacobianPoint
	pub.AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&priv.Key, &point, &shared)
	shared.ToAffine()

	x := shared.X.Bytes()
	copy(ck[:], x[:])
	memzero.Zero(x[:])
	return ck, nil
}
