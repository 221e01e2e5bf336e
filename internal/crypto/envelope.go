package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"feedbackdigest/internal/util/memzero"
)

// Envelope format, version 2:
//
//	version (1) || nonce (32) || ciphertext+tag
//
// base64-encoded on the wire. The decrypted block carries a 2-byte
// big-endian length prefix followed by the payload and zero padding.
const (
	envelopeVersion = 2

	envelopeNonceSize = 32
	aeadTagSize       = chacha20poly1305.Overhead
	lengthPrefixSize  = 2

	// Smallest well-formed blob: version, nonce, length prefix, tag.
	minEnvelopeSize = 1 + envelopeNonceSize + lengthPrefixSize + aeadTagSize

	// Per-message keying material: 32-byte cipher key, 12-byte cipher
	// nonce, 32 reserved bytes.
	okmSize = 76
)

// kdfInfo is the domain-separation label for the envelope KDF.
var kdfInfo = []byte("nip44-v2")

// messageKeys derives the cipher key and nonce from the envelope nonce
// (salt) and the conversation key (input keying material).
func messageKeys(ck ConversationKey, nonce []byte) (key [chacha20poly1305.KeySize]byte, aeadNonce [chacha20poly1305.NonceSize]byte, err error) {
	okm := make([]byte, okmSize)
	if _, err = io.ReadFull(hkdf.New(sha256.New, ck[:], nonce, kdfInfo), okm); err != nil {
		return
	}
	copy(key[:], okm[:chacha20poly1305.KeySize])
	copy(aeadNonce[:], okm[chacha20poly1305.KeySize:chacha20poly1305.KeySize+chacha20poly1305.NonceSize])
	memzero.Zero(okm)
	return
}

// Decrypt recovers the plaintext of a base64 envelope under the given
// conversation key. Authentication failure never yields partial plaintext.
func Decrypt(b64 string, ck ConversationKey) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty", ErrMalformed)
	}
	// Version is judged before framing so an unsupported version is
	// reported as such even for a truncated blob.
	if raw[0] != envelopeVersion {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, raw[0])
	}
	if len(raw) < minEnvelopeSize {
		return "", fmt.Errorf("%w: %d bytes", ErrMalformed, len(raw))
	}
	nonce := raw[1 : 1+envelopeNonceSize]
	body := raw[1+envelopeNonceSize:]

	key, aeadNonce, err := messageKeys(ck, nonce)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(key[:])

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return "", err
	}
	padded, err := aead.Open(nil, aeadNonce[:], body, nil)
	if err != nil {
		return "", ErrIntegrity
	}

	n := int(binary.BigEndian.Uint16(padded[:lengthPrefixSize]))
	if lengthPrefixSize+n > len(padded) {
		return "", fmt.Errorf("%w: payload %d exceeds block %d", ErrPadding, n, len(padded)-lengthPrefixSize)
	}
	return string(padded[lengthPrefixSize : lengthPrefixSize+n]), nil
}

// Encrypt seals plaintext into a base64 envelope under the given
// conversation key, using a fresh random nonce.
func Encrypt(plaintext string, ck ConversationKey) (string, error) {
	var nonce [envelopeNonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}
	return encryptWithNonce(plaintext, ck, nonce)
}

func encryptWithNonce(plaintext string, ck ConversationKey, nonce [envelopeNonceSize]byte) (string, error) {
	if len(plaintext) > math.MaxUint16 {
		return "", fmt.Errorf("plaintext too long: %d bytes", len(plaintext))
	}

	padded := make([]byte, lengthPrefixSize+paddedLen(len(plaintext)))
	binary.BigEndian.PutUint16(padded[:lengthPrefixSize], uint16(len(plaintext)))
	copy(padded[lengthPrefixSize:], plaintext)

	key, aeadNonce, err := messageKeys(ck, nonce[:])
	if err != nil {
		return "", err
	}
	defer memzero.Zero(key[:])

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return "", err
	}
	body := aead.Seal(nil, aeadNonce[:], padded, nil)

	out := make([]byte, 0, 1+envelopeNonceSize+len(body))
	out = append(out, envelopeVersion)
	out = append(out, nonce[:]...)
	out = append(out, body...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// paddedLen rounds up to a 32-byte boundary so ciphertext length leaks
// less about the payload.
func paddedLen(n int) int {
	if n == 0 {
		return 32
	}
	return (n + 31) / 32 * 32
}
