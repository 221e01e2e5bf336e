package crypto

import "errors"

var (
	// ErrKeyFormat is returned for malformed nsec/npub strings. Fatal at
	// startup; everything else below is contained per record.
	ErrKeyFormat = errors.New("malformed key encoding")

	// ErrUnsupportedVersion is returned when the envelope version byte is
	// not the supported version 2.
	ErrUnsupportedVersion = errors.New("unsupported envelope version")

	// ErrIntegrity is returned when authentication fails: tampered
	// ciphertext, wrong key, or wrong nonce. No plaintext is produced.
	ErrIntegrity = errors.New("envelope authentication failed")

	// ErrPadding is returned when the decrypted length prefix is
	// inconsistent with the block size.
	ErrPadding = errors.New("invalid envelope padding")

	// ErrMalformed is returned for blobs too damaged to reach the cipher:
	// bad base64 or truncated framing.
	ErrMalformed = errors.New("malformed envelope")
)
