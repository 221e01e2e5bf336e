package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"
)

func testConversationKey(t *testing.T) ConversationKey {
	t.Helper()
	var ck ConversationKey
	if _, err := rand.Read(ck[:]); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return ck
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	ck := testConversationKey(t)
	for _, plaintext := range []string{
		"",
		"a",
		"hello, feedback",
		`{"type":"bug","message":"scorecard loses the back nine"}`,
		strings.Repeat("long feedback ", 500),
	} {
		blob, err := Encrypt(plaintext, ck)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", plaintext, err)
		}
		got, err := Decrypt(blob, ck)
		if err != nil {
			t.Fatalf("Decrypt(%q): %v", plaintext, err)
		}
		if got != plaintext {
			t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
		}
	}
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	ck := testConversationKey(t)
	blob, err := Encrypt("secret feedback", ck)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	other := testConversationKey(t)
	if _, err := Decrypt(blob, other); !errors.Is(err, ErrIntegrity) {
		t.Fatalf("want ErrIntegrity for wrong key, got %v", err)
	}
}

func TestDecryptRejectsTamper(t *testing.T) {
	ck := testConversationKey(t)
	blob, err := Encrypt("tamper with me", ck)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// First/last nonce byte, first/last body byte, first/last tag byte.
	offsets := []int{1, 1 + 31, 1 + 32, len(raw) - 17, len(raw) - 16, len(raw) - 1}
	for _, off := range offsets {
		mutated := append([]byte(nil), raw...)
		mutated[off] ^= 0x01
		_, err := Decrypt(base64.StdEncoding.EncodeToString(mutated), ck)
		if !errors.Is(err, ErrIntegrity) {
			t.Fatalf("offset %d: want ErrIntegrity, got %v", off, err)
		}
	}
}

func TestDecryptRejectsVersion(t *testing.T) {
	ck := testConversationKey(t)
	blob, err := Encrypt("versioned", ck)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	raw, _ := base64.StdEncoding.DecodeString(blob)
	for _, v := range []byte{0, 1, 3, 255} {
		mutated := append([]byte(nil), raw...)
		mutated[0] = v
		_, err := Decrypt(base64.StdEncoding.EncodeToString(mutated), ck)
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Fatalf("version %d: want ErrUnsupportedVersion, got %v", v, err)
		}
	}

	// The version verdict must not depend on the rest of the blob being
	// well-formed: a truncated non-version-2 blob is still a version error.
	truncated := base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if _, err := Decrypt(truncated, ck); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("truncated blob: want ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecryptRejectsMalformed(t *testing.T) {
	ck := testConversationKey(t)
	if _, err := Decrypt("!!! not base64 !!!", ck); !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed for bad base64, got %v", err)
	}
	short := base64.StdEncoding.EncodeToString([]byte{envelopeVersion, 1, 2, 3})
	if _, err := Decrypt(short, ck); !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed for truncated blob, got %v", err)
	}
}

func TestDecryptRejectsBadPadding(t *testing.T) {
	ck := testConversationKey(t)

	// Seal a block whose length prefix claims more payload than the block
	// holds. This has to be assembled by hand since Encrypt always writes
	// a consistent prefix.
	var nonce [envelopeNonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		t.Fatalf("rand: %v", err)
	}
	padded := make([]byte, lengthPrefixSize+8)
	binary.BigEndian.PutUint16(padded[:lengthPrefixSize], 1000)

	key, aeadNonce, err := messageKeys(ck, nonce[:])
	if err != nil {
		t.Fatalf("messageKeys: %v", err)
	}
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		t.Fatalf("aead: %v", err)
	}
	body := aead.Seal(nil, aeadNonce[:], padded, nil)

	raw := append([]byte{envelopeVersion}, nonce[:]...)
	raw = append(raw, body...)
	_, err = Decrypt(base64.StdEncoding.EncodeToString(raw), ck)
	if !errors.Is(err, ErrPadding) {
		t.Fatalf("want ErrPadding, got %v", err)
	}
}
