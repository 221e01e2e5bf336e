// Package crypto exposes the primitives needed to receive gift-wrapped
// feedback.
//
// Contents
//
//   - Bech32 key codec for the nsec/npub text forms (DecodeSecretKey,
//     DecodePublicKey, EncodeSecretKey, EncodePublicKey)
//   - secp256k1 key generation and x-only public derivation
//     (GenerateKeyPair, DerivePublicKey)
//   - Conversation key agreement via ECDH (NewConversationKey)
//   - Versioned authenticated envelope encrypt/decrypt (Encrypt, Decrypt)
//
// # Notes
//
// Conversation keys are ephemeral: each gift wrap is encrypted under a
// fresh one-time key, so callers recompute the key per record and never
// cache it. Key derivation intermediates are wiped after use.
package crypto
