// Package unwrap recovers feedback from gift-wrapped events.
//
// A gift wrap nests three records: the outer event is encrypted under a
// one-time ephemeral key to the recipient; its plaintext is a seal naming
// the true sender; the seal's plaintext is an unsigned rumor whose
// content carries the feedback payload. Both layers use the same
// versioned envelope scheme, keyed by a conversation key between the
// recipient secret and the layer's pubkey.
//
// Per-event failures (hostile or malformed events are routine on an open
// network) are contained: UnwrapAll logs and skips them.
package unwrap
