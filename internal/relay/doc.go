// Package relay fetches events from untrusted relay endpoints.
//
// A Client speaks the subscription dialogue to one relay over a
// websocket: it sends a REQ frame with the query filter, collects EVENT
// frames for its subscription, and stops at the end-of-stream marker
// (EOSE), a server-side close, or the context deadline. A Pool issues
// the same query to every configured relay concurrently, bounds each
// query with a per-relay timeout, and merges the results, keeping each
// event id exactly once (first seen wins, in configured relay order).
//
// Relay failures are isolated: a dead, slow, or misbehaving relay only
// reduces coverage, it never fails the aggregate query. Per-relay
// outcomes are logged, not returned.
package relay
