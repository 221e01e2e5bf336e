// Package main runs the in-memory websocket relay used during development
// and tests. It stores published events and replays the ones matching a
// subscriber's filter.
//
// Wire dialogue (JSON arrays over a websocket at /)
//
//	["EVENT", {event}]
//	    Store an event. Duplicates (same id) are kept once. The relay
//	    replies ["OK", id, true, ""].
//
//	["REQ", subID, {filter}...]
//	    Replay stored events matching any filter (kinds, #p, since,
//	    limit) as ["EVENT", subID, {event}] frames, then send
//	    ["EOSE", subID]. Each filter's limit caps its own matches.
//
//	["CLOSE", subID]
//	    Ignored; subscriptions here are replay-only.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - The default listen address is :8080.
//   - The relay never sees plaintext; gift wraps are opaque ciphertext.
package main
