// Package store persists generated digest reports as markdown files.
// Writes go through a temp file then rename so a crash never leaves a
// half-written report. All methods are concurrency-safe via internal
// locking.
package store
