// Package app wires application dependencies for the CLI.
//
// It loads configuration from the environment (and an optional .env
// file), applies defaults, and builds the relay pool, unwrapper, digest
// service, and report store from Config, exposing them via the Wire
// struct for commands to use. Key material is validated here, before any
// network activity.
package app
