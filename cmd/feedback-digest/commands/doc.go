// Package commands defines the feedback-digest CLI and wires dependencies
// for subcommands.
//
// Commands
//
//   - digest     Fetch, decrypt, and summarize feedback from the relays
//   - recipient  Print the recipient public key used for the relay filter
//
// # Implementation
//
// The root command loads configuration from the environment (plus an
// optional .env file) and applies flag overrides before any subcommand
// runs, so handlers share one Config and one logger. Key material is
// validated when the dependency graph is built, before any network
// activity.
package commands
