package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultRecipient is the well-known support identity feedback is
// addressed to.
const DefaultRecipient = "npub1xg8nc32sw6u3m337wzhk8gs3nqmh73r86z6a93s3hetca4jvktls68qyue"

// DefaultRelays are queried when no relay list is configured.
var DefaultRelays = []string{
	"wss://relay.damus.io",
	"wss://relay.snort.social",
	"wss://relay.primal.net",
	"wss://nos.lol",
}

const (
	// DefaultDays is the lookback window.
	DefaultDays = 7
	// DefaultRelayTimeout bounds each relay query.
	DefaultRelayTimeout = 10 * time.Second
)

// Output modes.
const (
	OutputTerminal = "terminal"
	OutputFile     = "file"
	OutputJSON     = "json"
)

// Config holds runtime options for a digest run.
type Config struct {
	SecretKey string // bech32 nsec of the recipient; required
	Recipient string // bech32 npub the relay filter targets

	Relays       []string
	Days         int
	RelayTimeout time.Duration

	Output    string // terminal | file | json
	OutputDir string // for file output

	AnthropicAPIKey string
	AnthropicModel  string // empty selects the client default
}

// FromEnv reads configuration from environment variables, loading a .env
// file first if one is present.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Config{
		SecretKey:       os.Getenv("SUPPORT_NSEC"),
		Recipient:       getEnv("SUPPORT_NPUB", DefaultRecipient),
		Relays:          DefaultRelays,
		Days:            DefaultDays,
		RelayTimeout:    DefaultRelayTimeout,
		Output:          OutputTerminal,
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
	}

	if relays := os.Getenv("NOSTR_RELAYS"); relays != "" {
		cfg.Relays = nil
		for _, r := range strings.Split(relays, ",") {
			if r = strings.TrimSpace(r); r != "" {
				cfg.Relays = append(cfg.Relays, r)
			}
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
