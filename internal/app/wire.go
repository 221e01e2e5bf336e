package app

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"feedbackdigest/internal/anthropic"
	"feedbackdigest/internal/crypto"
	"feedbackdigest/internal/domain"
	"feedbackdigest/internal/relay"
	digestsvc "feedbackdigest/internal/services/digest"
	unwrapsvc "feedbackdigest/internal/services/unwrap"
	"feedbackdigest/internal/store"
)

// Wire bundles the dependency graph for the CLI.
type Wire struct {
	Keys      domain.KeyPair
	Recipient domain.PublicKey
	Relays    *relay.Pool
	Unwrap    *unwrapsvc.Service
	Digest    *digestsvc.Service
	Reports   *store.ReportStore
	Log       zerolog.Logger
}

// NewWire validates key material and constructs the dependency graph.
// A missing or malformed secret key is the only fatal configuration
// error; everything downstream degrades per-record or per-relay.
func NewWire(cfg Config, log zerolog.Logger) (*Wire, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("recipient secret key is required (set SUPPORT_NSEC)")
	}
	secret, err := crypto.DecodeSecretKey(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("decode secret key: %w", err)
	}
	keys := domain.KeyPair{Secret: secret, Public: crypto.DerivePublicKey(secret)}

	recipient := keys.Public
	if cfg.Recipient != "" {
		recipient, err = crypto.DecodePublicKey(cfg.Recipient)
		if err != nil {
			return nil, fmt.Errorf("decode recipient key: %w", err)
		}
		if recipient != keys.Public {
			// Still worth running: the filter may target an identity whose
			// traffic this key can nonetheless open during rotation.
			log.Warn().
				Str("recipient", recipient.Hex()).
				Str("derived", keys.Public.Hex()).
				Msg("recipient npub does not match the secret key")
		}
	}

	var summarizer domain.Summarizer
	if cfg.AnthropicAPIKey != "" {
		c := anthropic.NewClient(cfg.AnthropicAPIKey)
		if cfg.AnthropicModel != "" {
			c.Model = cfg.AnthropicModel
		}
		summarizer = c
	}

	return &Wire{
		Keys:      keys,
		Recipient: recipient,
		Relays:    relay.NewPool(cfg.Relays, cfg.RelayTimeout, log),
		Unwrap:    unwrapsvc.New(keys, log),
		Digest:    digestsvc.New(summarizer, log),
		Reports:   store.NewReportStore(cfg.OutputDir),
		Log:       log,
	}, nil
}
