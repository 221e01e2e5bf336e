package unwrap

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"feedbackdigest/internal/crypto"
	"feedbackdigest/internal/domain"
)

// Service unwraps gift-wrapped events for one recipient identity.
type Service struct {
	keys domain.KeyPair
	log  zerolog.Logger
}

// New returns an unwrapper holding the recipient key pair.
func New(keys domain.KeyPair, log zerolog.Logger) *Service {
	return &Service{keys: keys, log: log}
}

// Unwrap peels both encryption layers off a gift wrap and parses the
// rumor's content as feedback. The returned record's sender is the seal's
// pubkey; the outer event's pubkey is a one-time ephemeral key and must
// never be reported as the sender.
func (s *Service) Unwrap(ev domain.Event) (domain.FeedbackRecord, error) {
	ephemeral, err := domain.PublicKeyFromHex(ev.PubKey)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("wrap pubkey: %w", err)
	}
	outerKey, err := crypto.NewConversationKey(s.keys.Secret, ephemeral)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("wrap conversation key: %w", err)
	}
	sealJSON, err := crypto.Decrypt(ev.Content, outerKey)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("open wrap: %w", err)
	}

	var seal domain.Event
	if err := json.Unmarshal([]byte(sealJSON), &seal); err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("parse seal: %w", err)
	}
	sender, err := domain.PublicKeyFromHex(seal.PubKey)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("seal pubkey: %w", err)
	}
	innerKey, err := crypto.NewConversationKey(s.keys.Secret, sender)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("seal conversation key: %w", err)
	}
	rumorJSON, err := crypto.Decrypt(seal.Content, innerKey)
	if err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("open seal: %w", err)
	}

	var rumor domain.Event
	if err := json.Unmarshal([]byte(rumorJSON), &rumor); err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("parse rumor: %w", err)
	}

	return domain.FeedbackRecord{
		Payload:    parsePayload(rumor.Content),
		Sender:     seal.PubKey,
		ReceivedAt: ev.CreatedAt,
	}, nil
}

// UnwrapAll unwraps a batch, dropping events that fail. Failures are
// expected for a subset of events and never abort the batch.
func (s *Service) UnwrapAll(events []domain.Event) []domain.FeedbackRecord {
	records := make([]domain.FeedbackRecord, 0, len(events))
	for _, ev := range events {
		rec, err := s.Unwrap(ev)
		if err != nil {
			s.log.Warn().Str("event", ev.ID).Err(err).Msg("dropping undecryptable event")
			continue
		}
		s.log.Debug().Str("event", ev.ID).Str("type", rec.Type()).Msg("unwrapped feedback")
		records = append(records, rec)
	}
	s.log.Info().Int("total", len(events)).Int("decrypted", len(records)).Msg("unwrap finished")
	return records
}

// parsePayload tries the structured form first: a JSON object becomes
// field/value pairs, anything else is kept verbatim as raw text.
func parsePayload(content string) domain.Payload {
	var fields map[string]any
	if err := json.Unmarshal([]byte(content), &fields); err != nil || fields == nil {
		return domain.Payload{Raw: content}
	}
	return domain.Payload{Fields: fields}
}
