package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"feedbackdigest/internal/domain"
)

const emptyDigest = `No feedback received in this period.

This could mean:
- no users have submitted feedback yet
- feedback events have not propagated to the queried relays
- the time window did not capture any submissions`

// Service produces the digest body from decrypted records.
type Service struct {
	summarizer domain.Summarizer // nil when no credentials are configured
	log        zerolog.Logger
}

// New returns a digest service. A nil summarizer selects the raw fallback.
func New(s domain.Summarizer, log zerolog.Logger) *Service {
	return &Service{summarizer: s, log: log}
}

// Generate returns the digest body for the records. Summarizer absence or
// failure degrades to the raw records instead of failing the run.
func (s *Service) Generate(ctx context.Context, records []domain.FeedbackRecord) (string, error) {
	if len(records) == 0 {
		return emptyDigest, nil
	}
	if s.summarizer == nil {
		s.log.Warn().Msg("no summarizer configured; emitting raw records")
		return rawDigest(records)
	}
	text, err := s.summarizer.Summarize(ctx, records)
	if err != nil {
		s.log.Warn().Err(err).Msg("summarizer failed; emitting raw records")
		return rawDigest(records)
	}
	return text, nil
}

func rawDigest(records []domain.FeedbackRecord) (string, error) {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return "Summary unavailable. Raw feedback:\n\n```json\n" + string(b) + "\n```", nil
}

// Render wraps a digest body in the report header.
func Render(body string, total, days int, now time.Time) string {
	return fmt.Sprintf(`# Feedback Digest

**Period:** last %d days
**Generated:** %s
**Total feedback:** %d items

---

%s
`, days, now.UTC().Format("2006-01-02 15:04:05 UTC"), total, body)
}
