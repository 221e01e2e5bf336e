package relay

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"feedbackdigest/internal/domain"
)

// Client queries a single relay endpoint.
type Client struct {
	URL    string
	Dialer *websocket.Dialer
	Log    zerolog.Logger
}

// NewClient returns a client for one relay URL.
func NewClient(url string, log zerolog.Logger) *Client {
	return &Client{
		URL:    url,
		Dialer: websocket.DefaultDialer,
		Log:    log.With().Str("relay", url).Logger(),
	}
}

// Fetch opens a subscription for the filter and collects events until the
// relay signals end-of-stream or the context deadline passes. A deadline
// expiry keeps whatever was gathered; only failing to connect or to
// subscribe is an error.
func (c *Client) Fetch(ctx context.Context, f domain.Filter) ([]domain.Event, error) {
	conn, _, err := c.Dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.URL, err)
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(dl)
		_ = conn.SetWriteDeadline(dl)
	}

	sub := "digest-" + uuid.NewString()[:8]
	if err := conn.WriteJSON([]any{"REQ", sub, f}); err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", c.URL, err)
	}

	var events []domain.Event
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			// Deadline or dropped connection ends the stream early.
			c.Log.Debug().Err(err).Msg("subscription ended without EOSE")
			return events, nil
		}

		var frame []json.RawMessage
		if err := json.Unmarshal(msg, &frame); err != nil || len(frame) < 2 {
			continue
		}
		var typ string
		if err := json.Unmarshal(frame[0], &typ); err != nil {
			continue
		}

		switch typ {
		case "EVENT":
			if len(frame) < 3 || !matchesSub(frame[1], sub) {
				continue
			}
			var ev domain.Event
			if err := json.Unmarshal(frame[2], &ev); err != nil {
				c.Log.Debug().Err(err).Msg("skipping undecodable event")
				continue
			}
			events = append(events, ev)
		case "EOSE":
			if !matchesSub(frame[1], sub) {
				continue
			}
			_ = conn.WriteJSON([]any{"CLOSE", sub})
			return events, nil
		case "CLOSED":
			if matchesSub(frame[1], sub) {
				return events, nil
			}
		case "NOTICE":
			c.Log.Debug().RawJSON("notice", frame[1]).Msg("relay notice")
		}
	}
}

func matchesSub(raw json.RawMessage, sub string) bool {
	var got string
	return json.Unmarshal(raw, &got) == nil && got == sub
}

// Compile-time assertion that Client implements domain.EventFetcher.
var _ domain.EventFetcher = (*Client)(nil)
