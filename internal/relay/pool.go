package relay

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"feedbackdigest/internal/domain"
)

// Pool fans the same query out to several relays and merges the results.
type Pool struct {
	clients []*Client
	timeout time.Duration
	log     zerolog.Logger
}

// NewPool builds a pool over the given relay URLs. Each relay query is
// bounded by timeout independently of the others.
func NewPool(urls []string, timeout time.Duration, log zerolog.Logger) *Pool {
	clients := make([]*Client, 0, len(urls))
	for _, u := range urls {
		clients = append(clients, NewClient(u, log))
	}
	return &Pool{clients: clients, timeout: timeout, log: log}
}

// Fetch queries every relay concurrently and returns the merged events,
// deduplicated by event id. First seen wins, walking relays in configured
// order, so results are deterministic for fixed relay responses. Relay
// failures are logged and contribute nothing.
func (p *Pool) Fetch(ctx context.Context, f domain.Filter) ([]domain.Event, error) {
	type result struct {
		events []domain.Event
		err    error
	}
	results := make([]result, len(p.clients))

	var wg sync.WaitGroup
	for i, c := range p.clients {
		wg.Add(1)
		go func(i int, c *Client) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()
			evs, err := c.Fetch(cctx, f)
			results[i] = result{events: evs, err: err}
		}(i, c)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	var merged []domain.Event
	for i, r := range results {
		c := p.clients[i]
		if r.err != nil {
			p.log.Warn().Str("relay", c.URL).Err(r.err).Msg("relay query failed")
			continue
		}
		fresh := 0
		for _, ev := range r.events {
			if _, dup := seen[ev.ID]; dup {
				continue
			}
			seen[ev.ID] = struct{}{}
			merged = append(merged, ev)
			fresh++
		}
		p.log.Info().
			Str("relay", c.URL).
			Int("events", len(r.events)).
			Int("new", fresh).
			Msg("relay query done")
	}
	return merged, nil
}

// Compile-time assertion that Pool implements domain.EventFetcher.
var _ domain.EventFetcher = (*Pool)(nil)
