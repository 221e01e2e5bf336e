package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"feedbackdigest/internal/domain"
)

type memoryRelay struct {
	mu     sync.Mutex
	events []domain.Event
	seen   map[string]struct{}
	log    zerolog.Logger
}

func newMemoryRelay(log zerolog.Logger) *memoryRelay {
	return &memoryRelay{seen: make(map[string]struct{}), log: log}
}

func (r *memoryRelay) store(ev domain.Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.seen[ev.ID]; dup {
		return false
	}
	r.seen[ev.ID] = struct{}{}
	r.events = append(r.events, ev)
	return true
}

func (r *memoryRelay) matching(filters []domain.Filter) []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Event
	used := make(map[string]struct{})
	for _, f := range filters {
		count := 0
		for _, ev := range r.events {
			if f.Limit > 0 && count >= f.Limit {
				break
			}
			if !f.Matches(ev) {
				continue
			}
			count++
			if _, dup := used[ev.ID]; dup {
				continue
			}
			used[ev.ID] = struct{}{}
			out = append(out, ev)
		}
	}
	return out
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func (r *memoryRelay) handle(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	defer conn.Close()
	log := r.log.With().Str("remote", req.RemoteAddr).Logger()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
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
			var ev domain.Event
			if err := json.Unmarshal(frame[1], &ev); err != nil {
				continue
			}
			fresh := r.store(ev)
			log.Info().Str("event", ev.ID).Int("kind", ev.Kind).Bool("new", fresh).Msg("event published")
			_ = conn.WriteJSON([]any{"OK", ev.ID, true, ""})

		case "REQ":
			var sub string
			if err := json.Unmarshal(frame[1], &sub); err != nil {
				continue
			}
			filters := make([]domain.Filter, 0, len(frame)-2)
			for _, raw := range frame[2:] {
				var f domain.Filter
				if err := json.Unmarshal(raw, &f); err == nil {
					filters = append(filters, f)
				}
			}
			matched := r.matching(filters)
			for _, ev := range matched {
				_ = conn.WriteJSON([]any{"EVENT", sub, ev})
			}
			_ = conn.WriteJSON([]any{"EOSE", sub})
			log.Info().Str("sub", sub).Int("events", len(matched)).Msg("subscription served")
		}
	}
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	relay := newMemoryRelay(log)
	http.HandleFunc("/", relay.handle)

	log.Info().Str("addr", *addr).Msg("dev relay listening")
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal().Err(err).Msg("relay stopped")
	}
}
