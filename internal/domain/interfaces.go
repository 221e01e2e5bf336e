package domain

import "context"

// EventFetcher issues a read-only query for matching events. Implemented by
// a single relay client and by the aggregating pool.
type EventFetcher interface {
	Fetch(ctx context.Context, f Filter) ([]Event, error)
}

// Summarizer turns decrypted feedback into prose. Implementations are
// external collaborators and may fail; callers must degrade gracefully.
type Summarizer interface {
	Summarize(ctx context.Context, records []FeedbackRecord) (string, error)
}
