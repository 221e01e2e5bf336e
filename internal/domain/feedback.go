package domain

import "encoding/json"

// Fields injected into every flattened feedback record.
const (
	SenderField     = "_sender_pubkey"
	ReceivedAtField = "_received_at"
)

// Payload is the rumor content after parsing. Exactly one variant is set:
// Fields when the content was a JSON object, Raw otherwise. Modelling the
// fallback as a variant keeps it a first-class branch rather than an
// error path.
type Payload struct {
	Fields map[string]any
	Raw    string
}

// Structured reports whether the payload parsed as a JSON object.
func (p Payload) Structured() bool { return p.Fields != nil }

// FeedbackRecord is one fully unwrapped feedback submission. Sender is the
// seal's pubkey (hex), never the outer event's ephemeral key; ReceivedAt is
// the outer event's created_at.
type FeedbackRecord struct {
	Payload    Payload
	Sender     string
	ReceivedAt int64
}

// Type returns the payload's "type" field, or "unknown" for raw payloads
// and typeless objects.
func (r FeedbackRecord) Type() string {
	if r.Payload.Structured() {
		if t, ok := r.Payload.Fields["type"].(string); ok && t != "" {
			return t
		}
	}
	return "unknown"
}

// Message returns the payload's "message" field, or the raw text.
func (r FeedbackRecord) Message() string {
	if !r.Payload.Structured() {
		return r.Payload.Raw
	}
	m, _ := r.Payload.Fields["message"].(string)
	return m
}

// Map flattens the record for serialization, injecting the sender pubkey
// and receipt timestamp. Raw payloads take the {type, message} shape.
func (r FeedbackRecord) Map() map[string]any {
	out := make(map[string]any, len(r.Payload.Fields)+2)
	if r.Payload.Structured() {
		for k, v := range r.Payload.Fields {
			out[k] = v
		}
	} else {
		out["type"] = "unknown"
		out["message"] = r.Payload.Raw
	}
	out[SenderField] = r.Sender
	out[ReceivedAtField] = r.ReceivedAt
	return out
}

// MarshalJSON serializes the flattened form.
func (r FeedbackRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
