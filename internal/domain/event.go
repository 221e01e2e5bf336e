package domain

// Event kinds used by the gift wrap scheme.
const (
	// KindSeal is the inner layer carrying the true sender identity.
	KindSeal = 13
	// KindGiftWrap is the outer layer, published under an ephemeral key.
	KindGiftWrap = 1059
)

// Event is the wire-format record relays store and forward. The same shape
// serves the outer gift wrap, the decrypted seal, and the innermost rumor
// (which simply has no signature).
type Event struct {
	ID        string     `json:"id"`
	PubKey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      int        `json:"kind"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	Sig       string     `json:"sig,omitempty"`
}

// TagValues returns the second element of every tag named name.
func (e Event) TagValues(name string) []string {
	var out []string
	for _, t := range e.Tags {
		if len(t) >= 2 && t[0] == name {
			out = append(out, t[1])
		}
	}
	return out
}

// Filter is the query sent to relays in a REQ frame.
type Filter struct {
	Kinds []int    `json:"kinds,omitempty"`
	PTags []string `json:"#p,omitempty"`
	Since int64    `json:"since,omitempty"`
	Limit int      `json:"limit,omitempty"`
}

// Matches reports whether an event satisfies the filter. Relays evaluate
// this server-side; the dev relay uses it directly.
func (f Filter) Matches(e Event) bool {
	if len(f.Kinds) > 0 {
		ok := false
		for _, k := range f.Kinds {
			if k == e.Kind {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Since > 0 && e.CreatedAt < f.Since {
		return false
	}
	if len(f.PTags) > 0 {
		ok := false
		for _, want := range f.PTags {
			for _, got := range e.TagValues("p") {
				if got == want {
					ok = true
					break
				}
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
