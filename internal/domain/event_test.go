package domain_test

import (
	"encoding/json"
	"testing"

	"feedbackdigest/internal/domain"
)

func TestFilterMatches(t *testing.T) {
	ev := domain.Event{
		ID:        "e1",
		Kind:      domain.KindGiftWrap,
		CreatedAt: 1000,
		Tags:      [][]string{{"p", "aa"}, {"e", "ignored"}},
	}

	cases := []struct {
		name   string
		filter domain.Filter
		want   bool
	}{
		{"empty filter", domain.Filter{}, true},
		{"kind match", domain.Filter{Kinds: []int{domain.KindGiftWrap}}, true},
		{"kind mismatch", domain.Filter{Kinds: []int{domain.KindSeal}}, false},
		{"since before", domain.Filter{Since: 999}, true},
		{"since after", domain.Filter{Since: 1001}, false},
		{"p tag match", domain.Filter{PTags: []string{"aa"}}, true},
		{"p tag mismatch", domain.Filter{PTags: []string{"bb"}}, false},
		{"all together", domain.Filter{Kinds: []int{domain.KindGiftWrap}, PTags: []string{"aa"}, Since: 500}, true},
	}
	for _, tc := range cases {
		if got := tc.filter.Matches(ev); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilterJSONUsesPTagKey(t *testing.T) {
	b, err := json.Marshal(domain.Filter{Kinds: []int{1059}, PTags: []string{"aa"}, Since: 7})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"kinds":[1059],"#p":["aa"],"since":7}`
	if string(b) != want {
		t.Fatalf("got %s want %s", b, want)
	}
}

func TestFeedbackRecordMarshalInjectsFields(t *testing.T) {
	rec := domain.FeedbackRecord{
		Payload:    domain.Payload{Fields: map[string]any{"type": "bug", "message": "m"}},
		Sender:     "ff",
		ReceivedAt: 42,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["type"] != "bug" || got[domain.SenderField] != "ff" || got[domain.ReceivedAtField] != float64(42) {
		t.Fatalf("unexpected flattened record: %v", got)
	}
}
