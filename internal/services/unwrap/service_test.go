package unwrap_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"feedbackdigest/internal/crypto"
	"feedbackdigest/internal/domain"
	"feedbackdigest/internal/services/unwrap"
)

// wrap builds a full gift wrap for recipient: a rumor from sender carrying
// content, sealed by sender, wrapped by a fresh ephemeral key.
func wrap(t *testing.T, recipient, sender domain.KeyPair, content string, createdAt int64) domain.Event {
	t.Helper()

	rumor := domain.Event{
		ID:        "rumor-id",
		PubKey:    sender.Public.Hex(),
		CreatedAt: createdAt,
		Kind:      14,
		Content:   content,
	}
	rumorJSON, err := json.Marshal(rumor)
	require.NoError(t, err)

	sealKey, err := crypto.NewConversationKey(sender.Secret, recipient.Public)
	require.NoError(t, err)
	sealContent, err := crypto.Encrypt(string(rumorJSON), sealKey)
	require.NoError(t, err)

	seal := domain.Event{
		ID:        "seal-id",
		PubKey:    sender.Public.Hex(),
		CreatedAt: createdAt,
		Kind:      domain.KindSeal,
		Content:   sealContent,
		Sig:       "seal-sig",
	}
	sealJSON, err := json.Marshal(seal)
	require.NoError(t, err)

	ephemeral, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	wrapKey, err := crypto.NewConversationKey(ephemeral.Secret, recipient.Public)
	require.NoError(t, err)
	wrapContent, err := crypto.Encrypt(string(sealJSON), wrapKey)
	require.NoError(t, err)

	return domain.Event{
		ID:        "wrap-" + ephemeral.Public.Hex()[:8],
		PubKey:    ephemeral.Public.Hex(),
		CreatedAt: createdAt,
		Kind:      domain.KindGiftWrap,
		Tags:      [][]string{{"p", recipient.Public.Hex()}},
		Content:   wrapContent,
		Sig:       "wrap-sig",
	}
}

func newService(t *testing.T) (*unwrap.Service, domain.KeyPair, domain.KeyPair) {
	t.Helper()
	recipient, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	sender, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	return unwrap.New(recipient, zerolog.Nop()), recipient, sender
}

func TestUnwrapStructuredFeedback(t *testing.T) {
	svc, recipient, sender := newService(t)
	createdAt := time.Now().Unix()
	ev := wrap(t, recipient, sender, `{"type":"bug","message":"hole 7 disappears","severity":"high"}`, createdAt)

	rec, err := svc.Unwrap(ev)
	require.NoError(t, err)
	require.True(t, rec.Payload.Structured())
	require.Equal(t, "bug", rec.Type())
	require.Equal(t, "hole 7 disappears", rec.Message())

	// The sender is the seal's key, never the ephemeral wrapping key.
	require.Equal(t, sender.Public.Hex(), rec.Sender)
	require.NotEqual(t, ev.PubKey, rec.Sender)
	require.Equal(t, createdAt, rec.ReceivedAt)

	flat := rec.Map()
	require.Equal(t, sender.Public.Hex(), flat[domain.SenderField])
	require.Equal(t, createdAt, flat[domain.ReceivedAtField])
}

func TestUnwrapFallsBackToRawText(t *testing.T) {
	svc, recipient, sender := newService(t)
	ev := wrap(t, recipient, sender, "just some free-form words", time.Now().Unix())

	rec, err := svc.Unwrap(ev)
	require.NoError(t, err)
	require.False(t, rec.Payload.Structured())
	require.Equal(t, "unknown", rec.Type())
	require.Equal(t, "just some free-form words", rec.Message())

	flat := rec.Map()
	require.Equal(t, "unknown", flat["type"])
	require.Equal(t, "just some free-form words", flat["message"])
}

func TestUnwrapNonObjectJSONIsRaw(t *testing.T) {
	svc, recipient, sender := newService(t)
	ev := wrap(t, recipient, sender, `[1,2,3]`, time.Now().Unix())

	rec, err := svc.Unwrap(ev)
	require.NoError(t, err)
	require.False(t, rec.Payload.Structured())
	require.Equal(t, `[1,2,3]`, rec.Message())
}

func TestUnwrapWrongRecipientFails(t *testing.T) {
	svc, _, _ := newService(t)
	other, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	sender, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	ev := wrap(t, other, sender, `{"type":"bug"}`, time.Now().Unix())
	_, err = svc.Unwrap(ev)
	require.Error(t, err)
}

func TestUnwrapAllSkipsCorruptEvents(t *testing.T) {
	svc, recipient, sender := newService(t)
	now := time.Now().Unix()

	good1 := wrap(t, recipient, sender, `{"type":"bug","message":"first"}`, now)
	good2 := wrap(t, recipient, sender, `{"type":"feature","message":"second"}`, now)
	garbage := good1
	garbage.ID = "garbage"
	garbage.Content = "bm90IGEgcmVhbCBlbnZlbG9wZQ==" // valid base64, not a valid envelope
	badKey := wrap(t, recipient, sender, `{"type":"bug"}`, now)
	badKey.PubKey = "zz-not-hex"

	records := svc.UnwrapAll([]domain.Event{good1, garbage, good2, badKey})
	require.Len(t, records, 2)
	require.Equal(t, "first", records[0].Message())
	require.Equal(t, "second", records[1].Message())
}
