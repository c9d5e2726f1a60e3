package classifier

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbodj/wahook/internal/domain/models"
)

func TestClassifyRejectsForeignObject(t *testing.T) {
	payload := envelope(valueWith(models.InboundMessage{
		From: "628", ID: "wamid.1", Type: "text", Text: &models.TextContent{Body: "hi"},
	}))
	payload.Object = "page"

	rec := Classify(payload)

	assert.Equal(t, models.RecordUnmatched, rec.Type)
}

func TestClassifyUnmatchedEnvelopes(t *testing.T) {
	tests := []struct {
		name    string
		payload models.WebhookPayload
	}{
		{name: "zero payload", payload: models.WebhookPayload{}},
		{name: "empty entry", payload: models.WebhookPayload{Object: models.ObjectBusinessAccount}},
		{
			name: "entry without changes",
			payload: models.WebhookPayload{
				Object: models.ObjectBusinessAccount,
				Entry:  []models.WebhookEntry{{ID: "entry-1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Classify(tt.payload)
			assert.Equal(t, models.RecordUnmatched, rec.Type)
			assert.False(t, rec.IsMessage())
			assert.False(t, rec.IsNotification())
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	payload := envelope(valueWith(models.InboundMessage{
		From:      "628",
		ID:        "wamid.1",
		Timestamp: "1000",
		Type:      "text",
		Text:      &models.TextContent{Body: "hello"},
		Context:   &models.MessageContext{ID: "wamid.0"},
	}))

	first, err := json.Marshal(Classify(payload))
	require.NoError(t, err)
	second, err := json.Marshal(Classify(payload))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// The end-to-end shape from a real reaction delivery, starting from raw JSON.
func TestClassifyJSONReaction(t *testing.T) {
	raw := []byte(`{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"value": {
					"messaging_product": "whatsapp",
					"metadata": {"phone_number_id": "1", "display_phone_number": "+1"},
					"contacts": [{"profile": {"name": "Alice"}}],
					"messages": [{
						"type": "reaction",
						"from": "628",
						"timestamp": "1000",
						"id": "wamid.1",
						"reaction": {"emoji": "👍", "message_id": "wamid.0"}
					}]
				}
			}]
		}]
	}`)

	rec, err := ClassifyJSON(raw)
	require.NoError(t, err)

	require.Equal(t, models.RecordReaction, rec.Type)
	assert.Equal(t, "628", rec.From)
	assert.Equal(t, "1000", rec.Timestamp)
	assert.Equal(t, "Alice", rec.SenderName)
	assert.Equal(t, "wamid.1", rec.MessageID)
	assert.Equal(t, "1", rec.PhoneID)
	assert.Equal(t, "+1", rec.DisplayNumber)
	require.NotNil(t, rec.Reaction)
	assert.Equal(t, "👍", rec.Reaction.Emoji)
	assert.Equal(t, "wamid.0", rec.Reaction.MessageID)
}

func TestClassifyJSONNonObject(t *testing.T) {
	for _, raw := range []string{`[1,2,3]`, `"hello"`, `42`, `not json at all`} {
		rec, err := ClassifyJSON([]byte(raw))
		require.ErrorIs(t, err, ErrNotObject, "input %q", raw)
		assert.Equal(t, models.RecordUnmatched, rec.Type)
	}
}

func TestClassifyJSONObjectWithWrongShapes(t *testing.T) {
	// An object is never a caller error; the record just comes back unmatched.
	rec, err := ClassifyJSON([]byte(`{"object": 12, "entry": "nope"}`))
	require.NoError(t, err)
	assert.Equal(t, models.RecordUnmatched, rec.Type)
}

// A malformed messages branch must only disable the message detectors; a
// well-formed statuses branch in the same delivery still classifies.
func TestClassifyJSONMalformedBranchFallsThrough(t *testing.T) {
	raw := []byte(`{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"value": {
					"messaging_product": "whatsapp",
					"messages": "bogus",
					"statuses": [{
						"id": "wamid.20",
						"status": "read",
						"timestamp": "3000",
						"recipient_id": "628"
					}]
				}
			}]
		}]
	}`)

	rec, err := ClassifyJSON(raw)
	require.NoError(t, err)

	require.Equal(t, models.RecordStatusUpdate, rec.Type)
	assert.Equal(t, "wamid.20", rec.ID)
	assert.Equal(t, "read", rec.Status)
}

func TestValidEnvelope(t *testing.T) {
	assert.True(t, ValidEnvelope(models.WebhookPayload{
		Object: models.ObjectBusinessAccount,
		Entry:  []models.WebhookEntry{{}},
	}))
	assert.False(t, ValidEnvelope(models.WebhookPayload{Object: models.ObjectBusinessAccount}))
	assert.False(t, ValidEnvelope(models.WebhookPayload{
		Object: "instagram",
		Entry:  []models.WebhookEntry{{}},
	}))
}
