// Package classifier normalizes WhatsApp Cloud API webhook deliveries into a
// single tagged record per event. All functions are pure and stateless; the
// package is safe to call concurrently from any number of request handlers.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mbodj/wahook/internal/domain/models"
)

// ErrNotObject is returned by ClassifyJSON when the raw input is not a JSON
// object at all. That is a contract violation at the boundary; every other
// malformed shape degrades to an unmatched record instead.
var ErrNotObject = errors.New("webhook payload is not a JSON object")

// Classify is the engine's entry point. It validates the envelope, tries the
// message classifier first and falls back to the notification classifier. It
// always returns a tagged record: unmatched for unrecognized envelopes,
// unknown when the notification table exhausts. It never panics for any
// combination of present or absent optional fields.
func Classify(payload models.WebhookPayload) models.Record {
	value, ok := changeValue(payload)
	if !ok {
		return models.Record{Type: models.RecordUnmatched}
	}

	if rec, ok := classifyMessage(value); ok {
		// Metadata enrichment happens once here, for every message-family
		// record regardless of subtype.
		rec.PhoneID = value.Metadata.PhoneNumberID
		rec.DisplayNumber = value.Metadata.DisplayPhoneNumber
		return rec
	}

	return classifyNotification(value)
}

// ClassifyJSON classifies a raw JSON document. Callers that already hold a
// decoded payload should use Classify directly. The returned record is always
// tagged, even alongside a non-nil error.
func ClassifyJSON(raw []byte) (models.Record, error) {
	var payload models.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		var probe map[string]json.RawMessage
		if probeErr := json.Unmarshal(raw, &probe); probeErr != nil {
			return models.Record{Type: models.RecordUnmatched}, fmt.Errorf("%w: %v", ErrNotObject, err)
		}
		// An object whose interior does not bind is a data-shape problem,
		// not a caller bug.
		return models.Record{Type: models.RecordUnmatched}, nil
	}

	return Classify(payload), nil
}
