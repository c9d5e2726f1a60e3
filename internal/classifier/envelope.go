package classifier

import "github.com/mbodj/wahook/internal/domain/models"

// ValidEnvelope reports whether the payload has the minimal top-level shape of
// a Cloud API delivery: the business-account object marker and at least one
// entry. Anything else is unmatched territory, never an error.
func ValidEnvelope(payload models.WebhookPayload) bool {
	return payload.Object == models.ObjectBusinessAccount && len(payload.Entry) > 0
}

// changeValue returns the value all detectors read from. Only entry[0] and
// changes[0] are consulted; the platform permits batching but deliveries have
// one change in practice, and this single-item assumption keeps every detector
// on the same canonical input.
func changeValue(payload models.WebhookPayload) (models.WebhookValue, bool) {
	if !ValidEnvelope(payload) {
		return models.WebhookValue{}, false
	}

	entry := payload.Entry[0]
	if len(entry.Changes) == 0 {
		return models.WebhookValue{}, false
	}

	return entry.Changes[0].Value, true
}

// senderIdentity resolves the display name and account id of the sender from
// the contacts branch, tolerating its absence.
func senderIdentity(value models.WebhookValue) (name, waID string) {
	if len(value.Contacts) == 0 {
		return "", ""
	}
	return value.Contacts[0].Profile.Name, value.Contacts[0].WaID
}
