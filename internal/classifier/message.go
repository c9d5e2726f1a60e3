package classifier

import "github.com/mbodj/wahook/internal/domain/models"

// messageDetector pairs a predicate over messages[0] with the extractor that
// projects the match into a record.
type messageDetector struct {
	match   func(msg models.InboundMessage) bool
	extract func(value models.WebhookValue, msg models.InboundMessage) models.Record
}

// messageDetectors is the fixed priority table for the inbound-message family.
// Order matters: a text message may or may not carry an identity object, and
// contact/location payloads arrive without a type tag at all.
var messageDetectors = []messageDetector{
	{
		match: func(msg models.InboundMessage) bool {
			return msg.Type == "text" && msg.Identity != nil
		},
		extract: extractTextWithSecurityNotification,
	},
	{
		match:   func(msg models.InboundMessage) bool { return msg.Type == "text" },
		extract: extractText,
	},
	{
		match:   func(msg models.InboundMessage) bool { return msg.Type == "reaction" },
		extract: extractReaction,
	},
	{
		match:   func(msg models.InboundMessage) bool { return msg.Type == "image" },
		extract: extractImage,
	},
	{
		match:   func(msg models.InboundMessage) bool { return msg.Type == "sticker" },
		extract: extractSticker,
	},
	{
		match: func(msg models.InboundMessage) bool {
			return msg.Type == "" && len(msg.Contacts) > 0
		},
		extract: extractContact,
	},
	{
		match: func(msg models.InboundMessage) bool {
			return msg.Type == "" && msg.Location != nil
		},
		extract: extractLocation,
	},
}

// classifyMessage routes messages[0] through the priority table. The second
// return is false when no detector fires, letting the dispatcher fall back to
// the notification classifier.
func classifyMessage(value models.WebhookValue) (models.Record, bool) {
	if len(value.Messages) == 0 {
		return models.Record{}, false
	}

	msg := value.Messages[0]
	for _, det := range messageDetectors {
		if det.match(msg) {
			return det.extract(value, msg), true
		}
	}

	return models.Record{}, false
}

// messageCommon fills the fields every message-family record carries.
func messageCommon(recordType models.RecordType, value models.WebhookValue, msg models.InboundMessage) models.Record {
	name, waID := senderIdentity(value)
	return models.Record{
		Type:       recordType,
		From:       msg.From,
		Timestamp:  msg.Timestamp,
		SenderName: name,
		WaID:       waID,
		MessageID:  msg.ID,
	}
}

func extractText(value models.WebhookValue, msg models.InboundMessage) models.Record {
	rec := messageCommon(models.RecordText, value, msg)
	if msg.Text != nil {
		rec.Text = msg.Text.Body
	}

	forwarded := msg.Context != nil && msg.Context.Forwarded
	quoted := msg.Context != nil
	rec.Forwarded = &forwarded
	rec.Quoted = &quoted
	rec.Context = msg.Context
	return rec
}

func extractTextWithSecurityNotification(value models.WebhookValue, msg models.InboundMessage) models.Record {
	rec := messageCommon(models.RecordTextWithSecurityNotification, value, msg)
	if msg.Text != nil {
		rec.Text = msg.Text.Body
	}
	rec.Identity = msg.Identity
	return rec
}

func extractReaction(value models.WebhookValue, msg models.InboundMessage) models.Record {
	rec := messageCommon(models.RecordReaction, value, msg)
	rec.Reaction = msg.Reaction
	return rec
}

func extractImage(value models.WebhookValue, msg models.InboundMessage) models.Record {
	rec := messageCommon(models.RecordImage, value, msg)
	rec.Image = msg.Image
	return rec
}

func extractSticker(value models.WebhookValue, msg models.InboundMessage) models.Record {
	rec := messageCommon(models.RecordSticker, value, msg)
	rec.Sticker = msg.Sticker
	return rec
}

func extractContact(value models.WebhookValue, msg models.InboundMessage) models.Record {
	rec := messageCommon(models.RecordContact, value, msg)
	rec.Contact = &msg.Contacts[0]
	return rec
}

func extractLocation(value models.WebhookValue, msg models.InboundMessage) models.Record {
	rec := messageCommon(models.RecordLocation, value, msg)
	rec.Location = msg.Location
	return rec
}
