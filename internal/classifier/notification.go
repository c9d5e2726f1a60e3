package classifier

import "github.com/mbodj/wahook/internal/domain/models"

// notificationDetector recognizes one notification kind. It returns false when
// its predicate does not fire so the next detector gets a chance.
type notificationDetector func(value models.WebhookValue) (models.Record, bool)

// notificationDetectors is the fixed priority table for the notification
// family. First success wins. All detectors read the same value object; the
// plain status-update detector steps aside when a conversation is attached so
// the conversation-aware detectors below stay reachable.
var notificationDetectors = []notificationDetector{
	detectStatusUpdate,
	detectQuickReplyButtonClick,
	detectUserInitiatedMessageSent,
	detectBusinessInitiatedMessageSent,
	detectMessageDeleted,
	detectReceivedOrderMessage,
}

// classifyNotification runs the priority table and falls back to the
// payload-free unknown record, so its caller always gets a tagged value.
func classifyNotification(value models.WebhookValue) models.Record {
	for _, det := range notificationDetectors {
		if rec, ok := det(value); ok {
			return rec
		}
	}
	return models.Record{Type: models.RecordUnknown}
}

func detectStatusUpdate(value models.WebhookValue) (models.Record, bool) {
	if len(value.Statuses) == 0 {
		return models.Record{}, false
	}

	status := value.Statuses[0]
	if status.Conversation != nil {
		return models.Record{}, false
	}

	return models.Record{
		Type:        models.RecordStatusUpdate,
		ID:          status.ID,
		Status:      status.Status,
		Timestamp:   status.Timestamp,
		RecipientID: status.RecipientID,
	}, true
}

func detectQuickReplyButtonClick(value models.WebhookValue) (models.Record, bool) {
	if len(value.Messages) == 0 {
		return models.Record{}, false
	}

	msg := value.Messages[0]
	if msg.Button == nil {
		return models.Record{}, false
	}

	return models.Record{
		Type:        models.RecordQuickReplyButtonClick,
		From:        msg.From,
		ID:          msg.ID,
		Timestamp:   msg.Timestamp,
		MessageType: msg.Type,
		Button:      msg.Button,
		Context:     msg.Context,
	}, true
}

func detectUserInitiatedMessageSent(value models.WebhookValue) (models.Record, bool) {
	status, ok := conversationStatus(value)
	if !ok || status.Conversation.Origin.Type == models.OriginBusinessInitiated {
		return models.Record{}, false
	}

	return models.Record{
		Type:         models.RecordUserInitiatedMessageSent,
		ID:           status.ID,
		Status:       status.Status,
		Timestamp:    status.Timestamp,
		RecipientID:  status.RecipientID,
		Conversation: status.Conversation,
		Pricing:      status.Pricing,
	}, true
}

func detectBusinessInitiatedMessageSent(value models.WebhookValue) (models.Record, bool) {
	status, ok := conversationStatus(value)
	if !ok || status.Conversation.Origin.Type != models.OriginBusinessInitiated {
		return models.Record{}, false
	}

	return models.Record{
		Type:                models.RecordBusinessInitiatedMessageSent,
		ID:                  status.ID,
		Status:              status.Status,
		Timestamp:           status.Timestamp,
		RecipientID:         status.RecipientID,
		ConversationID:      status.Conversation.ID,
		ExpirationTimestamp: status.Conversation.ExpirationTimestamp,
		Pricing:             status.Pricing,
	}, true
}

func detectMessageDeleted(value models.WebhookValue) (models.Record, bool) {
	if len(value.Messages) == 0 {
		return models.Record{}, false
	}

	msg := value.Messages[0]
	if msg.Type != "unsupported" {
		return models.Record{}, false
	}

	deleted := deletedError(msg.Errors)
	if deleted == nil {
		return models.Record{}, false
	}

	name, waID := senderIdentity(value)
	return models.Record{
		Type:        models.RecordMessageDeleted,
		From:        msg.From,
		ID:          msg.ID,
		Timestamp:   msg.Timestamp,
		MessageType: msg.Type,
		Error:       deleted,
		SenderName:  name,
		WaID:        waID,
	}, true
}

func detectReceivedOrderMessage(value models.WebhookValue) (models.Record, bool) {
	if len(value.Messages) == 0 {
		return models.Record{}, false
	}

	msg := value.Messages[0]
	if msg.Type != "order" {
		return models.Record{}, false
	}

	name, waID := senderIdentity(value)
	rec := models.Record{
		Type:        models.RecordReceivedOrderMessage,
		From:        msg.From,
		ID:          msg.ID,
		Timestamp:   msg.Timestamp,
		MessageType: msg.Type,
		Context:     msg.Context,
		SenderName:  name,
		WaID:        waID,
	}

	if msg.Order != nil {
		items := make([]models.OrderItem, 0, len(msg.Order.ProductItems))
		for _, item := range msg.Order.ProductItems {
			items = append(items, models.OrderItem{
				ProductRetailerID: item.ProductRetailerID,
				Quantity:          item.Quantity,
				ItemPrice:         item.ItemPrice,
				Currency:          item.Currency,
			})
		}
		rec.Order = &models.OrderContent{
			CatalogID:    msg.Order.CatalogID,
			ProductItems: items,
			Text:         msg.Order.Text,
		}
	}

	return rec, true
}

// conversationStatus returns statuses[0] when it carries a conversation block.
func conversationStatus(value models.WebhookValue) (models.StatusUpdate, bool) {
	if len(value.Statuses) == 0 {
		return models.StatusUpdate{}, false
	}

	status := value.Statuses[0]
	if status.Conversation == nil {
		return models.StatusUpdate{}, false
	}
	return status, true
}

// deletedError finds the message-deleted error entry, if any.
func deletedError(errs []models.ErrorDetail) *models.ErrorDetail {
	for i := range errs {
		if errs[i].Code == models.ErrCodeMessageDeleted {
			return &errs[i]
		}
	}
	return nil
}
