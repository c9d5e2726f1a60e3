package models

// RecordType is the stable discriminant downstream consumers switch on.
type RecordType string

// Message-family labels.
const (
	RecordText                         RecordType = "text"
	RecordTextWithSecurityNotification RecordType = "text_with_security_notification"
	RecordReaction                     RecordType = "reaction"
	RecordImage                        RecordType = "image"
	RecordSticker                      RecordType = "sticker"
	RecordContact                      RecordType = "contact"
	RecordLocation                     RecordType = "location"
)

// Notification-family labels.
const (
	RecordStatusUpdate                 RecordType = "status_update"
	RecordQuickReplyButtonClick        RecordType = "quick_reply_button_click"
	RecordUserInitiatedMessageSent     RecordType = "user_initiated_message_sent"
	RecordBusinessInitiatedMessageSent RecordType = "business_initiated_message_sent"
	RecordMessageDeleted               RecordType = "message_deleted"
	RecordReceivedOrderMessage         RecordType = "received_order_message"

	// RecordUnknown is the notification classifier's payload-free fallback.
	RecordUnknown RecordType = "unknown"
	// RecordUnmatched signals the envelope itself was not recognized.
	RecordUnmatched RecordType = "unmatched"
)

// Record is the engine's only output: one classified webhook event, flattened
// to the fields relevant to its Type. Exactly one variant is ever produced per
// call and absent optional input fields surface as zero values, never as a
// failure.
type Record struct {
	Type RecordType `json:"type"`

	// Common message-family fields.
	From          string `json:"from,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
	SenderName    string `json:"sender_name,omitempty"`
	WaID          string `json:"wa_id,omitempty"`
	MessageID     string `json:"message_id,omitempty"`
	PhoneID       string `json:"phone_id,omitempty"`
	DisplayNumber string `json:"display_number,omitempty"`

	// Text variants.
	Text      string          `json:"text,omitempty"`
	Forwarded *bool           `json:"forwarded,omitempty"`
	Quoted    *bool           `json:"quoted,omitempty"`
	Context   *MessageContext `json:"context,omitempty"`
	Identity  *IdentityNotice `json:"identity,omitempty"`

	// Media and presence-keyed variants.
	Reaction *ReactionContent `json:"reaction,omitempty"`
	Image    *MediaContent    `json:"image,omitempty"`
	Sticker  *StickerContent  `json:"sticker,omitempty"`
	Contact  *SharedContact   `json:"contact,omitempty"`
	Location *LocationContent `json:"location,omitempty"`

	// Notification-family fields.
	ID                  string         `json:"id,omitempty"`
	Status              string         `json:"status,omitempty"`
	RecipientID         string         `json:"recipient_id,omitempty"`
	MessageType         string         `json:"message_type,omitempty"`
	Button              *ButtonContent `json:"button,omitempty"`
	Conversation        *Conversation  `json:"conversation,omitempty"`
	ConversationID      string         `json:"conversation_id,omitempty"`
	ExpirationTimestamp string         `json:"expiration_timestamp,omitempty"`
	Pricing             *Pricing       `json:"pricing,omitempty"`
	Error               *ErrorDetail   `json:"error,omitempty"`
	Order               *OrderContent  `json:"order,omitempty"`
}

// IsMessage reports whether the record belongs to the inbound-message family.
func (r Record) IsMessage() bool {
	switch r.Type {
	case RecordText, RecordTextWithSecurityNotification, RecordReaction,
		RecordImage, RecordSticker, RecordContact, RecordLocation:
		return true
	}
	return false
}

// IsNotification reports whether the record belongs to the notification family.
func (r Record) IsNotification() bool {
	switch r.Type {
	case RecordStatusUpdate, RecordQuickReplyButtonClick, RecordUserInitiatedMessageSent,
		RecordBusinessInitiatedMessageSent, RecordMessageDeleted, RecordReceivedOrderMessage,
		RecordUnknown:
		return true
	}
	return false
}
