package models

import "encoding/json"

const (
	// ObjectBusinessAccount is the only top-level object this engine recognizes.
	ObjectBusinessAccount = "whatsapp_business_account"

	// OriginBusinessInitiated marks conversations opened by the business side.
	OriginBusinessInitiated = "business_initiated"

	// ErrCodeMessageDeleted is the Cloud API error code attached to callbacks
	// for messages the user deleted before delivery.
	ErrCodeMessageDeleted = 131051
)

// WebhookPayload mirrors the structure sent by Meta's WhatsApp Cloud API webhook callbacks.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry represents one entry payload within the webhook body.
type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

// WebhookChange captures the actual notification contents.
type WebhookChange struct {
	Value WebhookValue `json:"value"`
	Field string       `json:"field"`
}

// WebhookValue contains message metadata, contacts, inbound messages and
// status updates. Each branch is decoded independently so a wrongly shaped
// branch only disables the detectors that read it instead of failing the
// whole delivery.
type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Metadata         Metadata         `json:"metadata"`
	Contacts         []Contact        `json:"contacts,omitempty"`
	Messages         []InboundMessage `json:"messages,omitempty"`
	Statuses         []StatusUpdate   `json:"statuses,omitempty"`
	Errors           []ErrorDetail    `json:"errors,omitempty"`
}

// UnmarshalJSON decodes every branch on its own and drops the ones that do
// not match their expected shape.
func (v *WebhookValue) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	decodeField(fields, "messaging_product", &v.MessagingProduct)
	decodeField(fields, "metadata", &v.Metadata)
	decodeField(fields, "contacts", &v.Contacts)
	decodeField(fields, "messages", &v.Messages)
	decodeField(fields, "statuses", &v.Statuses)
	decodeField(fields, "errors", &v.Errors)
	return nil
}

// Metadata contains WhatsApp phone identifiers for the business account.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact represents the WhatsApp user initiating the conversation.
type Contact struct {
	Profile ContactProfile `json:"profile"`
	WaID    string         `json:"wa_id"`
}

// ContactProfile contains the human-friendly contact name.
type ContactProfile struct {
	Name string `json:"name"`
}

// InboundMessage aggregates every inbound message shape the engine can
// classify. Variant payloads are pointers; absent ones stay nil.
type InboundMessage struct {
	From      string           `json:"from"`
	ID        string           `json:"id"`
	Timestamp string           `json:"timestamp"`
	Type      string           `json:"type,omitempty"`
	Text      *TextContent     `json:"text,omitempty"`
	Identity  *IdentityNotice  `json:"identity,omitempty"`
	Reaction  *ReactionContent `json:"reaction,omitempty"`
	Image     *MediaContent    `json:"image,omitempty"`
	Sticker   *StickerContent  `json:"sticker,omitempty"`
	Contacts  []SharedContact  `json:"contacts,omitempty"`
	Location  *LocationContent `json:"location,omitempty"`
	Order     *OrderContent    `json:"order,omitempty"`
	Button    *ButtonContent   `json:"button,omitempty"`
	Context   *MessageContext  `json:"context,omitempty"`
	Errors    []ErrorDetail    `json:"errors,omitempty"`
}

// UnmarshalJSON applies the same per-field tolerance as WebhookValue: a
// variant payload of the wrong shape is dropped, the rest of the message
// still classifies.
func (m *InboundMessage) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	decodeField(fields, "from", &m.From)
	decodeField(fields, "id", &m.ID)
	decodeField(fields, "timestamp", &m.Timestamp)
	decodeField(fields, "type", &m.Type)
	decodeField(fields, "text", &m.Text)
	decodeField(fields, "identity", &m.Identity)
	decodeField(fields, "reaction", &m.Reaction)
	decodeField(fields, "image", &m.Image)
	decodeField(fields, "sticker", &m.Sticker)
	decodeField(fields, "contacts", &m.Contacts)
	decodeField(fields, "location", &m.Location)
	decodeField(fields, "order", &m.Order)
	decodeField(fields, "button", &m.Button)
	decodeField(fields, "context", &m.Context)
	decodeField(fields, "errors", &m.Errors)
	return nil
}

// TextContent contains a text message body.
type TextContent struct {
	Body string `json:"body"`
}

// IdentityNotice accompanies text messages flagged with a security notification.
type IdentityNotice struct {
	Acknowledged     bool   `json:"acknowledged"`
	CreatedTimestamp string `json:"created_timestamp"`
	Hash             string `json:"hash"`
}

// ReactionContent references the reacted-to message and the emoji used.
type ReactionContent struct {
	Emoji     string `json:"emoji"`
	MessageID string `json:"message_id"`
}

// MediaContent represents media attachment metadata.
type MediaContent struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Sha256   string `json:"sha256"`
	Caption  string `json:"caption,omitempty"`
}

// StickerContent represents a sticker attachment.
type StickerContent struct {
	ID       string `json:"id"`
	Animated bool   `json:"animated"`
	MimeType string `json:"mime_type"`
	Sha256   string `json:"sha256"`
}

// SharedContact is a contact card forwarded inside a message.
type SharedContact struct {
	Name   *SharedContactName    `json:"name,omitempty"`
	Phones []SharedContactPhone  `json:"phones,omitempty"`
	Emails []SharedContactEmail  `json:"emails,omitempty"`
	Org    *SharedContactCompany `json:"org,omitempty"`
}

// SharedContactName holds the card's name fields.
type SharedContactName struct {
	FormattedName string `json:"formatted_name"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
}

// SharedContactPhone is one phone entry on a contact card.
type SharedContactPhone struct {
	Phone string `json:"phone"`
	WaID  string `json:"wa_id,omitempty"`
	Type  string `json:"type,omitempty"`
}

// SharedContactEmail is one email entry on a contact card.
type SharedContactEmail struct {
	Email string `json:"email"`
	Type  string `json:"type,omitempty"`
}

// SharedContactCompany is the organisation block on a contact card.
type SharedContactCompany struct {
	Company string `json:"company"`
}

// LocationContent carries a shared location.
type LocationContent struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// OrderContent carries a catalog order placed by the user.
type OrderContent struct {
	CatalogID    string      `json:"catalog_id"`
	ProductItems []OrderItem `json:"product_items"`
	Text         string      `json:"text,omitempty"`
}

// OrderItem is one line item of an order.
type OrderItem struct {
	ProductRetailerID string  `json:"product_retailer_id"`
	Quantity          int     `json:"quantity"`
	ItemPrice         float64 `json:"item_price"`
	Currency          string  `json:"currency"`
}

// ButtonContent is a quick-reply button click payload.
type ButtonContent struct {
	Text    string `json:"text"`
	Payload string `json:"payload"`
}

// MessageContext links a message to the one it replies to or forwards.
type MessageContext struct {
	From      string `json:"from,omitempty"`
	ID        string `json:"id,omitempty"`
	Forwarded bool   `json:"forwarded,omitempty"`
}

// StatusUpdate represents delivery/read receipts coming from WhatsApp.
type StatusUpdate struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	Timestamp    string        `json:"timestamp"`
	RecipientID  string        `json:"recipient_id"`
	Conversation *Conversation `json:"conversation,omitempty"`
	Pricing      *Pricing      `json:"pricing,omitempty"`
	Errors       []ErrorDetail `json:"errors,omitempty"`
}

// Conversation describes the billing conversation a status belongs to.
type Conversation struct {
	ID                  string             `json:"id"`
	ExpirationTimestamp string             `json:"expiration_timestamp,omitempty"`
	Origin              ConversationOrigin `json:"origin"`
}

// ConversationOrigin carries who opened the conversation.
type ConversationOrigin struct {
	Type string `json:"type"`
}

// Pricing describes how a conversation is billed.
type Pricing struct {
	PricingModel string `json:"pricing_model"`
	Billable     bool   `json:"billable"`
	Category     string `json:"category"`
}

// ErrorDetail exposes errors attached to messages or statuses by Meta.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	// Shape mismatches are deliberately swallowed; the field keeps its zero
	// value and the detectors that depend on it simply do not fire.
	_ = json.Unmarshal(raw, dst)
}
