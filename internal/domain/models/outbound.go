package models

// OutboundMessageRequest represents requests to send a message manually via the API.
// When ReplyTo carries a message id the text is sent as a reply to that message.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
	ReplyTo    string `json:"reply_to,omitempty"`
}
