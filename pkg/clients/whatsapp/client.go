package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mbodj/wahook/internal/config"
)

// Client exposes the WhatsApp Cloud API send operations used by the application.
type Client interface {
	SendTextMessage(ctx context.Context, req SendTextMessageRequest) (*SendMessageResponse, error)
	SendReplyToTextMessage(ctx context.Context, req SendReplyRequest) (*SendMessageResponse, error)
	SendReactionMessage(ctx context.Context, to, messageID, emoji string) (*SendMessageResponse, error)
	SendImageMessageByID(ctx context.Context, to, mediaID, caption string) (*SendMessageResponse, error)
	SendImageMessageByURL(ctx context.Context, to, imageURL, caption string) (*SendMessageResponse, error)
	SendAudioMessageByURL(ctx context.Context, to, audioURL string) (*SendMessageResponse, error)
	SendDocumentMessageByURL(ctx context.Context, to, documentURL, caption string) (*SendMessageResponse, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient    *resty.Client
	phoneNumberID string
}

// NewClient builds a WhatsApp API client using the provided configuration values.
func NewClient(cfg config.WhatsAppConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AccessToken)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient:    restyClient,
		phoneNumberID: cfg.PhoneNumberID,
	}
}

// SendTextMessageRequest represents a simplified text message payload.
type SendTextMessageRequest struct {
	To         string
	Body       string
	PreviewURL bool
}

// SendReplyRequest replies to a previous message by id.
type SendReplyRequest struct {
	To         string
	MessageID  string
	Body       string
	PreviewURL bool
}

// SendMessageResponse mirrors the successful response from Meta.
type SendMessageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// apiError represents a WhatsApp Cloud API error payload.
type apiError struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorData    any    `json:"error_data"`
		ErrorSubcode int    `json:"error_subcode"`
		FBTraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

func (c *APIClient) SendTextMessage(ctx context.Context, req SendTextMessageRequest) (*SendMessageResponse, error) {
	return c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                req.To,
		"type":              "text",
		"text": map[string]any{
			"body":        req.Body,
			"preview_url": req.PreviewURL,
		},
	})
}

func (c *APIClient) SendReplyToTextMessage(ctx context.Context, req SendReplyRequest) (*SendMessageResponse, error) {
	return c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                req.To,
		"context": map[string]any{
			"message_id": req.MessageID,
		},
		"type": "text",
		"text": map[string]any{
			"body":        req.Body,
			"preview_url": req.PreviewURL,
		},
	})
}

func (c *APIClient) SendReactionMessage(ctx context.Context, to, messageID, emoji string) (*SendMessageResponse, error) {
	return c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "reaction",
		"reaction": map[string]any{
			"message_id": messageID,
			"emoji":      emoji,
		},
	})
}

func (c *APIClient) SendImageMessageByID(ctx context.Context, to, mediaID, caption string) (*SendMessageResponse, error) {
	return c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "image",
		"image": map[string]any{
			"id":      mediaID,
			"caption": caption,
		},
	})
}

func (c *APIClient) SendImageMessageByURL(ctx context.Context, to, imageURL, caption string) (*SendMessageResponse, error) {
	return c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "image",
		"image": map[string]any{
			"link":    imageURL,
			"caption": caption,
		},
	})
}

func (c *APIClient) SendAudioMessageByURL(ctx context.Context, to, audioURL string) (*SendMessageResponse, error) {
	return c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "audio",
		"audio": map[string]any{
			"link": audioURL,
		},
	})
}

func (c *APIClient) SendDocumentMessageByURL(ctx context.Context, to, documentURL, caption string) (*SendMessageResponse, error) {
	return c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "document",
		"document": map[string]any{
			"link":    documentURL,
			"caption": caption,
		},
	})
}

// post delivers one payload to the phone number's /messages endpoint and
// normalizes Cloud API error envelopes.
func (c *APIClient) post(ctx context.Context, payload map[string]any) (*SendMessageResponse, error) {
	result := new(SendMessageResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("%s/messages", c.phoneNumberID))
	if err != nil {
		return nil, fmt.Errorf("send whatsapp message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		code := resp.StatusCode()
		if apiErr != nil {
			message = apiErr.Error.Message
			if apiErr.Error.Code != 0 {
				code = apiErr.Error.Code
			}
		}
		return nil, fmt.Errorf("whatsapp api error: code=%d, message=%s", code, message)
	}

	return result, nil
}
