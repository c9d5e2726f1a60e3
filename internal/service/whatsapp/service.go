package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mbodj/wahook/internal/classifier"
	"github.com/mbodj/wahook/internal/config"
	"github.com/mbodj/wahook/internal/domain/models"
	client "github.com/mbodj/wahook/pkg/clients/whatsapp"
)

// RecordHandler receives every classified webhook record. Handlers run
// synchronously in registration order on the request goroutine.
type RecordHandler func(ctx context.Context, rec models.Record)

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) models.Record
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg    config.WhatsAppConfig
	client client.Client
	logger *zap.Logger

	mu       sync.RWMutex
	handlers []RecordHandler
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Subscribe registers a handler for classified records. Safe to call
// concurrently with webhook processing.
func (s *MetaWhatsAppService) Subscribe(fn RecordHandler) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, fn)
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook classifies the delivery and fans the record out to every
// subscriber. Classification cannot fail: unrecognized payloads come back
// tagged unmatched or unknown.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) models.Record {
	rec := classifier.Classify(payload)

	s.logger.Info("webhook classified",
		zap.String("type", string(rec.Type)),
		zap.String("from", rec.From),
		zap.String("message_id", rec.MessageID),
		zap.String("status_id", rec.ID))

	s.mu.RLock()
	handlers := make([]RecordHandler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.RUnlock()

	for _, fn := range handlers {
		fn(ctx, rec)
	}

	return rec
}

// SendOutbound lets internal operators push quick notifications via HTTP.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if req.ReplyTo != "" {
		_, err := s.client.SendReplyToTextMessage(ctxWithTimeout, client.SendReplyRequest{
			To:         req.To,
			MessageID:  req.ReplyTo,
			Body:       req.Message,
			PreviewURL: req.PreviewURL,
		})
		return err
	}

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	return err
}
