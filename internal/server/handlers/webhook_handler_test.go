package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbodj/wahook/internal/domain/models"
)

type stubService struct {
	verifyErr error
	rec       models.Record
	sendErr   error
	sent      []models.OutboundMessageRequest
}

func (s *stubService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if s.verifyErr != nil {
		return "", s.verifyErr
	}
	return challenge, nil
}

func (s *stubService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) models.Record {
	return s.rec
}

func (s *stubService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	s.sent = append(s.sent, req)
	return s.sendErr
}

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewWebhookHandler(svc, nil)

	r := gin.New()
	r.GET("/webhook", handler.Verify)
	r.POST("/webhook", handler.Receive)
	r.POST("/send-message", handler.SendMessage)
	return r
}

func TestVerifyChallengeEcho(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=secret&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", w.Body.String())
}

func TestVerifyRejectsBadToken(t *testing.T) {
	r := newTestRouter(&stubService{verifyErr: errors.New("invalid verify token")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceiveClassifiesPayload(t *testing.T) {
	r := newTestRouter(&stubService{rec: models.Record{Type: models.RecordText}})

	body := `{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{"messaging_product":"whatsapp","messages":[{"type":"text","from":"628","text":{"body":"hi"}}]}}]}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"type":"text"}`, w.Body.String())
}

func TestReceiveRejectsNonObjectBody(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`[1,2,3]`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessageValidatesBody(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/send-message", strings.NewReader(`{"to":"628"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.sent)
}

func TestSendMessageAccepted(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/send-message", strings.NewReader(`{"to":"628","message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, svc.sent, 1)
	assert.Equal(t, "628", svc.sent[0].To)
}

func TestSendMessageUpstreamFailure(t *testing.T) {
	svc := &stubService{sendErr: errors.New("api down")}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/send-message", strings.NewReader(`{"to":"628","message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
