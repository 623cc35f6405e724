package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cremacao_pet/internal/infrastructure/config"
	"cremacao_pet/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrWhatsAppNotConfigured = errors.New("whatsapp messenger not configured")
	ErrMissingPhone          = errors.New("missing phone number")
)

// WhatsAppMessenger delivers driver messages through an HTTP WhatsApp provider.
//
// In mock mode nothing leaves the process: the message is only logged.
type WhatsAppMessenger struct {
	client   *http.Client
	baseURL  string
	token    string
	mockMode bool
	logger   *zap.Logger
}

var _ interfaces.IMessenger = (*WhatsAppMessenger)(nil)

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func NewWhatsAppMessenger(cfg config.WhatsAppConfig, logger *zap.Logger) (*WhatsAppMessenger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("whatsapp")

	if cfg.Mock {
		logger.Info("mock mode enabled")
		return &WhatsAppMessenger{mockMode: true, logger: logger}, nil
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrWhatsAppNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WhatsAppMessenger{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		logger:  logger,
	}, nil
}

func (m *WhatsAppMessenger) SendMessage(ctx context.Context, phone, message string) error {
	phone = normalizePhone(phone)
	if phone == "" {
		return ErrMissingPhone
	}

	if m.mockMode {
		m.logger.Info("mock message", zap.String("phone", phone), zap.Int("length", len(message)))
		return nil
	}
	if m.client == nil {
		return ErrWhatsAppNotConfigured
	}

	body, err := json.Marshal(sendMessageRequest{Phone: phone, Message: message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Warn("send failed", zap.String("phone", phone), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		m.logger.Warn("provider rejected message", zap.Int("status", resp.StatusCode), zap.ByteString("body", detail))
		return fmt.Errorf("whatsapp provider returned %d", resp.StatusCode)
	}
	m.logger.Info("message sent", zap.String("phone", phone))
	return nil
}

// normalizePhone keeps digits only and adds the Brazilian country code to local numbers.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if len(digits) <= 11 {
		digits = "55" + digits
	}
	return digits
}
