package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-budget-tracker/internal/config"
	"github.com/MKhiriev/go-budget-tracker/internal/logger"
	"github.com/MKhiriev/go-budget-tracker/internal/utils"
)

// APIMailer delivers messages through an HTTP mail provider. The provider is
// expected to accept a JSON POST at {APIBaseURL}/messages with a bearer key.
type APIMailer struct {
	cfg    config.Mail
	client *utils.HTTPClient
	logger *logger.Logger
}

// apiMessage is the request payload of the HTTP mail provider.
type apiMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// NewAPIMailer constructs an [APIMailer] from the mail configuration.
func NewAPIMailer(cfg config.Mail, log *logger.Logger) *APIMailer {
	log.Debug().Str("base_url", cfg.APIBaseURL).Msg("creating api mailer")

	client := utils.NewHTTPClient()
	client.SetBaseURL(cfg.APIBaseURL)
	client.SetAuthToken(cfg.APIKey)
	if cfg.SendTimeout > 0 {
		client.SetTimeout(cfg.SendTimeout)
	}

	return &APIMailer{cfg: cfg, client: client, logger: log}
}

// SendVerificationCode implements [Mailer].
func (m *APIMailer) SendVerificationCode(ctx context.Context, to string, code string) error {
	return m.post(ctx, apiMessage{
		From:    m.cfg.From,
		To:      to,
		Subject: "Your Budget Tracker verification code",
		Text:    "Verification code: " + code,
	})
}

// SendPasswordReset implements [Mailer].
func (m *APIMailer) SendPasswordReset(ctx context.Context, to string, token string) error {
	return m.post(ctx, apiMessage{
		From:    m.cfg.From,
		To:      to,
		Subject: "Your Budget Tracker password reset token",
		Text:    "Reset token: " + token,
	})
}

func (m *APIMailer) post(ctx context.Context, message apiMessage) error {
	log := logger.FromContext(ctx)

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post("/messages")
	if err != nil {
		log.Err(err).Str("func", "*APIMailer.post").Str("to", message.To).Msg("api delivery failed")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		log.Error().Str("func", "*APIMailer.post").Str("to", message.To).Int("status", resp.StatusCode()).Msg("api provider rejected message")
		return fmt.Errorf("%w: provider returned status %d", ErrDeliveryFailed, resp.StatusCode())
	}

	log.Info().Str("func", "*APIMailer.post").Str("to", message.To).Msg("message delivered")
	return nil
}
