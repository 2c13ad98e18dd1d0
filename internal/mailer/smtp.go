package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/MKhiriev/go-budget-tracker/internal/config"
	"github.com/MKhiriev/go-budget-tracker/internal/logger"
)

// SMTPMailer delivers messages over SMTP. Port 465 uses implicit TLS; any
// other port dials plaintext and upgrades via STARTTLS when the relay offers
// the extension.
type SMTPMailer struct {
	cfg    config.Mail
	logger *logger.Logger
}

// NewSMTPMailer constructs an [SMTPMailer] from the mail configuration.
func NewSMTPMailer(cfg config.Mail, log *logger.Logger) *SMTPMailer {
	log.Debug().Str("host", cfg.SMTPHost).Int("port", cfg.SMTPPort).Msg("creating smtp mailer")
	return &SMTPMailer{cfg: cfg, logger: log}
}

// SendVerificationCode implements [Mailer].
func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to string, code string) error {
	subject := "Your Budget Tracker verification code"
	body := "Hello,\n\n" +
		"Use the code below to verify your email address:\n\n" +
		"Verification code: " + code + "\n\n" +
		"The code expires shortly. If you did not request it, ignore this message."

	return m.send(ctx, to, subject, body)
}

// SendPasswordReset implements [Mailer].
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to string, token string) error {
	subject := "Your Budget Tracker password reset token"
	body := "Hello,\n\n" +
		"A password reset was requested for your account. Use the token below to set a new password:\n\n" +
		"Reset token: " + token + "\n\n" +
		"The token expires shortly. If you did not request a reset, ignore this message."

	return m.send(ctx, to, subject, body)
}

// send performs the SMTP handshake and delivery. The context bounds the whole
// exchange: delivery runs in a goroutine and the first of completion or
// cancellation wins.
func (m *SMTPMailer) send(ctx context.Context, to string, subject string, body string) error {
	log := logger.FromContext(ctx)

	if m.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.SendTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- m.deliver(to, subject, body)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Err(err).Str("func", "*SMTPMailer.send").Str("to", to).Msg("smtp delivery failed")
			return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
		}
		log.Info().Str("func", "*SMTPMailer.send").Str("to", to).Msg("message delivered")
		return nil
	case <-ctx.Done():
		log.Err(ctx.Err()).Str("func", "*SMTPMailer.send").Str("to", to).Msg("smtp delivery timed out")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, ctx.Err())
	}
}

func (m *SMTPMailer) deliver(to string, subject string, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	fromAddr := parseAddress(m.cfg.From)
	message := buildMessage(m.cfg.From, to, subject, body)

	client, err := m.smtpClient(addr)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if m.cfg.SMTPUsername != "" {
		auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(fromAddr); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		_ = writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func (m *SMTPMailer) smtpClient(addr string) (*smtp.Client, error) {
	if m.cfg.SMTPPort == 465 {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.SMTPHost})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, m.cfg.SMTPHost)
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.SMTPHost}); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

// buildMessage assembles an RFC 822 plain-text message. Headers and body are
// separated by a blank CRLF line.
func buildMessage(from string, to string, subject string, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}
	return strings.Join(headers, "\r\n")
}

// parseAddress extracts the bare address from a "Name <addr>" From header.
func parseAddress(from string) string {
	start := strings.Index(from, "<")
	end := strings.Index(from, ">")
	if start >= 0 && end > start {
		return strings.TrimSpace(from[start+1 : end])
	}
	return strings.TrimSpace(from)
}
