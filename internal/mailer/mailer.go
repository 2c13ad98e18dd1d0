package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-budget-tracker/internal/config"
	"github.com/MKhiriev/go-budget-tracker/internal/logger"
)

// ErrDeliveryFailed is returned when a message could not be handed to the
// delivery backend. Callers treat it as a signal to roll back any state that
// depended on the message arriving.
var ErrDeliveryFailed = errors.New("mail delivery failed")

// Mailer delivers transactional messages to account holders.
type Mailer interface {
	// SendVerificationCode mails the one-time code issued for email
	// verification during registration.
	SendVerificationCode(ctx context.Context, to string, code string) error

	// SendPasswordReset mails the raw password reset token.
	SendPasswordReset(ctx context.Context, to string, token string) error
}

// New selects the delivery implementation based on cfg.Provider.
func New(cfg config.Mail, log *logger.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPMailer(cfg, log), nil
	case "api":
		return NewAPIMailer(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
