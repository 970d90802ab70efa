package notify

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-intake-backend/internal/config"
)

// NewMailer selects the Mailer configured by MAIL_PROVIDER.
func NewMailer(cfg config.MailConfig, logger zerolog.Logger) (Mailer, error) {
	switch cfg.Provider {
	case config.MailProviderResend:
		return NewResendMailer(cfg.ResendAPIKey, cfg.ResendAPIURL), nil
	case config.MailProviderSMTP:
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword), nil
	case config.MailProviderLog:
		return LogMailer{Logger: logger.With().Str("component", "mailer").Logger()}, nil
	}
	return nil, fmt.Errorf("unsupported mail provider %q", cfg.Provider)
}
