package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LogMailer writes message envelopes to the logger instead of sending them.
// It is meant for local development. Bodies carry submitter data, so they
// are only logged when Body is set, and then at debug level.
type LogMailer struct {
	Logger zerolog.Logger
	Body   bool
}

// Send logs msg and returns a synthetic id.
func (l LogMailer) Send(_ context.Context, msg Message) (string, error) {
	id := "log-" + uuid.NewString()
	l.Logger.Info().
		Str("message_id", id).
		Str("from", msg.From).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("email (not sent)")
	if l.Body {
		l.Logger.Debug().Str("message_id", id).Str("text", msg.Text).Msg("email body")
	}
	return id, nil
}
