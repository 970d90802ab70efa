package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-intake-backend/internal/notify"
)

// Mail dispatches the notifications of a flow. Every send is independent and
// bounded by Timeout; failures are logged and reported as false.
type Mail struct {
	Notifier    Notifier
	IntakeEmail string
	Timeout     time.Duration

	// OnResult, when set, observes every send attempt (metrics).
	OnResult func(kind notify.Kind, sent bool)
}

// send delivers one notification and reports whether it went out.
func (m Mail) send(ctx context.Context, kind notify.Kind, to string, data notify.Data) bool {
	if m.Notifier == nil {
		return false
	}
	cctx, cancel := withTimeout(ctx, m.Timeout)
	defer cancel()

	res, err := m.Notifier.Notify(cctx, kind, to, data)
	sent := err == nil && res.Sent
	if m.OnResult != nil {
		m.OnResult(kind, sent)
	}
	lg := zerolog.Ctx(ctx)
	if !sent {
		if err == nil {
			err = fmt.Errorf("provider did not accept message")
		}
		lg.Warn().
			Err(fmt.Errorf("%w: %w", ErrNotifierFailed, err)).
			Str("kind", string(kind)).
			Msg("notification not sent")
		return false
	}
	lg.Debug().
		Str("kind", string(kind)).
		Str("provider_message_id", res.ProviderMessageID).
		Msg("notification sent")
	return true
}

// internal sends kind to the business intake inbox.
func (m Mail) internal(ctx context.Context, kind notify.Kind, data notify.Data) bool {
	return m.send(ctx, kind, m.IntakeEmail, data)
}
