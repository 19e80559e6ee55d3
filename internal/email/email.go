package email

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Sender delivers account emails. Delivery is best-effort: callers fire it
// from a goroutine and never surface failures to the request path.
type Sender interface {
	SendWelcome(ctx context.Context, to, username string) error
}

// LogSender is the development fallback: it logs instead of sending.
type LogSender struct{}

func (LogSender) SendWelcome(_ context.Context, to, username string) error {
	log.WithFields(log.Fields{"to": to, "username": username}).
		Info("welcome email (log only, no SES configured)")
	return nil
}
