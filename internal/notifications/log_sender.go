package notifications

import (
	"context"

	"github.com/vuminhngo/techstore-backend/pkg/logger"
)

// LogSender stands in for SMTP when outbound mail is not configured. It
// records the would-be delivery and succeeds.
type LogSender struct {
	logg *logger.Logger
}

// NewLogSender builds the logging fallback sender.
func NewLogSender(logg *logger.Logger) *LogSender {
	return &LogSender{logg: logg}
}

func (s *LogSender) Send(ctx context.Context, email Email) error {
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"to":      email.To,
			"subject": email.Subject,
		})
		s.logg.Info(ctx, "smtp disabled, skipping email delivery")
	}
	return nil
}
