package email

import (
	"context"

	"github.com/alexnev/accountcore/internal/logger"
	"github.com/alexnev/accountcore/internal/model"
)

var _ model.EmailSender = (*LogSender)(nil)

// LogSender writes outgoing messages to the structured log instead of
// delivering them. Used in development and wherever no SMTP relay is
// configured; the verification and reset links stay reachable through
// the log stream.
type LogSender struct {
	logger *logger.Logger
}

// NewLogSender creates a sender backed by the given logger.
func NewLogSender(l *logger.Logger) *LogSender {
	return &LogSender{logger: l}
}

func (s *LogSender) Send(_ context.Context, msg model.EmailMessage) error {
	s.logger.Info("email delivery (log transport)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body)
	return nil
}
