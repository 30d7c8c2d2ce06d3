package notify

import (
	"context"

	"github.com/nikolayk812/storefront/internal/port"
	"github.com/rs/zerolog"
)

// LogNotifier records outgoing notifications instead of delivering them.
type LogNotifier struct {
	log zerolog.Logger
}

var _ port.Notifier = (*LogNotifier)(nil)

func NewLog(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) PasswordReset(_ context.Context, email string) error {
	n.log.Info().Str("email", email).Msg("password reset instructions sent")
	return nil
}
