package notification

import (
	"context"
	"log/slog"
)

const (
	// KindEmailVerification asks the user to re-verify a new email address.
	KindEmailVerification = "email_verification"
	// KindPhoneVerification asks the user to re-verify a new phone number.
	KindPhoneVerification = "phone_verification"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier hands verification requests to downstream delivery systems.
// Actual email/SMS delivery lives outside this service.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}
