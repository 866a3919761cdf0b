package notification

import (
	"context"

	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Text    string
}

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type logMailer struct {
	logger *zap.Logger
}

// NewLogMailer returns a Mailer that only writes each message to the log.
func NewLogMailer(logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.L()
	}
	return &logMailer{logger: logger.Named("notification.mailer")}
}

func (m *logMailer) Send(ctx context.Context, msg Message) error {
	m.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)
	return nil
}
