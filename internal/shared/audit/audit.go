// Package audit records administrative actions that must survive in the log stream.
package audit

import (
	"context"
	"time"

	"leavesync/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Entry struct {
	Action  string
	ActorID uint
	Message string
	Meta    map[string]any
}

type Logger interface {
	Log(ctx context.Context, entry Entry)
}

type stdoutLogger struct {
	logger *zap.Logger
}

// NewStdoutLogger writes audit entries through zap under the "audit" name.
func NewStdoutLogger(logger ...*zap.Logger) Logger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &stdoutLogger{logger: l.Named("audit")}
}

func (l *stdoutLogger) Log(ctx context.Context, entry Entry) {
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("action", entry.Action),
		zap.Uint("actor_id", entry.ActorID),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

// Recorder keeps entries in memory; tests use it to assert on audited actions.
type Recorder struct {
	Entries []Entry
}

func (r *Recorder) Log(_ context.Context, entry Entry) {
	r.Entries = append(r.Entries, entry)
}
