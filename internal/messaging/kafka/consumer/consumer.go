package consumer

import (
	"context"
	"encoding/json"
	"time"

	"leavesync/internal/events"
	"leavesync/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer loop uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// RetryPolicy bounds in-place redelivery of a message whose handling failed.
// The reader has already advanced past it, so it is retried here or not at all.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

var DefaultRetryPolicy = RetryPolicy{Attempts: 5, Backoff: 2 * time.Second}

// ConsumeNotificationRequested delivers notification intents until ctx is cancelled.
// A message is committed once handled, once it proves undecodable, or once its
// retries are exhausted. Cancellation mid-retry leaves it uncommitted.
func ConsumeNotificationRequested(
	ctx context.Context,
	reader MessageReader,
	notificationService notification.Service,
	retry RetryPolicy,
	logger *zap.Logger,
) {
	if retry.Attempts < 1 {
		retry.Attempts = 1
	}
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.NotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if !handleWithRetry(ctx, notificationService, event, retry, log) {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped", zap.Int64("uncommitted_offset", msg.Offset))
				return
			}
			log.Error("notification event dropped after retries",
				zap.String("event_type", event.EventType),
				zap.Uint("employee_id", event.EmployeeID),
				zap.Int64("offset", msg.Offset),
				zap.Int("attempts", retry.Attempts),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}

		log.Debug("notification event committed",
			zap.String("event_type", event.EventType),
			zap.Uint("employee_id", event.EmployeeID),
		)
	}
}

func handleWithRetry(
	ctx context.Context,
	notificationService notification.Service,
	event events.NotificationRequestedEvent,
	retry RetryPolicy,
	log *zap.Logger,
) bool {
	for attempt := 1; ; attempt++ {
		err := notificationService.Handle(ctx, event)
		if err == nil {
			return true
		}
		log.Warn("handle notification event failed",
			zap.String("event_type", event.EventType),
			zap.Uint("employee_id", event.EmployeeID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt >= retry.Attempts {
			return false
		}

		timer := time.NewTimer(retry.Backoff * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}
