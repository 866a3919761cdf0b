package producer_test

import (
	"context"
	"errors"
	"testing"

	"leavesync/internal/messaging/kafka"
	kafkaMock "leavesync/internal/messaging/kafka/mock"
	"leavesync/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type recordingWriter struct {
	failFor map[string]bool
	written []kafkago.Message
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.failFor[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &recordingWriter{}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o-1", RequestID: "r-1", AggregateType: "leave", AggregateID: "10", EventType: "leave_decided", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)

		sent, err := producer.ProcessBatch(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, "10", string(writer.written[0].Key))
		assert.Equal(t, "event_type", writer.written[0].Headers[0].Key)
		assert.Equal(t, "leave_decided", string(writer.written[0].Headers[0].Value))
	})

	t.Run("publish failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &recordingWriter{failFor: map[string]bool{"1": true}}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o-1", AggregateID: "1", Topic: "t", Payload: []byte(`{}`)},
			{ID: "o-2", AggregateID: "2", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "o-1", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		sent, err := producer.ProcessBatch(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		sent, err := producer.ProcessBatch(ctx, repo, &recordingWriter{}, zap.NewNop())

		assert.Error(t, err)
		assert.Zero(t, sent)
	})
}
