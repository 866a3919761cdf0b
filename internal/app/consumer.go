package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"leavesync/internal/config"
	"leavesync/internal/employee"
	"leavesync/internal/events"
	"leavesync/internal/messaging/kafka/consumer"
	"leavesync/internal/notification"
	"leavesync/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer delivers notification intents by email until SIGINT/SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(postgresConfig(cfg), connectRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	mailer := notification.NewMailer(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		UseTLS:   cfg.SMTPUseTLS,
		From:     cfg.EmailFrom,
	}, logger)
	if !cfg.SMTPEnabled() {
		logger.Warn("SMTP_HOST not set, emails are only logged")
	}

	employeeRepo := employee.NewRepository(gormDB)
	notificationService := notification.NewService(employeeRepo, mailer, cfg.AppURL, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.NotificationRequestedTopic,
		GroupID:        cfg.ConsumerGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeNotificationRequested(ctx, reader, notificationService, consumer.DefaultRetryPolicy, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
