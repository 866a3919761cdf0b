package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leavesync/internal/domain"
	"leavesync/internal/employee"
	"leavesync/internal/events"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// Handle renders and sends the emails for one notification intent. A returned
	// error means the intent should be retried; delivery failures are only logged.
	Handle(ctx context.Context, event events.NotificationRequestedEvent) error
}

type service struct {
	employees employee.Repository
	mailer    Mailer
	appURL    string
	logger    *zap.Logger
}

func NewService(employees employee.Repository, mailer Mailer, appURL string, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		employees: employees,
		mailer:    mailer,
		appURL:    strings.TrimRight(appURL, "/"),
		logger:    l,
	}
}

func (s *service) Handle(ctx context.Context, event events.NotificationRequestedEvent) error {
	log := s.logger.With(
		zap.String("event_type", event.EventType),
		zap.String("request_id", event.RequestID),
		zap.Uint("employee_id", event.EmployeeID),
	)

	subject, err := s.employees.FindByID(ctx, event.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("notification subject not found, dropping")
			return nil
		}
		return fmt.Errorf("load employee %d: %w", event.EmployeeID, err)
	}

	switch event.EventType {
	case events.EventLeaveDecided:
		approver := "your manager"
		if event.ApproverID != 0 {
			a, err := s.employees.FindByID(ctx, event.ApproverID)
			switch {
			case err == nil:
				approver = a.Name
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return fmt.Errorf("load approver %d: %w", event.ApproverID, err)
			}
		}
		s.send(ctx, log, subject.Email, LeaveStatusUpdate(subject.Name, event.Status, approver))

	case events.EventLeaveSubmitted:
		reviewers, err := s.employees.FindByRoles(ctx, reviewerRoles()...)
		if err != nil {
			return fmt.Errorf("load reviewers: %w", err)
		}
		tpl := LeaveCreatedManager(subject.Name, displayLeaveType(event.LeaveType), event.TotalDays)
		for _, r := range reviewers {
			if r.ID == subject.ID {
				continue
			}
			s.send(ctx, log, r.Email, tpl)
		}

	case events.EventPasswordResetRequested:
		link := fmt.Sprintf("%s/reset-password/%s", s.appURL, event.ResetToken)
		s.send(ctx, log, subject.Email, PasswordReset(subject.Name, link))

	default:
		log.Warn("unknown notification event type, skipping")
	}
	return nil
}

func (s *service) send(ctx context.Context, log *zap.Logger, to string, tpl Template) {
	if err := s.mailer.Send(ctx, Message{To: to, Subject: tpl.Subject, Text: tpl.Text}); err != nil {
		log.Error("send email failed", zap.String("to", to), zap.Error(err))
		return
	}
	log.Info("email delivered", zap.String("to", to), zap.String("subject", tpl.Subject))
}

func reviewerRoles() []string {
	roles := make([]string, 0, len(domain.ReviewerRoles))
	for _, r := range domain.ReviewerRoles {
		roles = append(roles, string(r))
	}
	return roles
}
