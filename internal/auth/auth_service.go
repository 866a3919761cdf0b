package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	autherrors "leavesync/internal/auth/errors"
	"leavesync/internal/employee"
	"leavesync/internal/events"
	"leavesync/internal/messaging/kafka"
	"leavesync/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	DefaultTokenTTL = 7 * 24 * time.Hour
	DefaultResetTTL = time.Hour
)

type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	// RequestPasswordReset succeeds for unknown emails so callers cannot enumerate accounts.
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, password string) error
}

type Config struct {
	Secret   string
	TokenTTL time.Duration
	ResetTTL time.Duration
	Now      func() time.Time
}

type service struct {
	db        *sql.DB
	employees employee.Repository
	outbox    kafka.OutboxRepository
	cfg       Config
	logger    *zap.Logger
}

func NewService(db *sql.DB, employees employee.Repository, outbox kafka.OutboxRepository, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = DefaultResetTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{db: db, employees: employees, outbox: outbox, cfg: cfg, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login unknown email", zap.String("email", email))
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login wrong password", zap.Uint("employee_id", empl.ID))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	expiresAt := s.cfg.Now().Add(s.cfg.TokenTTL)
	token, err := s.generateToken(empl, expiresAt)
	if err != nil {
		s.logger.Error("login sign token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.Uint("employee_id", empl.ID), zap.String("role", empl.Role))
	return LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User: AuthResponse{
			ID:           empl.ID,
			EmployeeCode: empl.EmployeeCode,
			Name:         empl.Name,
			Email:        empl.Email,
			Role:         empl.Role,
			Department:   empl.Department,
		},
	}, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	rid := contextutil.GetRequestID(ctx)
	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("password reset for unknown email ignored", zap.String("request_id", rid))
			return nil
		}
		s.logger.Error("password reset lookup failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	token, err := newResetToken()
	if err != nil {
		s.logger.Error("password reset token generation failed", zap.Error(err))
		return err
	}
	now := s.cfg.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("password reset begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.employees.WithTx(tx).SetResetToken(ctx, empl.ID, token, now.Add(s.cfg.ResetTTL)); err != nil {
		s.logger.Error("password reset store token failed", zap.Uint("employee_id", empl.ID), zap.Error(err))
		return err
	}

	idStr := strconv.FormatUint(uint64(empl.ID), 10)
	if err := kafka.Enqueue(ctx, s.outbox.WithTx(tx),
		"employee", idStr,
		events.EventPasswordResetRequested, events.NotificationRequestedTopic,
		events.NotificationRequestedEvent{
			EventType:  events.EventPasswordResetRequested,
			RequestID:  rid,
			EmployeeID: empl.ID,
			OccurredAt: now.UTC(),
			ResetToken: token,
		},
	); err != nil {
		s.logger.Error("password reset outbox persist failed", zap.Uint("employee_id", empl.ID), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("password reset commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.logger.Info("password reset requested", zap.String("request_id", rid), zap.Uint("employee_id", empl.ID))
	return nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	empl, err := s.employees.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("password reset confirm unknown token")
			return autherrors.ErrInvalidResetToken
		}
		s.logger.Error("password reset confirm lookup failed", zap.Error(err))
		return err
	}
	if empl.ResetTokenExpiry == nil || !empl.ResetTokenExpiry.After(s.cfg.Now()) {
		s.logger.Warn("password reset confirm expired token", zap.Uint("employee_id", empl.ID))
		return autherrors.ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password reset hash failed", zap.Error(err))
		return err
	}
	if err := s.employees.UpdatePassword(ctx, empl.ID, string(hashed)); err != nil {
		s.logger.Error("password reset update failed", zap.Uint("employee_id", empl.ID), zap.Error(err))
		return err
	}

	s.logger.Info("password reset completed", zap.Uint("employee_id", empl.ID))
	return nil
}

func (s *service) generateToken(empl *employee.Employee, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": empl.ID,
		"role":    empl.Role,
		"email":   empl.Email,
		"name":    empl.Name,
		"iat":     s.cfg.Now().Unix(),
		"exp":     expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
