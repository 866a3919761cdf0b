package auth_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"leavesync/internal/auth"
	autherrors "leavesync/internal/auth/errors"
	"leavesync/internal/employee"
	employeeMock "leavesync/internal/employee/mock"
	"leavesync/internal/events"
	"leavesync/internal/messaging/kafka"
	kafkaMock "leavesync/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret-with-enough-length-123456"

var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service auth.Service
	repo    *employeeMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := employeeMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	svc := auth.NewService(db, repo, outbox, auth.Config{
		Secret: testSecret,
		Now:    func() time.Time { return fixedNow },
	})

	return &serviceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success - token carries identity claims", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByEmail(gomock.Any(), "asha@example.com").Return(&employee.Employee{
			ID:           4,
			Name:         "Asha",
			Email:        "asha@example.com",
			Role:         employee.RoleManager,
			PasswordHash: hashed(t, "secret123"),
		}, nil)

		resp, err := deps.service.Login(ctx, "asha@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, fixedNow.Add(7*24*time.Hour), resp.ExpiresAt)
		assert.Equal(t, uint(4), resp.User.ID)

		parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		}, jwt.WithoutClaimsValidation())
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, float64(4), claims["user_id"])
		assert.Equal(t, "manager", claims["role"])
		assert.Equal(t, "Asha", claims["name"])
		assert.Equal(t, jwt.SigningMethodHS256.Alg(), parsed.Method.Alg())
	})

	t.Run("error - wrong password", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(&employee.Employee{
			ID:           4,
			PasswordHash: hashed(t, "secret123"),
		}, nil)

		_, err := deps.service.Login(ctx, "asha@example.com", "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("error - unknown email", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(&employee.Employee{}, gorm.ErrRecordNotFound)

		_, err := deps.service.Login(ctx, "ghost@example.com", "secret123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(&employee.Employee{}, gorm.ErrRecordNotFound)

		err := deps.service.RequestPasswordReset(ctx, "ghost@example.com")

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("stores token and queues notification", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		var storedToken string
		deps.repo.EXPECT().FindByEmail(gomock.Any(), "asha@example.com").Return(&employee.Employee{ID: 4}, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			SetResetToken(gomock.Any(), uint(4), gomock.Any(), fixedNow.Add(time.Hour)).
			DoAndReturn(func(ctx context.Context, id uint, token string, expiry time.Time) error {
				storedToken = token
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.EventPasswordResetRequested, ev.EventType)
				assert.Equal(t, events.NotificationRequestedTopic, ev.Topic)
				var payload events.NotificationRequestedEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, storedToken, payload.ResetToken)
				assert.Equal(t, uint(4), payload.EmployeeID)
				return nil
			})

		err := deps.service.RequestPasswordReset(ctx, "asha@example.com")

		assert.NoError(t, err)
		assert.Len(t, storedToken, 64)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAuthService_ConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("success - password rehashed", func(t *testing.T) {
		deps := setupServiceTest(t)
		expiry := fixedNow.Add(30 * time.Minute)
		deps.repo.EXPECT().FindByResetToken(gomock.Any(), "tok").Return(&employee.Employee{ID: 4, ResetTokenExpiry: &expiry}, nil)
		deps.repo.EXPECT().
			UpdatePassword(gomock.Any(), uint(4), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id uint, hash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass1")))
				return nil
			})

		err := deps.service.ConfirmPasswordReset(ctx, "tok", "newpass1")
		assert.NoError(t, err)
	})

	t.Run("error - expired token", func(t *testing.T) {
		deps := setupServiceTest(t)
		expiry := fixedNow.Add(-time.Minute)
		deps.repo.EXPECT().FindByResetToken(gomock.Any(), "tok").Return(&employee.Employee{ID: 4, ResetTokenExpiry: &expiry}, nil)

		err := deps.service.ConfirmPasswordReset(ctx, "tok", "newpass1")
		assert.ErrorIs(t, err, autherrors.ErrInvalidResetToken)
	})

	t.Run("error - unknown token", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByResetToken(gomock.Any(), "tok").Return(&employee.Employee{}, gorm.ErrRecordNotFound)

		err := deps.service.ConfirmPasswordReset(ctx, "tok", "newpass1")
		assert.ErrorIs(t, err, autherrors.ErrInvalidResetToken)
	})
}
