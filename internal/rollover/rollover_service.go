package rollover

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"leavesync/internal/balance"
	"leavesync/internal/employee"
	rollovererrors "leavesync/internal/rollover/errors"
	"leavesync/internal/shared/audit"
	"leavesync/internal/shared/contextutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	LockKey = "rollover:lock"
	lockTTL = 5 * time.Minute
)

type Service interface {
	// Run previews the rollover unless execute is set, in which case balances
	// are rewritten and the year is recorded in one transaction.
	Run(ctx context.Context, actorID uint, execute bool) (Result, error)
	ReportPDF(ctx context.Context) ([]byte, error)
}

type Config struct {
	Location *time.Location
	Now      func() time.Time
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	balances  balance.Store
	rdb       *redis.Client
	audit     audit.Logger
	cfg       Config
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	balances balance.Store,
	rdb *redis.Client,
	auditLogger audit.Logger,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("rollover.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rollover.service")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if auditLogger == nil {
		auditLogger = audit.NewStdoutLogger(l)
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		balances:  balances,
		rdb:       rdb,
		audit:     auditLogger,
		cfg:       cfg,
		logger:    l,
	}
}

func (s *service) year() int {
	return s.cfg.Now().In(s.cfg.Location).Year()
}

func (s *service) Run(ctx context.Context, actorID uint, execute bool) (Result, error) {
	rid := contextutil.GetRequestID(ctx)
	year := s.year()
	s.logger.Debug("rollover requested",
		zap.String("request_id", rid),
		zap.Uint("actor_id", actorID),
		zap.Int("year", year),
		zap.Bool("execute", execute),
	)

	if !execute {
		rows, err := s.preview(ctx, s.employees)
		if err != nil {
			return Result{}, err
		}
		return Result{Mode: ModeDryRun, Year: year, Report: rows}, nil
	}

	release, err := s.lock(ctx, actorID)
	if err != nil {
		return Result{}, err
	}
	defer release()

	existing, err := s.repo.FindByYear(ctx, year)
	if err != nil {
		s.logger.Error("rollover lookup run failed", zap.Int("year", year), zap.Error(err))
		return Result{}, err
	}
	if existing != nil {
		s.logger.Warn("rollover already executed", zap.Int("year", year), zap.Uint("executed_by", existing.ExecutedBy))
		return Result{}, rollovererrors.ErrAlreadyExecuted
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("rollover begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return Result{}, err
	}
	defer tx.Rollback()

	rows, err := s.preview(ctx, s.employees.WithTx(tx))
	if err != nil {
		return Result{}, err
	}

	qbal := s.balances.WithTx(tx)
	for _, row := range rows {
		if err := qbal.Reset(ctx, row.EmployeeID, row.NewSickBalance, row.NewCasualBalance); err != nil {
			s.logger.Error("rollover reset balance failed", zap.Uint("employee_id", row.EmployeeID), zap.Error(err))
			return Result{}, err
		}
	}

	run := &Run{
		Year:          year,
		ExecutedBy:    actorID,
		EmployeeCount: len(rows),
		ExecutedAt:    s.cfg.Now(),
	}
	if err := s.repo.WithTx(tx).Create(ctx, run); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Result{}, rollovererrors.ErrAlreadyExecuted
		}
		s.logger.Error("rollover record run failed", zap.Int("year", year), zap.Error(err))
		return Result{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("rollover commit failed", zap.String("request_id", rid), zap.Error(err))
		return Result{}, err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  "ROLLOVER_EXECUTED",
		ActorID: actorID,
		Message: fmt.Sprintf("year-end rollover executed for %d", year),
		Meta: map[string]any{
			"year":      year,
			"employees": len(rows),
		},
	})
	s.logger.Info("rollover executed",
		zap.String("request_id", rid),
		zap.Int("year", year),
		zap.Int("employees", len(rows)),
	)
	return Result{Mode: ModeExecuted, Year: year, Report: rows}, nil
}

func (s *service) preview(ctx context.Context, employees employee.Repository) ([]ReportRow, error) {
	empls, err := employees.FindByRoles(ctx, employee.RoleEmployee)
	if err != nil {
		s.logger.Error("rollover list employees failed", zap.Error(err))
		return nil, err
	}
	rows := make([]ReportRow, 0, len(empls))
	for _, e := range empls {
		rows = append(rows, Plan(e.ID, e.Name, e.CasualLeaveBalance))
	}
	return rows, nil
}

// lock takes the cluster-wide rollover lock. Without Redis it is a no-op.
func (s *service) lock(ctx context.Context, actorID uint) (func(), error) {
	if s.rdb == nil {
		return func() {}, nil
	}
	ok, err := s.rdb.SetNX(ctx, LockKey, actorID, lockTTL).Result()
	if err != nil {
		s.logger.Error("rollover acquire lock failed", zap.Error(err))
		return nil, err
	}
	if !ok {
		s.logger.Warn("rollover lock held by another run", zap.Uint("actor_id", actorID))
		return nil, rollovererrors.ErrInProgress
	}
	return func() {
		if err := s.rdb.Del(context.WithoutCancel(ctx), LockKey).Err(); err != nil {
			s.logger.Error("rollover release lock failed", zap.Error(err))
		}
	}, nil
}

func (s *service) ReportPDF(ctx context.Context) ([]byte, error) {
	rows, err := s.preview(ctx, s.employees)
	if err != nil {
		return nil, err
	}
	return renderReportPDF(s.year(), s.cfg.Now().In(s.cfg.Location), rows)
}
