package leave

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"leavesync/internal/attendance"
	"leavesync/internal/balance"
	"leavesync/internal/domain"
	"leavesync/internal/events"
	leaveerrors "leavesync/internal/leave/errors"
	"leavesync/internal/messaging/kafka"
	"leavesync/internal/rules"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, employeeID uint, req ApplyLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actorID uint, canReadAll bool) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actorID uint, canReadAll bool, id uint) (LeaveResponse, error)
	ListPending(ctx context.Context) ([]PendingLeaveResponse, error)
	Decide(ctx context.Context, id uint, decision Decision, approverID uint, rejectionReason string) (LeaveResponse, error)
}

type Config struct {
	// MedicalAllowance is the yearly medical quota; the stored medical
	// balance counts days already used.
	MedicalAllowance decimal.Decimal
	Location         *time.Location
	Now              func() time.Time
}

type service struct {
	db         *sql.DB
	repo       Repository
	balances   balance.Store
	attendance attendance.Repository
	outbox     kafka.OutboxRepository
	cfg        Config
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances balance.Store,
	attendanceRepo attendance.Repository,
	outbox kafka.OutboxRepository,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		balances:   balances,
		attendance: attendanceRepo,
		outbox:     outbox,
		cfg:        cfg,
		logger:     l,
	}
}

func (s *service) Apply(ctx context.Context, employeeID uint, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.Uint("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Bool("is_sandwich", req.IsSandwich),
	)

	leaveType, startDate, endDate, totalDays, err := s.validateApplyRequest(req)
	if err != nil {
		s.logger.Warn("apply leave validation failed", zap.Uint("employee_id", employeeID), zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.cfg.Now()

	quota := rules.NewQuotaValidator(s.balances.WithTx(tx), s.cfg.MedicalAllowance)
	if err := quota.Check(ctx, employeeID, leaveType, totalDays); err != nil {
		s.logger.Warn("apply leave quota rejected", zap.Uint("employee_id", employeeID), zap.Error(err))
		return LeaveResponse{}, err
	}

	if req.IsSandwich {
		if err := rules.NewSandwichPolicy(qtx, s.cfg.Location).Check(ctx, employeeID, startDate, now); err != nil {
			s.logger.Warn("apply leave sandwich rejected", zap.Uint("employee_id", employeeID), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := rules.CheckMedicalProof(leaveType, totalDays, req.ProofURL); err != nil {
		s.logger.Warn("apply leave proof rejected", zap.Uint("employee_id", employeeID), zap.Error(err))
		return LeaveResponse{}, err
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, startDate, endDate)
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	row := &Leave{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		Reason:     strings.TrimSpace(req.Reason),
		IsSandwich: req.IsSandwich,
		Status:     StatusPending,
	}
	if proof := strings.TrimSpace(req.ProofURL); proof != "" {
		row.ProofURL = &proof
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("apply leave create failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueue(ctx, tx, row, events.EventLeaveSubmitted, 0, now); err != nil {
		s.logger.Error("apply leave outbox write failed", zap.Uint("leave_id", row.ID), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave applied",
		zap.Uint("leave_id", row.ID),
		zap.Uint("employee_id", employeeID),
		zap.String("total_days", totalDays.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actorID uint, canReadAll bool) ([]LeaveResponse, error) {
	var (
		rows []Leave
		err  error
	)
	if canReadAll {
		rows, err = s.repo.ListAll(ctx)
	} else {
		rows, err = s.repo.ListByEmployee(ctx, actorID)
	}
	if err != nil {
		s.logger.Error("list leaves failed", zap.Uint("actor_id", actorID), zap.Error(err))
		return nil, err
	}

	res := make([]LeaveResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// GetByID hides other employees' leaves as not found unless the caller can read all.
func (s *service) GetByID(ctx context.Context, actorID uint, canReadAll bool, id uint) (LeaveResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !canReadAll && row.EmployeeID != actorID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*row), nil
}

func (s *service) ListPending(ctx context.Context) ([]PendingLeaveResponse, error) {
	rows, err := s.repo.ListPending(ctx)
	if err != nil {
		s.logger.Error("list pending leaves failed", zap.Error(err))
		return nil, err
	}

	res := make([]PendingLeaveResponse, len(rows))
	for i, r := range rows {
		res[i] = PendingLeaveResponse{LeaveResponse: mapToResponse(r)}
		if r.Employee != nil {
			res[i].Department = r.Employee.Department
			res[i].SickLeaveBalance = r.Employee.SickLeaveBalance
			res[i].CasualLeaveBalance = r.Employee.CasualLeaveBalance
		}
	}
	return res, nil
}

func (s *service) Decide(ctx context.Context, id uint, decision Decision, approverID uint, rejectionReason string) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.Uint("leave_id", id),
		zap.Uint("approver_id", approverID),
		zap.String("decision", string(decision.Status())),
	)

	if !decision.Valid() {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("decide leave lookup failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if !row.Status.CanTransition(decision.Status()) {
		s.logger.Warn("decide leave on processed leave",
			zap.Uint("leave_id", id),
			zap.String("status", string(row.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyProcessed
	}

	now := s.cfg.Now()

	// The cap is counted before this leave turns approved so it does not count itself.
	if decision.IsApproval() && row.IsSandwich {
		if err := rules.NewSandwichPolicy(qtx, s.cfg.Location).CheckCap(ctx, row.EmployeeID, now); err != nil {
			s.logger.Warn("decide leave sandwich cap reached", zap.Uint("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	row.Status = decision.Status()
	row.ApprovedBy = &approverID
	row.ApprovedAt = &now
	row.RejectionReason = nil
	if !decision.IsApproval() {
		if reason := strings.TrimSpace(rejectionReason); reason != "" {
			row.RejectionReason = &reason
		}
	}

	affected, err := qtx.UpdateDecision(ctx, row)
	if err != nil {
		s.logger.Error("decide leave update failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if affected == 0 {
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyProcessed
	}

	if decision.IsApproval() {
		if err := s.applyApproval(ctx, tx, row); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := s.enqueue(ctx, tx, row, events.EventLeaveDecided, approverID, now); err != nil {
		s.logger.Error("decide leave outbox write failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave decided",
		zap.Uint("leave_id", id),
		zap.String("status", string(row.Status)),
		zap.Uint("approver_id", approverID),
	)
	return mapToResponse(*row), nil
}

// applyApproval mutates balances for an approved leave inside tx. Work from
// home also marks attendance for every day of the range.
func (s *service) applyApproval(ctx context.Context, tx *sql.Tx, row *Leave) error {
	balances := s.balances.WithTx(tx)

	var err error
	switch row.LeaveType {
	case domain.LeaveMedical:
		err = balances.Credit(ctx, row.EmployeeID, domain.LeaveMedical, row.TotalDays)
	case domain.LeaveSick, domain.LeaveCasual, domain.LeaveWorkFromHome:
		err = balances.Debit(ctx, row.EmployeeID, row.LeaveType, row.TotalDays)
	default:
		err = leaveerrors.ErrInvalidLeaveType
	}
	if err != nil {
		s.logger.Warn("approve leave balance update failed",
			zap.Uint("leave_id", row.ID),
			zap.String("leave_type", string(row.LeaveType)),
			zap.Error(err),
		)
		return err
	}

	if row.LeaveType == domain.LeaveWorkFromHome {
		days := attendance.WorkFromHomeDays(row.EmployeeID, row.StartDate, row.EndDate, s.cfg.Location)
		if err := s.attendance.WithTx(tx).UpsertDays(ctx, days); err != nil {
			s.logger.Error("approve leave attendance marking failed", zap.Uint("leave_id", row.ID), zap.Error(err))
			return err
		}
		s.logger.Debug("work from home attendance marked", zap.Uint("leave_id", row.ID), zap.Int("days", len(days)))
	}
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, row *Leave, eventType string, approverID uint, now time.Time) error {
	return kafka.Enqueue(ctx, s.outbox.WithTx(tx),
		"leave", strconv.FormatUint(uint64(row.ID), 10),
		eventType, events.NotificationRequestedTopic,
		events.NotificationRequestedEvent{
			EventType:  eventType,
			EmployeeID: row.EmployeeID,
			OccurredAt: now.UTC(),
			LeaveID:    row.ID,
			LeaveType:  string(row.LeaveType),
			TotalDays:  row.TotalDays.String(),
			Status:     string(row.Status),
			ApproverID: approverID,
		},
	)
}

func (s *service) validateApplyRequest(req ApplyLeaveRequest) (domain.LeaveType, time.Time, time.Time, decimal.Decimal, error) {
	leaveType := domain.LeaveType(strings.ToLower(strings.TrimSpace(req.LeaveType)))
	if !leaveType.Valid() {
		return "", time.Time{}, time.Time{}, decimal.Zero, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := time.ParseInLocation(domain.DateLayout, req.StartDate, s.cfg.Location)
	if err != nil {
		return "", time.Time{}, time.Time{}, decimal.Zero, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.ParseInLocation(domain.DateLayout, req.EndDate, s.cfg.Location)
	if err != nil {
		return "", time.Time{}, time.Time{}, decimal.Zero, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return "", time.Time{}, time.Time{}, decimal.Zero, leaveerrors.ErrInvalidDateRange
	}

	totalDays := InclusiveDays(startDate, endDate, s.cfg.Location)
	if req.Days != nil && !req.Days.IsZero() {
		if req.Days.IsNegative() {
			return "", time.Time{}, time.Time{}, decimal.Zero, leaveerrors.ErrInvalidDays
		}
		totalDays = *req.Days
	}
	return leaveType, startDate, endDate, totalDays, nil
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time, loc *time.Location) decimal.Decimal {
	return decimal.NewFromInt(int64(rules.CalendarDaysBetween(start, end, loc) + 1))
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		LeaveType:       string(l.LeaveType),
		StartDate:       l.StartDate.Format(domain.DateLayout),
		EndDate:         l.EndDate.Format(domain.DateLayout),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		IsSandwich:      l.IsSandwich,
		ProofURL:        l.ProofURL,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
		ApprovedBy:      l.ApprovedBy,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.Name
		resp.EmployeeCode = l.Employee.EmployeeCode
	}
	return resp
}
