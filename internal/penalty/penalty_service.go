package penalty

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"leavesync/internal/balance"
	"leavesync/internal/domain"
	penaltyerrors "leavesync/internal/penalty/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=penalty_service.go -destination=mock/penalty_service_mock.go -package=mock
type Service interface {
	Issue(ctx context.Context, issuerID uint, req IssuePenaltyRequest) (PenaltyResponse, error)
	IssueLatePenalty(ctx context.Context, employeeID uint, days decimal.Decimal, checkIn time.Time) error
	List(ctx context.Context, actorID uint, canReadAll bool, employeeID *uint) ([]PenaltyResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string) (PenaltyResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	balances balance.Store
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, balances balance.Store, loc *time.Location, logger ...*zap.Logger) Service {
	if loc == nil {
		loc = time.Local
	}
	l := zap.L().Named("penalty.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("penalty.service")
	}
	return &service{db: db, repo: repo, balances: balances, loc: loc, now: time.Now, logger: l}
}

// Issue records the penalty and debits casual leave in one transaction. The
// debit is allowed to take the balance below zero.
func (s *service) Issue(ctx context.Context, issuerID uint, req IssuePenaltyRequest) (PenaltyResponse, error) {
	s.logger.Debug("issue penalty requested",
		zap.Uint("issuer_id", issuerID),
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("penalty_type", req.PenaltyType),
		zap.String("penalty_days", req.PenaltyDays.String()),
	)

	penaltyType := Type(strings.ToLower(strings.TrimSpace(req.PenaltyType)))
	if !penaltyType.Valid() {
		return PenaltyResponse{}, penaltyerrors.ErrInvalidPenaltyType
	}
	if !req.PenaltyDays.IsPositive() {
		return PenaltyResponse{}, penaltyerrors.ErrInvalidPenaltyDays
	}

	var issuer *uint
	if issuerID != 0 {
		issuer = &issuerID
	}

	row, err := s.issue(ctx, req.EmployeeID, penaltyType, strings.TrimSpace(req.Description), req.PenaltyDays, s.now(), issuer)
	if err != nil {
		return PenaltyResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) IssueLatePenalty(ctx context.Context, employeeID uint, days decimal.Decimal, checkIn time.Time) error {
	if !days.IsPositive() {
		return nil
	}
	desc := fmt.Sprintf("Late check-in at %s", checkIn.In(s.loc).Format("15:04"))
	_, err := s.issue(ctx, employeeID, TypeLateArrival, desc, days, checkIn, nil)
	return err
}

func (s *service) issue(ctx context.Context, employeeID uint, penaltyType Type, description string, days decimal.Decimal, at time.Time, issuer *uint) (*Penalty, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("issue penalty begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	y, m, d := at.In(s.loc).Date()
	row := &Penalty{
		EmployeeID:  employeeID,
		PenaltyType: penaltyType,
		Description: description,
		PenaltyDays: days,
		AppliedDate: time.Date(y, m, d, 0, 0, 0, 0, s.loc),
		Status:      StatusActive,
		IssuedBy:    issuer,
	}

	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("issue penalty create failed", zap.Error(err))
		return nil, err
	}

	if err := s.balances.WithTx(tx).ForceDebit(ctx, employeeID, domain.LeaveCasual, days); err != nil {
		s.logger.Warn("issue penalty debit failed", zap.Uint("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("issue penalty commit failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("penalty issued",
		zap.Uint("penalty_id", row.ID),
		zap.Uint("employee_id", employeeID),
		zap.String("penalty_type", string(penaltyType)),
		zap.String("penalty_days", days.String()),
	)
	return row, nil
}

// List forces the filter to the caller unless they can read every ledger.
func (s *service) List(ctx context.Context, actorID uint, canReadAll bool, employeeID *uint) ([]PenaltyResponse, error) {
	filter := employeeID
	if !canReadAll {
		filter = &actorID
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list penalties failed", zap.Error(err))
		return nil, err
	}

	res := make([]PenaltyResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// UpdateStatus does not restore the casual balance when a penalty is resolved.
func (s *service) UpdateStatus(ctx context.Context, id uint, status string) (PenaltyResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != StatusActive && status != StatusResolved {
		return PenaltyResponse{}, penaltyerrors.ErrInvalidPenaltyStatus
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error("update penalty status failed", zap.Uint("penalty_id", id), zap.Error(err))
		return PenaltyResponse{}, err
	}
	if affected == 0 {
		return PenaltyResponse{}, penaltyerrors.ErrPenaltyNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PenaltyResponse{}, penaltyerrors.ErrPenaltyNotFound
		}
		return PenaltyResponse{}, err
	}

	s.logger.Info("penalty status updated", zap.Uint("penalty_id", id), zap.String("status", status))
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete penalty failed", zap.Uint("penalty_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return penaltyerrors.ErrPenaltyNotFound
	}
	s.logger.Info("penalty deleted", zap.Uint("penalty_id", id))
	return nil
}

func mapToResponse(p Penalty) PenaltyResponse {
	resp := PenaltyResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		PenaltyType: string(p.PenaltyType),
		Description: p.Description,
		PenaltyDays: p.PenaltyDays,
		AppliedDate: p.AppliedDate.Format(domain.DateLayout),
		Status:      p.Status,
		IssuedBy:    p.IssuedBy,
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.Name
		resp.EmployeeCode = p.Employee.EmployeeCode
		resp.Department = p.Employee.Department
	}
	return resp
}
