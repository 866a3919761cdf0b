package employee

import (
	"context"
	"strings"
	"time"

	"leavesync/internal/attendance"
	"leavesync/internal/domain"
	employeeerrors "leavesync/internal/employee/errors"
	"leavesync/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetMe(ctx context.Context, id uint) (ProfileResponse, error)
}

// AttendanceReader is the part of the attendance service the profile needs.
type AttendanceReader interface {
	Today(ctx context.Context, employeeID uint) (*attendance.AttendanceResponse, error)
}

type service struct {
	repo       Repository
	attendance AttendanceReader
	loc        *time.Location
	hashCost   int
	logger     *zap.Logger
}

func NewService(repo Repository, attendance AttendanceReader, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		repo:       repo,
		attendance: attendance,
		loc:        loc,
		hashCost:   bcrypt.DefaultCost,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_code", req.EmployeeCode),
		zap.String("email", email),
	)

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = RoleEmployee
	}
	if !ValidRole(role) {
		s.logger.Warn("create employee invalid role", zap.String("role", req.Role))
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	joinDate := time.Now().In(s.loc)
	if req.JoinDate != "" {
		parsed, err := time.ParseInLocation(domain.DateLayout, req.JoinDate, s.loc)
		if err != nil {
			s.logger.Warn("create employee invalid join_date", zap.String("join_date", req.JoinDate))
			return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
		}
		joinDate = parsed
	}

	empl := &Employee{
		EmployeeCode:        strings.TrimSpace(req.EmployeeCode),
		Name:                strings.TrimSpace(req.Name),
		Email:               email,
		Role:                role,
		Department:          req.Department,
		Position:            req.Position,
		JoinDate:            joinDate,
		SickLeaveBalance:    orDefault(req.SickLeaveBalance, DefaultSickBalance),
		CasualLeaveBalance:  orDefault(req.CasualLeaveBalance, DefaultCasualBalance),
		MedicalLeaveBalance: orDefault(req.MedicalLeaveBalance, DefaultMedicalBalance),
		WorkFromHomeBalance: orDefault(req.WorkFromHomeBalance, DefaultWorkFromHomeBalance),
	}
	for _, b := range []decimal.Decimal{empl.SickLeaveBalance, empl.CasualLeaveBalance, empl.MedicalLeaveBalance, empl.WorkFromHomeBalance} {
		if b.IsNegative() {
			s.logger.Warn("create employee negative balance", zap.String("email", email))
			return EmployeeResponse{}, employeeerrors.ErrNegativeBalance
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	empl.PasswordHash = string(hashed)

	if err := s.repo.Create(ctx, empl); err != nil {
		mapped := mapRepositoryError(err)
		if mapped != err {
			s.logger.Warn("create employee conflict", zap.String("email", email), zap.Error(err))
		} else {
			s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", empl.ID),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetMe(ctx context.Context, id uint) (ProfileResponse, error) {
	s.logger.Debug("get profile requested", zap.Uint("employee_id", id))
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("get profile failed", zap.Uint("employee_id", id), zap.Error(err))
		}
		return ProfileResponse{}, mapped
	}

	profile := ProfileResponse{EmployeeResponse: mapToResponse(*empl)}
	if s.attendance != nil {
		today, err := s.attendance.Today(ctx, id)
		if err != nil {
			s.logger.Error("get profile today attendance failed", zap.Uint("employee_id", id), zap.Error(err))
			return ProfileResponse{}, err
		}
		profile.TodayAttendance = today
	}
	return profile, nil
}

func orDefault(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(empls))
	for _, e := range empls {
		out = append(out, mapToResponse(e))
	}
	return out
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                  e.ID,
		EmployeeCode:        e.EmployeeCode,
		Name:                e.Name,
		Email:               e.Email,
		Role:                e.Role,
		Department:          e.Department,
		Position:            e.Position,
		JoinDate:            e.JoinDate.Format(domain.DateLayout),
		SickLeaveBalance:    e.SickLeaveBalance,
		CasualLeaveBalance:  e.CasualLeaveBalance,
		MedicalLeaveBalance: e.MedicalLeaveBalance,
		WorkFromHomeBalance: e.WorkFromHomeBalance,
	}
}
