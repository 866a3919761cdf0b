package employee

import (
	"errors"
	"strings"

	employeeerrors "leavesync/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employees_employee_code":
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		default:
			return employeeerrors.ErrEmailAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_employees_employee_code") {
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		}
		return employeeerrors.ErrEmailAlreadyExists
	}

	return err
}
