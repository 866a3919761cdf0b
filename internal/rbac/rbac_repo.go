package rbac

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	ListRolePermissions(ctx context.Context) ([]RolePermission, error)
	Count(ctx context.Context) (int64, error)
	// Seed inserts rows, skipping any that already exist.
	Seed(ctx context.Context, rows []RolePermission) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRolePermissions(ctx context.Context) ([]RolePermission, error) {
	var rows []RolePermission
	err := r.db.WithContext(ctx).Order("role, resource, action").Find(&rows).Error
	return rows, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&RolePermission{}).Count(&total).Error
	return total, err
}

func (r *repository) Seed(ctx context.Context, rows []RolePermission) error {
	if len(rows) == 0 {
		return nil
	}
	seed := make([]RolePermission, len(rows))
	copy(seed, rows)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error
}
