package rollover

import (
	"context"
	"database/sql"
	"errors"

	"leavesync/internal/shared/txutil"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByYear(ctx context.Context, year int) (*Run, error)
	Create(ctx context.Context, run *Run) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txutil.Bind(ctx, r.db, r.tx)
}

// FindByYear returns nil, nil when the year has not been rolled over.
func (r *repository) FindByYear(ctx context.Context, year int) (*Run, error) {
	var run Run
	err := r.conn(ctx).Where("year = ?", year).Take(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) Create(ctx context.Context, run *Run) error {
	return r.conn(ctx).Create(run).Error
}
