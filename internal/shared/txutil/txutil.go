// Package txutil lets gorm repositories join a transaction opened on the
// underlying *sql.DB by a service.
package txutil

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a ctx-scoped session of db whose statements run on tx, or on
// db's own pool when tx is nil. db itself is never modified.
func Bind(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	// WithContext clones the statement; assigning ConnPool before that would
	// rebind every repository sharing db.
	session := db.WithContext(ctx)
	if tx != nil {
		session.Statement.ConnPool = tx
	}
	return session
}
