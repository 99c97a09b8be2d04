package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Session returns a gorm handle for ctx. When tx is set every statement
// issued through the handle runs on that transaction.
func Session(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.WithContext(ctx)
	if tx != nil {
		session.Statement.ConnPool = tx
	}
	return session
}

// LockEmployee takes a transaction-scoped advisory lock for one employee.
// Writers that check then insert attendance or leave rows take it first, so
// they run one at a time per employee. The lock is released on commit or
// rollback.
func LockEmployee(db *gorm.DB, employeeID string) error {
	return db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "employee:"+employeeID).Error
}
