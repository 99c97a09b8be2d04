package connection

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return gdb, mock
}

func TestLockEmployee(t *testing.T) {
	ctx := context.Background()
	gdb, mock := newMockGorm(t)
	sqlDB, err := gdb.DB()
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("employee:emp-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := sqlDB.BeginTx(ctx, nil)
	assert.NoError(t, err)
	assert.NoError(t, LockEmployee(Session(ctx, gdb, tx), "emp-1"))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_DoesNotLeakTransaction(t *testing.T) {
	ctx := context.Background()
	gdb, mock := newMockGorm(t)
	sqlDB, err := gdb.DB()
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := sqlDB.BeginTx(ctx, nil)
	assert.NoError(t, err)

	session := Session(ctx, gdb, tx)
	assert.Equal(t, tx, session.Statement.ConnPool)
	assert.Equal(t, sqlDB, gdb.Statement.ConnPool)

	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		gdb, mock := newMockGorm(t)

		mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pgcrypto").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS btree_gist").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS employee_code_counters").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS outbox_events").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("idx_outbox_events_status_created").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("uq_attendance_open_per_day").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("ex_leave_requests_no_overlap").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, Migrate(gdb))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative extension missing", func(t *testing.T) {
		gdb, mock := newMockGorm(t)

		mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pgcrypto").WillReturnError(errors.New("permission denied"))

		err := Migrate(gdb)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "pre-migrate")
	})
}
