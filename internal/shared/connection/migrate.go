package connection

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var preMigrate = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
}

var postMigrate = []string{
	`CREATE TABLE IF NOT EXISTS employee_code_counters (
		prefix      varchar(10) NOT NULL,
		year        int         NOT NULL,
		last_value  bigint      NOT NULL,
		updated_at  timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (prefix, year)
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id             uuid PRIMARY KEY,
		request_id     varchar(100),
		aggregate_type varchar(50)  NOT NULL,
		aggregate_id   uuid         NOT NULL,
		event_type     varchar(100) NOT NULL,
		topic          varchar(200) NOT NULL,
		payload        jsonb        NOT NULL,
		status         varchar(20)  NOT NULL DEFAULT 'pending',
		retry_count    int          NOT NULL DEFAULT 0,
		error_message  text,
		next_retry_at  timestamptz,
		processed_at   timestamptz,
		created_at     timestamptz  NOT NULL DEFAULT now(),
		updated_at     timestamptz  NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created ON outbox_events (status, created_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_open_per_day
		ON attendance_records (employee_id, attendance_date)
		WHERE check_out IS NULL`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'ex_leave_requests_no_overlap') THEN
			ALTER TABLE leave_requests
				ADD CONSTRAINT ex_leave_requests_no_overlap
				EXCLUDE USING gist (
					employee_id WITH =,
					daterange(start_date, end_date, '[]') WITH &&
				) WHERE (status IN ('PENDING', 'APPROVED'));
		END IF;
	END $$`,
}

// Migrate creates extensions, auto-migrates the gorm models and then applies
// the raw constraints gorm tags cannot express. Every statement is idempotent.
func Migrate(db *gorm.DB, models ...any) error {
	log := zap.L().Named("connection.migrate")

	for _, stmt := range preMigrate {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("pre-migrate: %w", err)
		}
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	for _, stmt := range postMigrate {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("post-migrate: %w", err)
		}
	}

	log.Info("schema migrated", zap.Int("models", len(models)))
	return nil
}
