package app

import (
	"database/sql"
	"net/http"

	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/salary"
	"go-hrms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models is every gorm model the API owns, in foreign-key order.
var Models = []any{
	&auth.User{},
	&employee.Employee{},
	&salary.SalaryStructure{},
	&attendance.AttendanceRecord{},
	&leave.LeaveRequest{},
}

// BuildApp connects the stores, migrates when configured and registers every
// module on router. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	log := zap.L().Named("app")

	gormDB, sqlDB, err := connectDB(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := connection.Migrate(gormDB, Models...); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		cleanup()
		return nil, err
	}

	log.Info("modules registered", zap.String("timezone", cfg.Location().String()))
	return cleanup, nil
}

func connectDB(cfg config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.DBMaxRetries,
	)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}
