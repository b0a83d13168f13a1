package app

import (
	"database/sql"
	"time"

	"github.com/towet/payroll-processing-sys/internal/attendance"
	"github.com/towet/payroll-processing-sys/internal/auth"
	"github.com/towet/payroll-processing-sys/internal/config"
	"github.com/towet/payroll-processing-sys/internal/dashboard"
	"github.com/towet/payroll-processing-sys/internal/employee"
	"github.com/towet/payroll-processing-sys/internal/leave"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"
	"github.com/towet/payroll-processing-sys/internal/payroll"
	"github.com/towet/payroll-processing-sys/internal/payslip"
	"github.com/towet/payroll-processing-sys/internal/shared/connection"
	"github.com/towet/payroll-processing-sys/internal/shared/counter"
	"github.com/towet/payroll-processing-sys/internal/taxdetails"
	"github.com/towet/payroll-processing-sys/internal/taxrate"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the connections shared by every binary.
type Infra struct {
	Config config.Config
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Logger *zap.Logger
	Now    func() time.Time
}

// Connect opens Postgres and, when withRedis is set, Redis.
func Connect(cfg config.Config, logger *zap.Logger, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	infra := &Infra{
		Config: cfg,
		GormDB: gormDB,
		SQLDB:  sqlDB,
		Logger: logger,
		Now:    time.Now,
	}

	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries, logger)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		infra.Redis = rdb
	}

	if cfg.App.RunMigrations {
		if err := Migrate(gormDB); err != nil {
			infra.Close()
			return nil, err
		}
		logger.Info("database migrated")
	}

	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	_ = i.SQLDB.Close()
}

// Migrate creates or updates every table the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&auth.User{},
		&auth.Profile{},
		&taxrate.TaxRate{},
		&taxdetails.EmployeeTaxDetails{},
		&payroll.PayrollPeriod{},
		&payroll.PayrollItem{},
		&payslip.Payslip{},
		&leave.Leave{},
		&attendance.Attendance{},
		&dashboard.ActivityLog{},
		&counter.Counter{},
		&kafka.OutboxEventModel{},
	)
}

// BuildApp connects the infrastructure and mounts every module on router.
// The returned Infra must be closed by the caller.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (*Infra, error) {
	if err := cfg.ValidateAPI(); err != nil {
		return nil, err
	}

	infra, err := Connect(cfg, logger, true)
	if err != nil {
		return nil, err
	}

	if err := registerModules(router, infra); err != nil {
		infra.Close()
		return nil, err
	}
	return infra, nil
}
