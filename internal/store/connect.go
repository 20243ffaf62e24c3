package store

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
)

// Connect opens a *gorm.DB for cfg.StoreDriver, generalizing the dialect
// switch in localnerve-jam-build-propsdb's database.Connect from "pick a DSN per dialect" to
// the same shape here (mysql/postgres/sqlite/sqlserver).
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.StoreDriver {
	case "mysql", "mariadb":
		dsn := cfg.StoreDSN
		if dsn == "" {
			dsn = fmt.Sprintf("root@tcp(127.0.0.1:3306)/%s?charset=utf8mb4&parseTime=True&loc=Local", cfg.StoreDatabase)
		}
		dialector = mysql.Open(dsn)

	case "postgres", "postgresql":
		dsn := cfg.StoreDSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=127.0.0.1 user=postgres dbname=%s sslmode=disable", cfg.StoreDatabase)
		}
		dialector = postgres.Open(dsn)

	case "sqlite":
		path := cfg.StoreDSN
		if path == "" {
			path = cfg.StoreDatabase
		}
		dialector = sqlite.Open(path)

	case "sqlserver", "mssql":
		dialector = sqlserver.Open(cfg.StoreDSN)

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.StoreConnectionLimit)
	sqlDB.SetMaxIdleConns(cfg.StoreConnectionLimit / 2)

	log.Info("connected to store", zap.String("driver", cfg.StoreDriver), zap.String("database", cfg.StoreDatabase))

	return db, nil
}

// AutoMigrate creates the five mirrored entity tables if absent. Full-text
// setup and composite indexes are handled by each Collection's
// DropCollection on first clone, not here — AutoMigrate only guarantees the
// tables exist so a webhook can land before the first clone completes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&GameModel{},
		&AlternativeNameModel{},
		&ExternalGameModel{},
		&GameLocalizationModel{},
		&CompanyModel{},
	)
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies store connectivity, used by the health check.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
