// Package datastore opens the envenomation knowledge base on SQLite, MySQL
// or PostgreSQL and adapts it to the inference reference store.
package datastore

import (
	"time"

	"gorm.io/gorm"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/observability/metrics"
)

// Manager owns one GORM handle on the knowledge base.
type Manager interface {
	// DB returns the underlying GORM database.
	DB() *gorm.DB
	// Driver returns the conf driver name.
	Driver() string
	// Path returns the database location (file path for SQLite,
	// host:port/database for servers). It never contains credentials.
	Path() string
	// Close closes the database connection.
	Close() error
}

// Config holds options shared by all managers.
type Config struct {
	// ReadOnly opens SQLite files read-only and refuses to create them.
	ReadOnly bool
	// SlowQuery is the threshold above which statements are logged at WARN.
	SlowQuery time.Duration
	// Metrics receives session and query metrics. May be nil.
	Metrics *metrics.DatastoreMetrics
}

func gormConfig(cfg Config) *gorm.Config {
	return &gorm.Config{
		Logger:                 logger.NewGormLoggerAdapter(GetLogger(), cfg.SlowQuery),
		SkipDefaultTransaction: cfg.ReadOnly,
	}
}

// NewManager opens the store selected by settings.Driver.
func NewManager(settings *conf.StoreSettings, cfg Config) (Manager, error) {
	switch settings.Driver {
	case conf.DriverSQLite, "":
		return NewSQLiteManager(settings.SQLite.Path, cfg)
	case conf.DriverMySQL:
		return NewMySQLManager(settings, cfg)
	case conf.DriverPostgres:
		return NewPostgresManager(settings, cfg)
	default:
		return nil, configError("unsupported store driver %q", settings.Driver)
	}
}

// closeGorm closes the connection pool behind db.
func closeGorm(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
