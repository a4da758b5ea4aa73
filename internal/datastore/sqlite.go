package datastore

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/logger"
)

const sqliteBusyTimeoutMs = 5000

// SQLiteManager handles a knowledge base file.
type SQLiteManager struct {
	db     *gorm.DB
	dbPath string
}

// NewSQLiteManager opens the database file at path. With cfg.ReadOnly the
// file must already exist and is opened with mode=ro.
func NewSQLiteManager(path string, cfg Config) (*SQLiteManager, error) {
	if path == "" {
		path = conf.DefaultSQLitePath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, dbError(err, "resolve_path", "path", path)
	}

	if cfg.ReadOnly {
		if _, err := os.Stat(absPath); err != nil {
			return nil, dbError(fmt.Errorf("knowledge base not found: %w", err), "open_session", "path", absPath)
		}
	} else if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, dbError(err, "create_directory", "path", absPath)
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(absPath, cfg.ReadOnly)), gormConfig(cfg))
	if err != nil {
		return nil, dbError(fmt.Errorf("failed to open SQLite database: %w", err), "open_session", "path", absPath)
	}

	if !cfg.ReadOnly {
		GetLogger().Debug("opened SQLite knowledge base", logger.String("path", absPath))
	}

	return &SQLiteManager{db: db, dbPath: absPath}, nil
}

// sqliteDSN builds a URI filename. The journal mode is left at the
// rollback default: read-only handles cannot open a WAL database whose
// -shm file is missing.
func sqliteDSN(path string, readOnly bool) string {
	q := url.Values{}
	q.Set("_busy_timeout", fmt.Sprint(sqliteBusyTimeoutMs))
	if readOnly {
		q.Set("mode", "ro")
	} else {
		q.Set("_foreign_keys", "ON")
	}
	return "file:" + path + "?" + q.Encode()
}

// DB returns the underlying GORM database.
func (m *SQLiteManager) DB() *gorm.DB { return m.db }

// Driver returns conf.DriverSQLite.
func (m *SQLiteManager) Driver() string { return conf.DriverSQLite }

// Path returns the database file path.
func (m *SQLiteManager) Path() string { return m.dbPath }

// Close closes the database connection.
func (m *SQLiteManager) Close() error {
	if err := closeGorm(m.db); err != nil {
		return fmt.Errorf("failed to close SQLite database: %w", err)
	}
	return nil
}
