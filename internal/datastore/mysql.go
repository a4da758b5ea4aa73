package datastore

import (
	"fmt"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/tphakala/venomid/internal/conf"
)

// Pool settings shared by the server backed managers.
const (
	maxIdleConns    = 5
	maxOpenConns    = 25
	connMaxLifetime = time.Hour
)

// MySQLManager handles a knowledge base on a MySQL server.
type MySQLManager struct {
	db       *gorm.DB
	location string // host:port/database for display
}

// mysqlDSN renders the connection string with go-sql-driver's own
// formatter so credentials are escaped correctly.
func mysqlDSN(settings *conf.StoreSettings) string {
	c := mysqldriver.NewConfig()
	c.User = settings.MySQL.Username
	c.Passwd = settings.MySQL.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(settings.MySQL.Host, settings.MySQL.Port)
	c.DBName = settings.MySQL.Database
	c.ParseTime = true
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

// NewMySQLManager connects to the server in settings.MySQL.
func NewMySQLManager(settings *conf.StoreSettings, cfg Config) (*MySQLManager, error) {
	location := fmt.Sprintf("%s:%s/%s", settings.MySQL.Host, settings.MySQL.Port, settings.MySQL.Database)

	db, err := gorm.Open(mysql.Open(mysqlDSN(settings)), gormConfig(cfg))
	if err != nil {
		return nil, dbError(fmt.Errorf("failed to open MySQL database: %w", err), "open_session", "location", location)
	}
	return newMySQLManager(db, location)
}

// newMySQLManager wraps an opened handle and configures its pool.
func newMySQLManager(db *gorm.DB, location string) (*MySQLManager, error) {
	if err := configurePool(db); err != nil {
		return nil, err
	}
	return &MySQLManager{db: db, location: location}, nil
}

func configurePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	return nil
}

// DB returns the underlying GORM database.
func (m *MySQLManager) DB() *gorm.DB { return m.db }

// Driver returns conf.DriverMySQL.
func (m *MySQLManager) Driver() string { return conf.DriverMySQL }

// Path returns host:port/database.
func (m *MySQLManager) Path() string { return m.location }

// Close closes the connection pool.
func (m *MySQLManager) Close() error { return closeGorm(m.db) }
