package datastore

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tphakala/venomid/internal/conf"
)

// PostgresManager handles a knowledge base on a PostgreSQL server. Table
// names are mixed case, so GORM quotes them in every statement.
type PostgresManager struct {
	db       *gorm.DB
	location string
}

// postgresDSN renders a keyword/value connection string for pgx.
func postgresDSN(settings *conf.StoreSettings) string {
	pg := settings.Postgres
	sslMode := pg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	parts := []string{
		"host=" + quoteDSNValue(pg.Host),
		"port=" + quoteDSNValue(pg.Port),
		"user=" + quoteDSNValue(pg.Username),
		"password=" + quoteDSNValue(pg.Password),
		"dbname=" + quoteDSNValue(pg.Database),
		"sslmode=" + quoteDSNValue(sslMode),
	}
	return strings.Join(parts, " ")
}

// quoteDSNValue quotes values containing spaces or quotes as libpq does.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// NewPostgresManager connects to the server in settings.Postgres.
func NewPostgresManager(settings *conf.StoreSettings, cfg Config) (*PostgresManager, error) {
	location := fmt.Sprintf("%s:%s/%s", settings.Postgres.Host, settings.Postgres.Port, settings.Postgres.Database)

	db, err := gorm.Open(postgres.Open(postgresDSN(settings)), gormConfig(cfg))
	if err != nil {
		return nil, dbError(fmt.Errorf("failed to open PostgreSQL database: %w", err), "open_session", "location", location)
	}
	if err := configurePool(db); err != nil {
		return nil, err
	}
	return &PostgresManager{db: db, location: location}, nil
}

// DB returns the underlying GORM database.
func (m *PostgresManager) DB() *gorm.DB { return m.db }

// Driver returns conf.DriverPostgres.
func (m *PostgresManager) Driver() string { return conf.DriverPostgres }

// Path returns host:port/database.
func (m *PostgresManager) Path() string { return m.location }

// Close closes the connection pool.
func (m *PostgresManager) Close() error { return closeGorm(m.db) }
