package datastore

import (
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/venomid/internal/conf"
)

func TestSQLiteDSN(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "file:/data/kb.db?_busy_timeout=5000&mode=ro", sqliteDSN("/data/kb.db", true))
	assert.Equal(t, "file:/data/kb.db?_busy_timeout=5000&_foreign_keys=ON", sqliteDSN("/data/kb.db", false))
}

func TestMySQLDSNRoundTripsCredentials(t *testing.T) {
	t.Parallel()

	settings := &conf.DefaultSettings().Store
	settings.MySQL.Host = "db.internal"
	settings.MySQL.Port = "3307"
	settings.MySQL.Username = "venom"
	settings.MySQL.Password = "p@ss/word"
	settings.MySQL.Database = "kb"

	parsed, err := mysqldriver.ParseDSN(mysqlDSN(settings))
	require.NoError(t, err)
	assert.Equal(t, "venom", parsed.User)
	assert.Equal(t, "p@ss/word", parsed.Passwd)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "kb", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}

func TestPostgresDSN(t *testing.T) {
	t.Parallel()

	settings := &conf.DefaultSettings().Store
	settings.Postgres.Host = "pg"
	settings.Postgres.Port = "5432"
	settings.Postgres.Username = "venom"
	settings.Postgres.Password = "it's secret"
	settings.Postgres.Database = "kb"
	settings.Postgres.SSLMode = ""

	assert.Equal(t,
		`host=pg port=5432 user=venom password='it\'s secret' dbname=kb sslmode=disable`,
		postgresDSN(settings))
}
