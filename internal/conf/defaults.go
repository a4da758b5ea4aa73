// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Default values shared with the CLI flags
const (
	DefaultSQLitePath      = "knowledge-base.db"
	DefaultWebServerPort   = "8080"
	DefaultBodyLimit       = "64K"
	DefaultSlowQuery       = 200 * time.Millisecond
	DefaultShutdownTimeout = 10 * time.Second
)

// setDefaultConfig registers defaults for every configuration key.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("main.name", "venomid")

	v.SetDefault("logging.default_level", "info")
	v.SetDefault("logging.timezone", "Local")
	v.SetDefault("logging.console.enabled", true)
	v.SetDefault("logging.console.level", "info")
	v.SetDefault("logging.file_output.enabled", false)
	v.SetDefault("logging.file_output.path", "logs/venomid.log")
	v.SetDefault("logging.file_output.level", "info")

	v.SetDefault("webserver.enabled", true)
	v.SetDefault("webserver.host", "")
	v.SetDefault("webserver.port", DefaultWebServerPort)
	v.SetDefault("webserver.allowedorigins", []string{"*"})
	v.SetDefault("webserver.bodylimit", DefaultBodyLimit)
	v.SetDefault("webserver.frontenddir", "")
	v.SetDefault("webserver.readtimeout", 15*time.Second)
	v.SetDefault("webserver.writetimeout", 30*time.Second)
	v.SetDefault("webserver.shutdowntimeout", DefaultShutdownTimeout)

	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.slowquery", DefaultSlowQuery)
	v.SetDefault("store.sqlite.path", DefaultSQLitePath)
	v.SetDefault("store.mysql.host", "localhost")
	v.SetDefault("store.mysql.port", "3306")
	v.SetDefault("store.mysql.username", "")
	v.SetDefault("store.mysql.password", "")
	v.SetDefault("store.mysql.database", "venomid")
	v.SetDefault("store.postgres.host", "localhost")
	v.SetDefault("store.postgres.port", "5432")
	v.SetDefault("store.postgres.username", "")
	v.SetDefault("store.postgres.password", "")
	v.SetDefault("store.postgres.database", "venomid")
	v.SetDefault("store.postgres.sslmode", "disable")

	v.SetDefault("telemetry.sentry.enabled", false)
	v.SetDefault("telemetry.sentry.dsn", "")
	v.SetDefault("telemetry.sentry.environment", "production")
	v.SetDefault("telemetry.sentry.samplerate", 1.0)
	v.SetDefault("telemetry.sentry.debug", false)
	v.SetDefault("telemetry.metrics.enabled", true)
	v.SetDefault("telemetry.metrics.listen", "")
}
