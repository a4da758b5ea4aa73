// env.go - Environment variable configuration and validation
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/tphakala/venomid/internal/logger"
)

// EnvPrefix prefixes every bound environment variable
const EnvPrefix = "VENOMID"

// envBinding holds metadata for environment variable bindings (internal use)
type envBinding struct {
	ConfigKey string
	EnvVar    string
	Validate  func(string) error
}

func getEnvBindings() []envBinding {
	return []envBinding{
		{"debug", "VENOMID_DEBUG", validateEnvBool},
		{"logging.default_level", "VENOMID_LOG_LEVEL", validateEnvLogLevel},

		{"webserver.host", "VENOMID_WEBSERVER_HOST", nil},
		{"webserver.port", "VENOMID_WEBSERVER_PORT", validateEnvPort},
		{"webserver.frontenddir", "VENOMID_WEBSERVER_FRONTENDDIR", validateEnvPath},

		{"store.driver", "VENOMID_STORE_DRIVER", validateEnvDriver},
		{"store.sqlite.path", "VENOMID_STORE_SQLITE_PATH", validateEnvPath},
		{"store.mysql.host", "VENOMID_STORE_MYSQL_HOST", nil},
		{"store.mysql.port", "VENOMID_STORE_MYSQL_PORT", validateEnvPort},
		{"store.mysql.username", "VENOMID_STORE_MYSQL_USERNAME", nil},
		{"store.mysql.password", "VENOMID_STORE_MYSQL_PASSWORD", nil},
		{"store.mysql.database", "VENOMID_STORE_MYSQL_DATABASE", nil},
		{"store.postgres.host", "VENOMID_STORE_POSTGRES_HOST", nil},
		{"store.postgres.port", "VENOMID_STORE_POSTGRES_PORT", validateEnvPort},
		{"store.postgres.username", "VENOMID_STORE_POSTGRES_USERNAME", nil},
		{"store.postgres.password", "VENOMID_STORE_POSTGRES_PASSWORD", nil},
		{"store.postgres.database", "VENOMID_STORE_POSTGRES_DATABASE", nil},

		{"telemetry.sentry.enabled", "VENOMID_SENTRY_ENABLED", validateEnvBool},
		{"telemetry.sentry.dsn", "VENOMID_SENTRY_DSN", nil},
		{"telemetry.metrics.enabled", "VENOMID_METRICS_ENABLED", validateEnvBool},
		{"telemetry.metrics.listen", "VENOMID_METRICS_LISTEN", nil},
	}
}

// bindEnvVars binds every variable and collects validation problems. Bad
// values are still bound; validation of the final Settings rejects them.
func bindEnvVars(v *viper.Viper) error {
	var warnings []string

	for _, binding := range getEnvBindings() {
		if err := v.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to bind %s: %v", binding.EnvVar, err))
			continue
		}

		if binding.Validate == nil {
			continue
		}
		if envValue := os.Getenv(binding.EnvVar); envValue != "" {
			if err := binding.Validate(envValue); err != nil {
				warnings = append(warnings, fmt.Sprintf("Invalid %s value '%s': %v", binding.EnvVar, envValue, err))
			}
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("environment variable issues:\n  - %s", strings.Join(warnings, "\n  - "))
	}
	return nil
}

func configureEnvironmentVariables(v *viper.Viper) error {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return bindEnvVars(v)
}

func validateEnvBool(value string) error {
	if _, err := strconv.ParseBool(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid boolean value '%s': must be true/false, 1/0, t/f, TRUE/FALSE, T/F", value)
	}
	return nil
}

func validateEnvPort(value string) error {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

func validateEnvLogLevel(value string) error {
	if !logger.ValidLevel(strings.ToLower(value)) {
		return fmt.Errorf("log level must be one of trace, debug, info, warn, error; got '%s'", value)
	}
	return nil
}

func validateEnvDriver(value string) error {
	switch value {
	case DriverSQLite, DriverMySQL, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("store driver must be %s, %s or %s; got '%s'", DriverSQLite, DriverMySQL, DriverPostgres, value)
	}
}

func validateEnvPath(value string) error {
	cleanedPath := filepath.Clean(value)
	for part := range strings.SplitSeq(cleanedPath, string(os.PathSeparator)) {
		if part == ".." {
			return fmt.Errorf("path traversal detected in cleaned path: %s", cleanedPath)
		}
	}
	return nil
}
