// conf/validate.go

package conf

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/labstack/gommon/bytes"

	"github.com/tphakala/venomid/internal/logger"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateLoggingSettings(&settings.Logging); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if err := validateWebServerSettings(&settings.WebServer); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if err := validateStoreSettings(&settings.Store); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}
	if err := validateTelemetrySettings(&settings.Telemetry); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateLoggingSettings(settings *logger.LoggingConfig) error {
	var errs []string

	check := func(name, level string) {
		if level != "" && !logger.ValidLevel(level) {
			errs = append(errs, fmt.Sprintf("%s level '%s' is invalid", name, level))
		}
	}
	check("default", settings.DefaultLevel)
	if settings.Console != nil {
		check("console", settings.Console.Level)
	}
	if settings.FileOutput != nil {
		check("file", settings.FileOutput.Level)
		if settings.FileOutput.Enabled && settings.FileOutput.Path == "" {
			errs = append(errs, "file output is enabled but path is empty")
		}
	}
	for module, level := range settings.ModuleLevels {
		check("module "+module, level)
	}

	if len(errs) > 0 {
		return fmt.Errorf("logging settings errors: %v", errs)
	}
	return nil
}

func validateWebServerSettings(settings *WebServerSettings) error {
	if !settings.Enabled {
		return nil
	}
	var errs []string

	if err := validatePort(settings.Port); err != nil {
		errs = append(errs, err.Error())
	}
	if settings.BodyLimit != "" {
		if _, err := parseBodyLimit(settings.BodyLimit); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if settings.ReadTimeout < 0 || settings.WriteTimeout < 0 || settings.ShutdownTimeout < 0 {
		errs = append(errs, "webserver timeouts must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("webserver settings errors: %v", errs)
	}
	return nil
}

func validateStoreSettings(settings *StoreSettings) error {
	var errs []string

	switch settings.Driver {
	case DriverSQLite:
		if settings.SQLite.Path == "" {
			errs = append(errs, "sqlite path is required")
		}
	case DriverMySQL:
		if settings.MySQL.Host == "" || settings.MySQL.Database == "" {
			errs = append(errs, "mysql host and database are required")
		}
		if err := validatePort(settings.MySQL.Port); err != nil {
			errs = append(errs, "mysql "+err.Error())
		}
	case DriverPostgres:
		if settings.Postgres.Host == "" || settings.Postgres.Database == "" {
			errs = append(errs, "postgres host and database are required")
		}
		if err := validatePort(settings.Postgres.Port); err != nil {
			errs = append(errs, "postgres "+err.Error())
		}
	default:
		errs = append(errs, fmt.Sprintf("unsupported store driver '%s'", settings.Driver))
	}

	if settings.SlowQuery < 0 {
		errs = append(errs, "slow query threshold must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("store settings errors: %v", errs)
	}
	return nil
}

func validateTelemetrySettings(settings *TelemetrySettings) error {
	var errs []string

	if settings.Sentry.Enabled && settings.Sentry.DSN == "" {
		errs = append(errs, "sentry is enabled but dsn is empty")
	}
	if settings.Sentry.SampleRate < 0 || settings.Sentry.SampleRate > 1 {
		errs = append(errs, fmt.Sprintf("sentry sample rate must be between 0 and 1, got %g", settings.Sentry.SampleRate))
	}
	if settings.Metrics.Enabled && settings.Metrics.Listen != "" {
		if _, _, err := net.SplitHostPort(settings.Metrics.Listen); err != nil {
			errs = append(errs, fmt.Sprintf("metrics listen address '%s' is invalid: %v", settings.Metrics.Listen, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry settings errors: %v", errs)
	}
	return nil
}

func validatePort(port string) error {
	p, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("port '%s' must be a number between 1 and 65535", port)
	}
	return nil
}

// parseBodyLimit accepts the same notation as echo's BodyLimit middleware.
func parseBodyLimit(limit string) (int64, error) {
	n, err := bytes.Parse(limit)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid body limit '%s'", limit)
	}
	return n, nil
}
