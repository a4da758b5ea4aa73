// Package telemetry wires opt-in Sentry error reporting into the errors package.
package telemetry

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/errors"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/privacy"
)

var sentryInitialized atomic.Bool

// GetLogger returns the telemetry module logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("telemetry")
}

// InitSentry initializes the Sentry SDK when error reporting is enabled and
// installs the Sentry reporter for enhanced errors. It is a no-op otherwise.
func InitSentry(settings *conf.Settings) error {
	return initSentry(settings, nil)
}

func initSentry(settings *conf.Settings, transport sentry.Transport) error {
	sentrySettings := settings.Telemetry.Sentry
	if !sentrySettings.Enabled {
		GetLogger().Debug("sentry error reporting is disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:        sentrySettings.DSN,
		Transport:  transport,
		SampleRate: sentrySettings.SampleRate,
		Debug:      sentrySettings.Debug,

		AttachStacktrace: false,
		Environment:      sentrySettings.Environment,
		ServerName:       "", // keep the hostname out of events
		Release:          fmt.Sprintf("venomid@%s", settings.Version),

		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			return applyPrivacyFilters(event)
		},
	})
	if err != nil {
		return errors.New(fmt.Errorf("sentry initialization failed: %w", err)).
			Category(errors.CategoryConfiguration).
			Context("operation", "init_sentry").
			Build()
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("app", settings.Main.Name)
	})

	errors.SetPrivacyScrubber(privacy.ScrubMessage)
	errors.SetTelemetryReporter(errors.NewSentryReporter(true))
	sentryInitialized.Store(true)

	GetLogger().Info("sentry error reporting enabled",
		logger.String("environment", sentrySettings.Environment),
		logger.Float64("sample_rate", sentrySettings.SampleRate))
	return nil
}

// applyPrivacyFilters drops user, host and runtime details and scrubs the
// message and exception values.
func applyPrivacyFilters(event *sentry.Event) *sentry.Event {
	event.User = sentry.User{}
	event.ServerName = ""
	event.Request = nil

	if event.Contexts != nil {
		delete(event.Contexts, "device")
		delete(event.Contexts, "os")
		delete(event.Contexts, "runtime")
	}
	if event.Tags != nil {
		delete(event.Tags, "server_name")
		delete(event.Tags, "hostname")
	}

	event.Message = errors.ScrubMessage(event.Message)
	for i := range event.Exception {
		event.Exception[i].Value = errors.ScrubMessage(event.Exception[i].Value)
	}
	return event
}

// Flush waits up to timeout for queued events. Safe to call when Sentry
// was never initialized.
func Flush(timeout time.Duration) bool {
	if !sentryInitialized.Load() {
		return true
	}
	return sentry.Flush(timeout)
}
