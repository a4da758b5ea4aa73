package telemetry

import (
	"fmt"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/errors"
)

func TestInitSentryDisabledIsNoop(t *testing.T) {
	settings := conf.DefaultSettings()

	require.NoError(t, InitSentry(settings))
	assert.Nil(t, errors.GetTelemetryReporter())
	assert.True(t, Flush(time.Millisecond))
}

func TestEnhancedErrorsReachSentry(t *testing.T) {
	transport := NewMockTransport()
	settings := conf.DefaultSettings()
	settings.Version = "test"
	settings.Telemetry.Sentry.Enabled = true
	settings.Telemetry.Sentry.DSN = "https://public@example.com/1"
	settings.Telemetry.Sentry.Environment = "test"

	require.NoError(t, initSentry(settings, transport))
	t.Cleanup(func() {
		errors.SetTelemetryReporter(nil)
		errors.SetPrivacyScrubber(nil)
		sentryInitialized.Store(false)
	})

	ee := errors.New(fmt.Errorf("open mysql venom:hunter2@tcp(db:3306)/kb: connection refused")).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", "open_session").
		Build()
	require.True(t, ee.IsReported())

	require.True(t, transport.WaitForEventCount(1, 2*time.Second))
	event := transport.Events()[0]

	assert.Equal(t, sentry.LevelError, event.Level)
	assert.NotContains(t, event.Message, "hunter2")
	require.Len(t, event.Exception, 1)
	assert.Equal(t, "Datastore Database Error Open Session", event.Exception[0].Type)
	assert.NotContains(t, event.Exception[0].Value, "hunter2")
	assert.Empty(t, event.ServerName)
	assert.Contains(t, event.Exception[0].Value, "[DSN]")
}

func TestApplyPrivacyFilters(t *testing.T) {
	t.Parallel()

	event := sentry.NewEvent()
	event.ServerName = "lab-host"
	event.User = sentry.User{ID: "42", IPAddress: "10.0.0.1"}
	event.Tags = map[string]string{"hostname": "lab-host", "component": "api"}
	event.Contexts = map[string]sentry.Context{"os": {"name": "linux"}, "app": {"v": "1"}}
	event.Message = "GET https://example.org/api?token=abc failed"

	filtered := applyPrivacyFilters(event)

	assert.Empty(t, filtered.ServerName)
	assert.True(t, filtered.User.IsEmpty())
	assert.NotContains(t, filtered.Tags, "hostname")
	assert.Contains(t, filtered.Tags, "component")
	assert.NotContains(t, filtered.Contexts, "os")
	assert.Contains(t, filtered.Contexts, "app")
	assert.NotContains(t, filtered.Message, "token=abc")
}
