package conf

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnvBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		wantErr bool
	}{
		{"true", false},
		{"0", false},
		{" TRUE ", false},
		{"yes", true},
		{"", true},
		{"1.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			err := validateEnvBool(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid boolean value")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateEnvPort(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateEnvPort("8080"))
	assert.NoError(t, validateEnvPort("65535"))
	assert.Error(t, validateEnvPort("0"))
	assert.Error(t, validateEnvPort("65536"))
	assert.Error(t, validateEnvPort("http"))
}

func TestValidateEnvDriver(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{DriverSQLite, DriverMySQL, DriverPostgres} {
		assert.NoError(t, validateEnvDriver(driver))
	}
	assert.Error(t, validateEnvDriver("SQLite"))
	assert.Error(t, validateEnvDriver("mongodb"))
}

func TestValidateEnvPath(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateEnvPath("/var/lib/venomid/knowledge-base.db"))
	assert.NoError(t, validateEnvPath("knowledge-base.db"))
	assert.Error(t, validateEnvPath("../../etc/passwd"))
}

func TestValidateEnvLogLevel(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateEnvLogLevel("trace"))
	assert.NoError(t, validateEnvLogLevel("WARN"))
	assert.Error(t, validateEnvLogLevel("verbose"))
}

func TestBindEnvVarsReportsInvalidValues(t *testing.T) {
	t.Setenv("VENOMID_WEBSERVER_PORT", "not-a-port")
	t.Setenv("VENOMID_DEBUG", "maybe")

	err := bindEnvVars(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VENOMID_WEBSERVER_PORT")
	assert.Contains(t, err.Error(), "VENOMID_DEBUG")
}

func TestEnvBindingsUsePrefix(t *testing.T) {
	t.Parallel()

	for _, b := range getEnvBindings() {
		assert.Regexp(t, "^"+EnvPrefix+"_", b.EnvVar)
	}
}
