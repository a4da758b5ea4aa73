package migrate

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/venomid/internal/conf"
)

func TestMigrateCommandIsRepeatable(t *testing.T) {
	t.Parallel()

	settings := conf.DefaultSettings()
	settings.Store.SQLite.Path = filepath.Join(t.TempDir(), "kb.db")

	for range 2 {
		cmd := Command(settings)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.ExecuteContext(t.Context()))
		assert.Contains(t, out.String(), "Schema ready")
	}
	assert.FileExists(t, settings.Store.SQLite.Path)
}
