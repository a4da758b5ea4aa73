package seed

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/datastore"
)

func TestSeedCommand(t *testing.T) {
	t.Parallel()

	settings := conf.DefaultSettings()
	settings.Store.SQLite.Path = filepath.Join(t.TempDir(), "kb.db")

	cmd := Command(settings)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{filepath.Join("..", "..", "internal", "datastore", "testdata", "knowledge_base.yaml")})
	require.NoError(t, cmd.ExecuteContext(t.Context()))

	assert.Contains(t, out.String(), "symptoms 4")
	assert.Contains(t, out.String(), "species 3")

	opener, err := datastore.NewOpener(&settings.Store, datastore.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = opener.Close() })

	store, err := opener.OpenStore(t.Context())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	records, err := store.Symptoms(t.Context())
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestSeedCommandRejectsMissingFile(t *testing.T) {
	t.Parallel()

	settings := conf.DefaultSettings()
	settings.Store.SQLite.Path = filepath.Join(t.TempDir(), "kb.db")

	cmd := Command(settings)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, cmd.ExecuteContext(t.Context()))
}
