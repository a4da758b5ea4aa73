package infer

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/datastore"
	"github.com/tphakala/venomid/internal/inference"
)

func seededSettings(t *testing.T) *conf.Settings {
	t.Helper()

	path := filepath.Join(t.TempDir(), "kb.db")
	m, err := datastore.NewSQLiteManager(path, datastore.Config{})
	require.NoError(t, err)
	ds, err := datastore.LoadDataset(filepath.Join("..", "..", "internal", "datastore", "testdata", "knowledge_base.yaml"))
	require.NoError(t, err)
	_, err = datastore.Seed(t.Context(), m, ds, nil)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	settings := conf.DefaultSettings()
	settings.Store.Driver = conf.DriverSQLite
	settings.Store.SQLite.Path = path
	return settings
}

func TestInferCommandJSON(t *testing.T) {
	t.Parallel()

	cmd := Command(seededSettings(t))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"numbness", "and", "tingling"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))

	var results []inference.ResultEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 4)
	assert.Equal(t, "Red lionfish", results[0].CommonName)
	assert.InDelta(t, 196.21, results[0].MatchScore, 1e-9)
}

func TestInferCommandTable(t *testing.T) {
	t.Parallel()

	cmd := Command(seededSettings(t))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "table", "numbness and tingling"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))

	assert.Contains(t, out.String(), "Red lionfish")
	assert.Contains(t, out.String(), "196.21")
	assert.Contains(t, out.String(), "https://dx.doi.org/10.3390/toxins12020096")
}

func TestInferCommandRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	cmd := Command(conf.DefaultSettings())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "edema"})
	err := cmd.ExecuteContext(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestInferCommandMissingStore(t *testing.T) {
	t.Parallel()

	settings := conf.DefaultSettings()
	settings.Store.SQLite.Path = filepath.Join(t.TempDir(), "absent.db")

	cmd := Command(settings)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"edema"})
	err := cmd.ExecuteContext(t.Context())
	require.Error(t, err)
	assert.True(t, inference.IsStoreUnavailable(err))
}

func TestPrint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, nil, FormatJSON))
	assert.JSONEq(t, `[]`, buf.String())

	buf.Reset()
	require.NoError(t, Print(&buf, nil, FormatTable))
	assert.Equal(t, "No matching species.\n", buf.String())

	onset := "immediate"
	buf.Reset()
	require.NoError(t, Print(&buf, []inference.ResultEntry{{
		CommonName: "Unknown",
		MatchScore: 42.5,
		Symptom:    "edema",
		OnsetTime:  &onset,
	}}, FormatTable))
	assert.Contains(t, buf.String(), "Unknown")
	assert.Contains(t, buf.String(), "42.50")
	assert.Contains(t, buf.String(), "immediate")
}
