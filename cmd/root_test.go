package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/venomid/internal/conf"
)

func TestRootCommandWiring(t *testing.T) {
	root := RootCommand(&conf.Settings{Version: "1.0.0"})

	assert.Equal(t, "1.0.0", root.Version)
	for _, flag := range []string{"config", "debug", "db"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}

	for _, name := range []string{"serve", "infer", "seed", "migrate"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}
