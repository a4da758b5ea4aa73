package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/datastore"
	"github.com/tphakala/venomid/internal/logger"
)

// Command creates the migrate command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing knowledge base tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := datastore.NewManager(&settings.Store, datastore.Config{SlowQuery: settings.Store.SlowQuery})
			if err != nil {
				return err
			}
			defer func() {
				if err := m.Close(); err != nil {
					logger.Global().Module("main").Warn("failed to close store", logger.Error(err))
				}
			}()

			if err := datastore.Migrate(cmd.Context(), m, nil); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Schema ready: %s (%s)\n", m.Path(), m.Driver())
			return err
		},
	}
}
