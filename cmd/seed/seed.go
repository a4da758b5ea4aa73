package seed

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/datastore"
	"github.com/tphakala/venomid/internal/logger"
)

// Command creates the seed command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <dataset.yaml>",
		Short: "Load reference data into the knowledge base",
		Long: "Create the knowledge base tables if needed and insert the rows of a YAML dataset. " +
			"Species, references and treatment protocols that already exist are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := datastore.LoadDataset(args[0])
			if err != nil {
				return err
			}

			m, err := datastore.NewManager(&settings.Store, datastore.Config{SlowQuery: settings.Store.SlowQuery})
			if err != nil {
				return err
			}
			defer func() {
				if err := m.Close(); err != nil {
					logger.Global().Module("main").Warn("failed to close store", logger.Error(err))
				}
			}()

			stats, err := datastore.Seed(cmd.Context(), m, ds, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, err = fmt.Fprintln(out, pterm.Green(fmt.Sprintf("Seeded %s (%s): %d rows", m.Path(), m.Driver(), stats.Total())))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "  species %d, references %d, common names %d, symptoms %d, treatments %d\n",
				stats.Species, stats.References, stats.CommonNames, stats.Symptoms, stats.Treatments)
			return err
		},
	}
}
