package infer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/datastore"
	"github.com/tphakala/venomid/internal/inference"
	"github.com/tphakala/venomid/internal/logger"
)

// Output formats
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Command creates the infer command.
func Command(settings *conf.Settings) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "infer <symptoms...>",
		Short: "Rank candidate species for a symptom description",
		Long:  "Run one inference against the configured knowledge base. All arguments are joined into one symptom text.",
		Example: `  venomid infer "numbness and tingling, immediate onset"
  venomid infer --format table swelling redness`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != FormatJSON && format != FormatTable {
				return fmt.Errorf("unsupported format %q (use %s or %s)", format, FormatJSON, FormatTable)
			}

			opener, err := datastore.NewOpener(&settings.Store, datastore.Config{SlowQuery: settings.Store.SlowQuery})
			if err != nil {
				return err
			}
			defer func() {
				if err := opener.Close(); err != nil {
					logger.Global().Module("main").Warn("failed to close store", logger.Error(err))
				}
			}()

			results, err := inference.NewService(opener).Infer(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return Print(cmd.OutOrStdout(), results, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "Output format: json or table")
	return cmd
}

// Print writes results in the given format.
func Print(w io.Writer, results []inference.ResultEntry, format string) error {
	if results == nil {
		results = []inference.ResultEntry{}
	}

	if format == FormatTable {
		return printTable(w, results)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func printTable(w io.Writer, results []inference.ResultEntry) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No matching species.")
		return err
	}

	data := pterm.TableData{{"#", "Species", "Score", "Symptom", "Onset", "Duration", "Reference"}}
	for i := range results {
		r := &results[i]
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.CommonName,
			strconv.FormatFloat(r.MatchScore, 'f', 2, 64),
			r.Symptom,
			orDash(r.OnsetTime),
			orDash(r.Duration),
			orDash(r.DOIURL),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
