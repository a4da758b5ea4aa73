package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/venomid/cmd/infer"
	"github.com/tphakala/venomid/cmd/migrate"
	"github.com/tphakala/venomid/cmd/seed"
	"github.com/tphakala/venomid/cmd/serve"
	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/telemetry"
)

// RootCommand creates the root command. settings is filled in by the
// persistent pre-run hook before any subcommand runs; Version and
// BuildDate set by the caller are preserved.
func RootCommand(settings *conf.Settings) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "venomid",
		Short:         "Marine envenomation species inference",
		Long:          "venomid ranks candidate venomous marine species for a free-text description of envenomation symptoms.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       settings.Version,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config.yaml (default: search the standard locations)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug output")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite knowledge base (overrides store.sqlite.path)")

	// flags override values from the file and the environment
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("store.sqlite.path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return initialize(configFile, settings)
	}

	rootCmd.AddCommand(
		serve.Command(settings),
		infer.Command(settings),
		seed.Command(settings),
		migrate.Command(settings),
	)
	return rootCmd
}

// initialize loads the configuration and sets up logging and error
// telemetry.
func initialize(configFile string, settings *conf.Settings) error {
	loaded, err := conf.Load(configFile)
	if err != nil {
		return err
	}
	loaded.Version = settings.Version
	loaded.BuildDate = settings.BuildDate
	*settings = *loaded

	if settings.Debug {
		settings.Logging.DefaultLevel = string(logger.LogLevelDebug)
		if settings.Logging.Console != nil {
			settings.Logging.Console.Level = string(logger.LogLevelDebug)
		}
	}

	central, err := logger.NewCentralLogger(&settings.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.SetGlobal(central)

	if err := telemetry.InitSentry(settings); err != nil {
		// telemetry is optional; keep running without it
		central.Module("main").Warn("failed to initialize error reporting", logger.Error(err))
	}
	return nil
}
