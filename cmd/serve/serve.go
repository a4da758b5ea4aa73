package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/tphakala/venomid/internal/api"
	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/datastore"
	"github.com/tphakala/venomid/internal/inference"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/observability"
	"github.com/tphakala/venomid/internal/telemetry"
)

const sentryFlushTimeout = 2 * time.Second

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the inference HTTP server",
		Long:  "Serve the inference API and web UI until interrupted. The metrics endpoint runs on its own listener when telemetry.metrics.listen is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return Run(ctx, settings)
		},
	}

	cmd.Flags().String("port", "", "Port to listen on (overrides webserver.port)")
	cmd.Flags().String("listen", "", "Dedicated metrics listen address (overrides telemetry.metrics.listen)")
	_ = viper.BindPFlag("webserver.port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("telemetry.metrics.listen", cmd.Flags().Lookup("listen"))

	return cmd
}

// Run serves until ctx is cancelled or a listener fails.
func Run(ctx context.Context, settings *conf.Settings) error {
	log := logger.Global().Module("main")
	defer telemetry.Flush(sentryFlushTimeout)

	var m *observability.Metrics
	if settings.Telemetry.Metrics.Enabled {
		var err error
		if m, err = observability.NewMetrics(); err != nil {
			return err
		}
	}

	storeCfg := datastore.Config{SlowQuery: settings.Store.SlowQuery}
	var svcOpts []inference.Option
	if m != nil {
		storeCfg.Metrics = m.Datastore
		svcOpts = append(svcOpts, inference.WithRecorder(m.Inference))
	}

	opener, err := datastore.NewOpener(&settings.Store, storeCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := opener.Close(); err != nil {
			log.Warn("failed to close store", logger.Error(err))
		}
	}()

	service := inference.NewService(opener, svcOpts...)
	server := api.New(&settings.WebServer, service,
		api.WithVersion(settings.Version),
		api.WithMetrics(m, settings.Telemetry.Metrics.Listen == ""))

	log.Info("starting venomid",
		logger.String("version", settings.Version),
		logger.String("driver", settings.Store.Driver),
		logger.String("address", settings.WebServer.ListenAddress()))

	var endpoint *observability.Endpoint
	if m != nil && settings.Telemetry.Metrics.Listen != "" {
		if endpoint, err = observability.NewEndpoint(settings, m); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx) })
	if endpoint != nil {
		g.Go(func() error { return endpoint.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("venomid stopped")
	return nil
}
