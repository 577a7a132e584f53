package main

import (
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zagdt/e-library-backend-sub001/internal/discovery"
	"github.com/zagdt/e-library-backend-sub001/internal/logging"
	"github.com/zagdt/e-library-backend-sub001/internal/searchlog"
	"github.com/zagdt/e-library-backend-sub001/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the discovery HTTP service",
	Long: `Serve exposes federated search over HTTP:

  GET /discovery/search?q=<term>   run a federated query
  GET /discovery/sources           list the source catalog
  GET /health                      liveness check

The server runs until interrupted and then drains in-flight requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		log, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		defer log.Sync()

		httpClient := &http.Client{Timeout: cfg.Discovery.Timeout}
		registry := discovery.BuildRegistry(cfg.Discovery, httpClient)
		aggregator := discovery.NewAggregator(registry, cfg.Discovery, log)

		var audit *searchlog.Store
		if cfg.SearchLog.Enabled {
			audit, err = searchlog.Open(cfg.SearchLog.Path)
			if err != nil {
				return err
			}
			defer audit.Close()
			log.Info("search log enabled", zap.String("path", cfg.SearchLog.Path))
		}

		log.Info("configured sources", zap.Strings("sources", registry.Names()))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg.Server, aggregator, registry, audit, log)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
