package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ougirez/agreste/internal/api"
	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/logger"
	"github.com/ougirez/agreste/internal/service/census"
	"github.com/ougirez/agreste/internal/service/chart"
	"github.com/ougirez/agreste/internal/service/importer"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the datasets and serve the dashboard API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		l, err := newLoader(s)
		if err != nil {
			return err
		}

		bundle, err := l.Load(ctx)
		if err != nil {
			return fmt.Errorf("load datasets: %w", err)
		}

		censusService, err := census.NewService(bundle)
		if err != nil {
			return fmt.Errorf("census.NewService: %w", err)
		}

		deps := api.Deps{
			Census: censusService,
			Charts: chart.NewService(
				chart.NewRenderer(viper.GetInt(constants.ViperChartWidthKey), viper.GetInt(constants.ViperChartHeightKey)),
				newChartCache(),
				viper.GetDuration(constants.ViperChartCacheTTLKey),
			),
			CorsOrigins: viper.GetStringSlice(constants.ViperCorsOriginsKey),
			Debug:       viper.GetString(constants.ViperLogLevelKey) == "debug",
		}
		if s != nil {
			deps.Importer = importer.NewService(s)
		}

		svc, err := api.NewAPIService(deps)
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = viper.GetString(constants.ViperServerAddrKey)
		}

		go func() {
			<-ctx.Done()
			logger.Infof(context.Background(), "shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = svc.Shutdown(shutdownCtx)
		}()

		logger.Infof(ctx, "starting server on %s", addr)
		svc.Serve(addr)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
