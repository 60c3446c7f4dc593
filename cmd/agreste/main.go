package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ougirez/agreste/internal/config"
	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "agreste",
	Short: "French agricultural census dashboard backend",
	Long:  "Converts Agreste workbooks into the dashboard datasets and serves the census, projection and SAU series API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if err := logger.Init(viper.GetString(constants.ViperLogLevelKey), viper.GetString(constants.ViperLogFormatKey)); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a yaml config file (default ./config.yaml)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
