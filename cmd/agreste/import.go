package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/logger"
	"github.com/ougirez/agreste/internal/service/importer"
	"github.com/ougirez/agreste/internal/service/loader"
)

var importDir string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the JSON datasets into Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		s, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()
		if s == nil {
			return fmt.Errorf("%s is required (AGRESTE_DATABASE_URL)", constants.ViperDatabaseURLKey)
		}

		dir := importDir
		if dir == "" {
			dir = viper.GetString(constants.ViperDataDirKey)
		}

		bundle, err := loader.NewDocumentLoader(loader.FileFetcher{Dir: dir}, documentNames()).Load(ctx)
		if err != nil {
			return fmt.Errorf("load datasets: %w", err)
		}

		res, err := importer.NewService(s).Import(ctx, bundle)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		logger.Infof(ctx, "import %s complete", res.ID)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "", "dataset directory (default from config)")
	rootCmd.AddCommand(importCmd)
}
