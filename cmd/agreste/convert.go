package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ougirez/agreste/internal/domain"
	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/service/converter"
)

var (
	convertOut   string
	convertLevel string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert Agreste workbooks into dashboard datasets",
}

var convertCensusCmd = &cobra.Command{
	Use:   "census <RA2020_001_TranchesSAU.xlsx>",
	Short: "Convert the RA 2020 size-class workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := converter.ConvertCensus(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("convert census: %w", err)
		}

		out := convertOut
		if out == "" {
			out = filepath.Join(viper.GetString(constants.ViperDataDirKey), viper.GetString(constants.ViperCensusFileKey))
		}
		return converter.WriteJSON(out, c)
	},
}

var convertSeriesCmd = &cobra.Command{
	Use:   "series <SAA workbook.xlsx>",
	Short: "Convert an SAA regional or departmental workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := domain.Level(convertLevel)

		ds, err := converter.ConvertSeries(cmd.Context(), args[0], converter.SeriesOpts{Level: level})
		if err != nil {
			return fmt.Errorf("convert series: %w", err)
		}

		out := convertOut
		if out == "" {
			key := constants.ViperDepartmentsFileKey
			if level == domain.LevelRegions {
				key = constants.ViperRegionsFileKey
			}
			out = filepath.Join(viper.GetString(constants.ViperDataDirKey), viper.GetString(key))
		}
		return converter.WriteJSON(out, ds)
	},
}

func init() {
	convertCmd.PersistentFlags().StringVarP(&convertOut, "out", "o", "", "output file (default: the configured dataset path)")
	convertSeriesCmd.Flags().StringVar(&convertLevel, "level", string(domain.LevelDepartments), "regions or departments")

	convertCmd.AddCommand(convertCensusCmd, convertSeriesCmd)
	rootCmd.AddCommand(convertCmd)
}
