package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ougirez/agreste/internal/pkg/constants"
)

const envPrefix = "AGRESTE"

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperServerAddrKey, ":8080")
	v.SetDefault(constants.ViperCorsOriginsKey, []string{"http://localhost:3000"})

	v.SetDefault(constants.ViperLogLevelKey, "info")
	v.SetDefault(constants.ViperLogFormatKey, "json")

	v.SetDefault(constants.ViperDataSourceKey, constants.DataSourceFiles)
	v.SetDefault(constants.ViperDataDirKey, "data")
	v.SetDefault(constants.ViperCensusFileKey, "ra2020.json")
	v.SetDefault(constants.ViperRegionsFileKey, "sau_by_region_year.json")
	v.SetDefault(constants.ViperDepartmentsFileKey, "sau_by_department_year.json")
	v.SetDefault(constants.ViperFetchRetriesKey, 10)
	v.SetDefault(constants.ViperFetchBackoffKey, 200*time.Millisecond)

	v.SetDefault(constants.ViperRedisDBKey, 0)

	v.SetDefault(constants.ViperChartCacheTTLKey, time.Hour)
	v.SetDefault(constants.ViperChartWidthKey, 800)
	v.SetDefault(constants.ViperChartHeightKey, 400)
}

// Load configures the global viper instance: defaults, then the optional yaml file at
// path (or ./config.yaml), then AGRESTE_* environment variables, with .env loaded first.
func Load(path string) error {
	_ = godotenv.Load(".env")

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("viper.ReadInConfig: %w", err)
		}
	}

	return validate()
}

func validate() error {
	switch source := viper.GetString(constants.ViperDataSourceKey); source {
	case constants.DataSourceFiles:
	case constants.DataSourceHTTP:
		if viper.GetString(constants.ViperDataBaseURLKey) == "" {
			return fmt.Errorf("%s is required when %s=%s", constants.ViperDataBaseURLKey, constants.ViperDataSourceKey, source)
		}
	case constants.DataSourcePostgres:
		if viper.GetString(constants.ViperDatabaseURLKey) == "" {
			return fmt.Errorf("%s is required when %s=%s", constants.ViperDatabaseURLKey, constants.ViperDataSourceKey, source)
		}
	default:
		return fmt.Errorf("unknown %s %q", constants.ViperDataSourceKey, source)
	}
	return nil
}
