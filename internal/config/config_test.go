package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agreste/internal/pkg/constants"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, "log:\n  level: debug\n")))

	assert.Equal(t, "debug", viper.GetString(constants.ViperLogLevelKey))
	assert.Equal(t, ":8080", viper.GetString(constants.ViperServerAddrKey))
	assert.Equal(t, constants.DataSourceFiles, viper.GetString(constants.ViperDataSourceKey))
	assert.Equal(t, time.Hour, viper.GetDuration(constants.ViperChartCacheTTLKey))
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("AGRESTE_SERVER_ADDR", ":9090")

	require.NoError(t, Load(writeConfig(t, "server:\n  addr: \":7070\"\n")))
	assert.Equal(t, ":9090", viper.GetString(constants.ViperServerAddrKey))
}

func TestLoad_SourceRequirements(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	err := Load(writeConfig(t, "data:\n  source: http\n"))
	assert.ErrorContains(t, err, constants.ViperDataBaseURLKey)

	viper.Reset()
	err = Load(writeConfig(t, "data:\n  source: postgres\n"))
	assert.ErrorContains(t, err, constants.ViperDatabaseURLKey)

	viper.Reset()
	err = Load(writeConfig(t, "data:\n  source: ftp\n"))
	assert.ErrorContains(t, err, "unknown")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Error(t, Load(filepath.Join(t.TempDir(), "nope.yaml")))
}
