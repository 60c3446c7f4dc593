package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/ougirez/agreste/internal/pkg/cache"
	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/store"
	"github.com/ougirez/agreste/internal/pkg/store/xpgx"
	"github.com/ougirez/agreste/internal/service/loader"
)

func documentNames() loader.Names {
	return loader.Names{
		Census:      viper.GetString(constants.ViperCensusFileKey),
		Regions:     viper.GetString(constants.ViperRegionsFileKey),
		Departments: viper.GetString(constants.ViperDepartmentsFileKey),
	}
}

// openStore returns a nil store and a no-op close when no database is configured.
func openStore(ctx context.Context) (store.Store, func(), error) {
	url := viper.GetString(constants.ViperDatabaseURLKey)
	if url == "" {
		return nil, func() {}, nil
	}

	pool, closePool, err := xpgx.Connect(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("xpgx.Connect: %w", err)
	}
	return store.NewStore(pool), closePool, nil
}

func newLoader(s store.Store) (loader.Loader, error) {
	switch source := viper.GetString(constants.ViperDataSourceKey); source {
	case constants.DataSourceFiles:
		return loader.NewDocumentLoader(loader.FileFetcher{Dir: viper.GetString(constants.ViperDataDirKey)}, documentNames()), nil
	case constants.DataSourceHTTP:
		fetcher := loader.HTTPFetcher{
			BaseURL:  viper.GetString(constants.ViperDataBaseURLKey),
			Client:   &http.Client{Timeout: 30 * time.Second},
			Retries:  viper.GetUint64(constants.ViperFetchRetriesKey),
			Interval: viper.GetDuration(constants.ViperFetchBackoffKey),
		}
		return loader.NewDocumentLoader(fetcher, documentNames()), nil
	case constants.DataSourcePostgres:
		if s == nil {
			return nil, fmt.Errorf("%s=%s needs %s", constants.ViperDataSourceKey, source, constants.ViperDatabaseURLKey)
		}
		return loader.NewStoreLoader(s), nil
	default:
		return nil, fmt.Errorf("unknown %s %q", constants.ViperDataSourceKey, source)
	}
}

func newChartCache() cache.Cache {
	client := cache.OpenRedis(
		viper.GetString(constants.ViperRedisAddrKey),
		viper.GetString(constants.ViperRedisPasswordKey),
		viper.GetInt(constants.ViperRedisDBKey),
	)
	if client == nil {
		return cache.Nop()
	}
	return cache.NewRedis(client, "agreste:")
}
