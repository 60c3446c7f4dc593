package constants

const (
	ViperServerAddrKey  = "server.addr"
	ViperCorsOriginsKey = "cors.origins"

	ViperLogLevelKey  = "log.level"
	ViperLogFormatKey = "log.format"

	ViperDataSourceKey      = "data.source"
	ViperDataDirKey         = "data.dir"
	ViperDataBaseURLKey     = "data.base_url"
	ViperCensusFileKey      = "data.census_file"
	ViperRegionsFileKey     = "data.regions_file"
	ViperDepartmentsFileKey = "data.departments_file"
	ViperFetchRetriesKey    = "data.fetch_retries"
	ViperFetchBackoffKey    = "data.fetch_backoff"

	ViperDatabaseURLKey = "database.url"

	ViperRedisAddrKey     = "redis.addr"
	ViperRedisPasswordKey = "redis.password"
	ViperRedisDBKey       = "redis.db"

	ViperChartCacheTTLKey = "chart.cache_ttl"
	ViperChartWidthKey    = "chart.width"
	ViperChartHeightKey   = "chart.height"

	ViperSecretKey     = "auth.secret"
	ViperSigningKeyKey = "auth.signing_key"
)

const (
	DataSourceFiles    = "files"
	DataSourceHTTP     = "http"
	DataSourcePostgres = "postgres"
)

const (
	CookieKeySecretToken = "secret_token"

	CtxKeyRequestID = "request_id"
)
