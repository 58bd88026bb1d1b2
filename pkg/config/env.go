package config

const EnvPrefix = "SWEETSHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	CatalogSourceDB     = "db"
	CatalogSourceMemory = "memory"
	CatalogSourceRemote = "remote"
)

const (
	EnvAppEnv    = "SWEETSHOP_APP_ENV"
	EnvDBDSN     = "SWEETSHOP_DB_DSN"
	EnvDBHost    = "SWEETSHOP_DB_HOST"
	EnvDBUser    = "SWEETSHOP_DB_USER"
	EnvDBName    = "SWEETSHOP_DB_NAME"
	EnvRedisURL  = "SWEETSHOP_REDIS_URL"
	EnvSecretKey = "SWEETSHOP_SECRET_KEY"

	EnvCatalogSource        = "SWEETSHOP_CATALOG_SOURCE"
	EnvCatalogRemoteBaseURL = "SWEETSHOP_CATALOG_REMOTE_BASE_URL"
)

var splitDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
