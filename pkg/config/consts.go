package config

const (
	EnvPrefix = "TECHSTORE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "TECHSTORE_APP_ENV"
	EnvPort   = "TECHSTORE_APP_PORT"

	EnvDBDSN  = "TECHSTORE_DB_DSN"
	EnvDBHost = "TECHSTORE_DB_HOST"
	EnvDBUser = "TECHSTORE_DB_USER"
	EnvDBName = "TECHSTORE_DB_NAME"

	EnvRedisURL = "TECHSTORE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
