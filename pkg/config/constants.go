package config

// EnvPrefix scopes all service environment variables.
const EnvPrefix = "LUNIO"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "LUNIO_APP_ENV"
	EnvPort   = "LUNIO_APP_PORT"

	EnvDBDSN  = "LUNIO_DB_DSN"
	EnvDBHost = "LUNIO_DB_HOST"
	EnvDBUser = "LUNIO_DB_USER"
	EnvDBName = "LUNIO_DB_NAME"

	EnvRedisURL  = "LUNIO_REDIS_URL"
	EnvJWTSecret = "LUNIO_JWT_SECRET"
	EnvJWTIssuer = "LUNIO_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
