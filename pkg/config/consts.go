package config

// EnvPrefix scopes every envconfig variable consumed by the service.
const EnvPrefix = "BOUTIQUE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "BOUTIQUE_APP_ENV"
	EnvPort                   = "BOUTIQUE_APP_PORT"
	EnvDBDSN                  = "BOUTIQUE_DB_DSN"
	EnvDBHost                 = "BOUTIQUE_DB_HOST"
	EnvDBUser                 = "BOUTIQUE_DB_USER"
	EnvDBName                 = "BOUTIQUE_DB_NAME"
	EnvRedisURL               = "BOUTIQUE_REDIS_URL"
	EnvJWTSecret              = "BOUTIQUE_JWT_SECRET"
	EnvJWTIssuer              = "BOUTIQUE_JWT_ISSUER"
	EnvJWTExpMins             = "BOUTIQUE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "BOUTIQUE_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
