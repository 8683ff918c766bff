package config

// EnvPrefix is passed to envconfig; every field carries its full variable name.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv          = "STOREFRONT_APP_ENV"
	EnvPort            = "STOREFRONT_APP_PORT"
	EnvDBDSN           = "STOREFRONT_DB_DSN"
	EnvDBHost          = "STOREFRONT_DB_HOST"
	EnvDBUser          = "STOREFRONT_DB_USER"
	EnvDBName          = "STOREFRONT_DB_NAME"
	EnvUseSQLite       = "STOREFRONT_USE_SQLITE"
	EnvRedisURL        = "STOREFRONT_REDIS_URL"
	EnvJWTSecret       = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer       = "STOREFRONT_JWT_ISSUER"
	EnvBaseDomain      = "STOREFRONT_BASE_DOMAIN"
	EnvDefaultTheme    = "STOREFRONT_DEFAULT_THEME"
	EnvSubmitTimeout   = "STOREFRONT_CHECKOUT_SUBMIT_TIMEOUT"
	EnvAllowedOrigins  = "STOREFRONT_ALLOWED_ORIGINS"
	EnvTenantCacheTTL  = "STOREFRONT_TENANT_CACHE_TTL"
	EnvCheckoutSession = "STOREFRONT_CHECKOUT_SESSION_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
