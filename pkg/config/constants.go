package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "VENDORLINK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error text).
const (
	EnvAppEnv          = "VENDORLINK_APP_ENV"
	EnvPort            = "VENDORLINK_APP_PORT"
	EnvDBDSN           = "VENDORLINK_DB_DSN"
	EnvDBHost          = "VENDORLINK_DB_HOST"
	EnvDBUser          = "VENDORLINK_DB_USER"
	EnvDBName          = "VENDORLINK_DB_NAME"
	EnvRedisURL        = "VENDORLINK_REDIS_URL"
	EnvJWTSecret       = "VENDORLINK_JWT_SECRET"
	EnvJWTIssuer       = "VENDORLINK_JWT_ISSUER"
	EnvJWTExpMins      = "VENDORLINK_JWT_EXPIRATION_MINUTES"
	EnvGCPProjectID    = "VENDORLINK_GCP_PROJECT_ID"
	EnvPubSubLifecycle = "VENDORLINK_PUBSUB_LIFECYCLE_TOPIC"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
