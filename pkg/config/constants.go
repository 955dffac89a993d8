package config

// EnvPrefix is applied by envconfig ahead of every variable name.
const EnvPrefix = "wagerbook"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Canonical environment variable names, shared with tests and deploy tooling.
const (
	EnvAppEnv   = "WAGERBOOK_APP_ENV"
	EnvPort     = "WAGERBOOK_APP_PORT"
	EnvLogLevel = "WAGERBOOK_LOG_LEVEL"

	EnvDBDSN    = "WAGERBOOK_DB_DSN"
	EnvDBHost   = "WAGERBOOK_DB_HOST"
	EnvDBUser   = "WAGERBOOK_DB_USER"
	EnvDBName   = "WAGERBOOK_DB_NAME"
	EnvRedisURL = "WAGERBOOK_REDIS_URL"

	EnvOracleAddress = "WAGERBOOK_ORACLE_ADDRESS"
	EnvStakeLimit    = "WAGERBOOK_STAKE_LIMIT"

	EnvGCPProjectID = "WAGERBOOK_GCP_PROJECT_ID"

	EnvPubSubWagerTopic        = "WAGERBOOK_PUBSUB_WAGER_TOPIC"
	EnvPubSubWagerSubscription = "WAGERBOOK_PUBSUB_WAGER_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
