package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Oracle       OracleConfig
	Wagering     WageringConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Oracle.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Wagering.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WAGERBOOK_APP_ENV" required:"true"`
	Port         string `envconfig:"WAGERBOOK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WAGERBOOK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WAGERBOOK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"WAGERBOOK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"WAGERBOOK_DB_DSN"`
	Driver string `envconfig:"WAGERBOOK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WAGERBOOK_DB_HOST"`
	LegacyPort     int    `envconfig:"WAGERBOOK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WAGERBOOK_DB_USER"`
	LegacyPassword string `envconfig:"WAGERBOOK_DB_PASSWORD"`
	LegacyName     string `envconfig:"WAGERBOOK_DB_NAME"`
	LegacySSLMode  string `envconfig:"WAGERBOOK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WAGERBOOK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WAGERBOOK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WAGERBOOK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WAGERBOOK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WAGERBOOK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WAGERBOOK_REDIS_ADDR"`
	Password     string        `envconfig:"WAGERBOOK_REDIS_PASSWORD"`
	DB           int           `envconfig:"WAGERBOOK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WAGERBOOK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WAGERBOOK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WAGERBOOK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WAGERBOOK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WAGERBOOK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// OracleConfig identifies the single identity allowed to report results.
type OracleConfig struct {
	Address string `envconfig:"WAGERBOOK_ORACLE_ADDRESS" required:"true"`
}

func (o OracleConfig) validate() error {
	if strings.TrimSpace(o.Address) == "" {
		return fmt.Errorf("%s must not be blank", EnvOracleAddress)
	}
	return nil
}

// WageringConfig carries the responsible-gambling ceiling, expressed in the
// same minor currency unit as bet amounts.
type WageringConfig struct {
	StakeLimitCents int64 `envconfig:"WAGERBOOK_STAKE_LIMIT" default:"1000000000"`
}

func (w WageringConfig) validate() error {
	if w.StakeLimitCents <= 0 {
		return fmt.Errorf("%s must be positive", EnvStakeLimit)
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WAGERBOOK_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"WAGERBOOK_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"WAGERBOOK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"WAGERBOOK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	WagerTopic        string `envconfig:"WAGERBOOK_PUBSUB_WAGER_TOPIC" default:"wagerbook-wager-events"`
	WagerSubscription string `envconfig:"WAGERBOOK_PUBSUB_WAGER_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"WAGERBOOK_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"WAGERBOOK_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"WAGERBOOK_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
