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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Coverage     CoverageConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VENDORLINK_APP_ENV" required:"true"`
	Port         string `envconfig:"VENDORLINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VENDORLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VENDORLINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VENDORLINK_DB_DSN"`
	Driver string `envconfig:"VENDORLINK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VENDORLINK_DB_HOST"`
	LegacyPort     int    `envconfig:"VENDORLINK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VENDORLINK_DB_USER"`
	LegacyPassword string `envconfig:"VENDORLINK_DB_PASSWORD"`
	LegacyName     string `envconfig:"VENDORLINK_DB_NAME"`
	LegacySSLMode  string `envconfig:"VENDORLINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VENDORLINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VENDORLINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VENDORLINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENDORLINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VENDORLINK_REDIS_URL"`
	Address      string        `envconfig:"VENDORLINK_REDIS_ADDR"`
	Password     string        `envconfig:"VENDORLINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENDORLINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENDORLINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VENDORLINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VENDORLINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENDORLINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENDORLINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"VENDORLINK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VENDORLINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"VENDORLINK_JWT_EXPIRATION_MINUTES" required:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VENDORLINK_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"VENDORLINK_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	LifecycleTopic string `envconfig:"VENDORLINK_PUBSUB_LIFECYCLE_TOPIC"`
}

// Enabled reports whether lifecycle event publishing is configured.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.LifecycleTopic) != ""
}

type CoverageConfig struct {
	CacheTTL time.Duration `envconfig:"VENDORLINK_COVERAGE_CACHE_TTL" default:"10m"`
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
