package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty because every tag already carries the DUKKAN_ prefix.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "DUKKAN_DB_DSN"
	EnvDBHost = "DUKKAN_DB_HOST"
	EnvDBUser = "DUKKAN_DB_USER"
	EnvDBName = "DUKKAN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Monitor      MonitorConfig
	Jobs         JobsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
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
	Env          string `envconfig:"DUKKAN_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"DUKKAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DUKKAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DUKKAN_DB_DSN"`
	Driver string `envconfig:"DUKKAN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DUKKAN_DB_HOST"`
	LegacyPort     int    `envconfig:"DUKKAN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DUKKAN_DB_USER"`
	LegacyPassword string `envconfig:"DUKKAN_DB_PASSWORD"`
	LegacyName     string `envconfig:"DUKKAN_DB_NAME"`
	LegacySSLMode  string `envconfig:"DUKKAN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DUKKAN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DUKKAN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DUKKAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DUKKAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DUKKAN_REDIS_URL"`
	Address      string        `envconfig:"DUKKAN_REDIS_ADDR"`
	Password     string        `envconfig:"DUKKAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"DUKKAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DUKKAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DUKKAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DUKKAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DUKKAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DUKKAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DUKKAN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DUKKAN_AUTO_MIGRATE" default:"false"`
}

type MonitorConfig struct {
	PollInterval time.Duration `envconfig:"DUKKAN_MONITOR_POLL_INTERVAL" default:"30s"`

	// A worker replica can run one poller for a fixed scope. Empty
	// BusinessCode leaves the monitor off.
	BusinessCode string `envconfig:"DUKKAN_MONITOR_BUSINESS_CODE"`
	BranchName   string `envconfig:"DUKKAN_MONITOR_BRANCH_NAME"`
	Role         string `envconfig:"DUKKAN_MONITOR_ROLE" default:"owner"`
}

type JobsConfig struct {
	Interval time.Duration `envconfig:"DUKKAN_JOBS_INTERVAL" default:"1h"`
	LockKey  string        `envconfig:"DUKKAN_JOBS_LOCK_KEY" default:"jobs:worker"`
	LockTTL  time.Duration `envconfig:"DUKKAN_JOBS_LOCK_TTL" default:"55m"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"DUKKAN_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	ProductEventsTopic string `envconfig:"DUKKAN_PUBSUB_PRODUCT_EVENTS_TOPIC"`
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
