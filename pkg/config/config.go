package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	HTTP         HTTPConfig
	Idempotency  IdempotencyConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PROCUREHUB_APP_ENV" default:"dev"`
	Port         string `envconfig:"PROCUREHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PROCUREHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PROCUREHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"PROCUREHUB_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"PROCUREHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROCUREHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROCUREHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROCUREHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROCUREHUB_REDIS_URL"`
	Address      string        `envconfig:"PROCUREHUB_REDIS_ADDR"`
	Password     string        `envconfig:"PROCUREHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROCUREHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROCUREHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROCUREHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROCUREHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROCUREHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROCUREHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type HTTPConfig struct {
	AllowedOrigins []string      `envconfig:"PROCUREHUB_HTTP_ALLOWED_ORIGINS" default:"*"`
	ReadTimeout    time.Duration `envconfig:"PROCUREHUB_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"PROCUREHUB_HTTP_WRITE_TIMEOUT" default:"30s"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"PROCUREHUB_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PROCUREHUB_AUTO_MIGRATE" default:"false"`
}
