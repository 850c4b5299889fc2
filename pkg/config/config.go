package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Storage StorageConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"THREADLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"THREADLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"THREADLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"THREADLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"THREADLINE_DB_DSN" default:"threadline.db"`
	Driver string `envconfig:"THREADLINE_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"THREADLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"THREADLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"THREADLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"THREADLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"THREADLINE_REDIS_URL"`
	Address      string        `envconfig:"THREADLINE_REDIS_ADDR"`
	Password     string        `envconfig:"THREADLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"THREADLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"THREADLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"THREADLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"THREADLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"THREADLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"THREADLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether a Redis connection target was provided.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

// StorageConfig selects the snapshot storage backend for cart and wishlist
// state.
type StorageConfig struct {
	Backend     string `envconfig:"THREADLINE_STORAGE_BACKEND" default:"file"`
	Dir         string `envconfig:"THREADLINE_STORAGE_DIR" default:"data"`
	CartKey     string `envconfig:"THREADLINE_STORAGE_CART_KEY" default:"shopping-cart"`
	WishlistKey string `envconfig:"THREADLINE_STORAGE_WISHLIST_KEY" default:"wishlist-storage"`
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case StorageBackendMemory, StorageBackendFile, StorageBackendRedis:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q", s.Backend)
}

// Normalized returns the backend name in canonical form.
func (s StorageConfig) Normalized() string {
	return strings.ToLower(strings.TrimSpace(s.Backend))
}

type CatalogConfig struct {
	AutoMigrate bool `envconfig:"THREADLINE_CATALOG_AUTO_MIGRATE" default:"false"`
	AutoSeed    bool `envconfig:"THREADLINE_CATALOG_AUTO_SEED" default:"false"`
}
