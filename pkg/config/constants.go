package config

const EnvPrefix = "THREADLINE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendRedis  = "redis"
)

const (
	EnvAppEnv         = "THREADLINE_APP_ENV"
	EnvPort           = "THREADLINE_APP_PORT"
	EnvDBDSN          = "THREADLINE_DB_DSN"
	EnvDBDriver       = "THREADLINE_DB_DRIVER"
	EnvRedisURL       = "THREADLINE_REDIS_URL"
	EnvStorageBackend = "THREADLINE_STORAGE_BACKEND"
	EnvStorageDir     = "THREADLINE_STORAGE_DIR"
)
