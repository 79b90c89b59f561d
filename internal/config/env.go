package config

const (
	EnvDatabaseURL   = "DATABASE_URL"
	EnvStoreDriver   = "STORE_DRIVER"
	EnvDBConnTimeout = "DB_CONN_TIMEOUT"

	EnvSessionSecret = "SESSION_SECRET"
	EnvSessionTTL    = "SESSION_TTL"

	EnvLoginRate  = "LOGIN_RATE"
	EnvLoginBurst = "LOGIN_BURST"

	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)
