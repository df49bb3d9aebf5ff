// Package config collects the host's environment-driven settings,
// following the teacher's os.Getenv-plus-documented-default style from
// cmd/server/main.go. The core package itself takes no configuration:
// its two resource ceilings are constants (tabular.MaxInputBytes,
// tabular.MaxRows).
package config

import (
	"os"
	"strconv"
)

// HostConfig is every setting the HTTP/job/run-ledger hosts need.
type HostConfig struct {
	// HTTPAddr is the address the Echo server listens on.
	HTTPAddr string
	// RedisAddr is the Asynq broker address for the job queue.
	RedisAddr string
	// PostgresDSN is the run ledger's connection string. Empty disables
	// the run ledger entirely.
	PostgresDSN string
	// MaxUploadBytes bounds a single HTTP upload; independent of the
	// core's own MaxInputBytes ceiling so an operator can set a tighter
	// host-level limit without touching core constants.
	MaxUploadBytes int64
	// Environment selects the logger profile ("development" or "production").
	Environment string
}

// Load reads HostConfig from the environment, applying documented
// defaults for anything unset.
func Load() HostConfig {
	return HostConfig{
		HTTPAddr:       getEnv("SCHEDCORE_HTTP_ADDR", ":8080"),
		RedisAddr:      getEnv("SCHEDCORE_REDIS_ADDR", "localhost:6379"),
		PostgresDSN:    getEnv("SCHEDCORE_POSTGRES_DSN", ""),
		MaxUploadBytes: getEnvInt64("SCHEDCORE_MAX_UPLOAD_BYTES", 100*1024*1024),
		Environment:    getEnv("APP_ENV", "production"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
