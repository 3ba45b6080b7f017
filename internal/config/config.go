// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server and sessions.
type Config struct {
	HTTPAddr             string
	ShutdownTimeout      time.Duration
	CatalogFile          string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	SessionCookie        string
	SessionMax           int
	LogLevel             string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvms(key string, defMs int) time.Duration {
	ms := atoienv(key, defMs)
	return time.Duration(ms) * time.Millisecond
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout:      durenvs("SHUTDOWN_TIMEOUT", 15),
		CatalogFile:          getenv("CATALOG_FILE", ""),
		SessionTTL:           durenvs("SESSION_TTL", 1800),
		SessionSweepInterval: durenvms("SESSION_SWEEP_INTERVAL_MS", 60000),
		SessionCookie:        getenv("SESSION_COOKIE", "cart_session"),
		SessionMax:           atoienv("SESSION_MAX", 10000),
		LogLevel:             getenv("LOG_LEVEL", "info"),
	}
}
