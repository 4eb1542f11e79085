// Package config reads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// Load reads a .env file if one is present. Missing files are fine; real
// environment variables always win.
func Load() {
	_ = godotenv.Load()
}

func GetListenAddr() string {
	addr := os.Getenv("EVENTDESK_LISTEN")
	if addr == "" {
		addr = ":8080"
	}
	return addr
}

// GetBackendURL returns the base URL of the remote resource API that holds
// the events and users collections.
func GetBackendURL() string {
	url := os.Getenv("EVENTDESK_BACKEND_URL")
	if url == "" {
		url = "http://localhost:3000"
	}
	return url
}

func GetRedisAddr() string {
	addr := os.Getenv("EVENTDESK_REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	return addr
}

// GetRequestTimeout bounds every call to the remote resource API. A hung
// backend request must not hang the user flow forever.
func GetRequestTimeout() time.Duration {
	secs, err := strconv.Atoi(os.Getenv("EVENTDESK_HTTP_TIMEOUT"))
	if err != nil || secs <= 0 {
		secs = 10
	}
	return time.Duration(secs) * time.Second
}

// GetCacheTTL is how long event reads are served from the local cache before
// the backend is consulted again.
func GetCacheTTL() time.Duration {
	secs, err := strconv.Atoi(os.Getenv("EVENTDESK_CACHE_TTL"))
	if err != nil || secs < 0 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	level := os.Getenv("EVENTDESK_LOG_LEVEL")
	if level == "" {
		return Info
	}
	return LogLevel(level)
}

func IsDebug() bool {
	return os.Getenv("EVENTDESK_DEBUG") == "true"
}
