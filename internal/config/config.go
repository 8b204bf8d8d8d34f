package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	// Channel catalog backend: http, sqlite, or postgres.
	CatalogDriver  string
	CatalogDSN     string // sqlite/postgres
	CatalogBaseURL string // http

	RequestTimeout time.Duration
	FetchTimeout   time.Duration
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:       addr,
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
		CatalogDriver:  envOr("CATALOG_DRIVER", "sqlite"),
		CatalogDSN:     envOr("CATALOG_DSN", ""),
		CatalogBaseURL: envOr("CATALOG_BASE_URL", "http://localhost:8008"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT_SEC", 30),
		FetchTimeout:   envDuration("FETCH_TIMEOUT_SEC", 15),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDuration(k string, defSec int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(defSec) * time.Second
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
