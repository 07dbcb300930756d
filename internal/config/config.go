// Package config provides runtime configuration values for the scanner.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the knobs for the scan flow, catalog and HTTP server.
type Config struct {
	ProductID       string
	ProductIDFile   string
	CatalogFile     string
	HTTPAddr        string
	ShutdownTimeout time.Duration
	WatchDebounce   time.Duration
	LogLevel        string
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
		ProductID:       getenv("PRODUCT_ID", "12345"),
		ProductIDFile:   getenv("PRODUCT_ID_FILE", "product_id.txt"),
		CatalogFile:     getenv("CATALOG_FILE", "products.json"),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		WatchDebounce:   durenvms("WATCH_DEBOUNCE_MS", 200),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}
}
