package config

import (
	"testing"
	"time"
)

var allKeys = []string{
	"PRODUCT_ID",
	"PRODUCT_ID_FILE",
	"CATALOG_FILE",
	"HTTP_ADDR",
	"SHUTDOWN_TIMEOUT",
	"WATCH_DEBOUNCE_MS",
	"LOG_LEVEL",
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
	c := Load()
	if c.ProductID != "12345" {
		t.Fatalf("ProductID default: %q", c.ProductID)
	}
	if c.ProductIDFile != "product_id.txt" {
		t.Fatalf("ProductIDFile default: %q", c.ProductIDFile)
	}
	if c.CatalogFile != "products.json" {
		t.Fatalf("CatalogFile default: %q", c.CatalogFile)
	}
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
	if c.WatchDebounce != 200*time.Millisecond {
		t.Fatalf("WatchDebounce default")
	}
	if c.LogLevel != "info" {
		t.Fatalf("LogLevel default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PRODUCT_ID", "999")
	t.Setenv("PRODUCT_ID_FILE", "/tmp/id.txt")
	t.Setenv("CATALOG_FILE", "/tmp/catalog.json")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	t.Setenv("WATCH_DEBOUNCE_MS", "50")
	t.Setenv("LOG_LEVEL", "debug")
	c := Load()
	if c.ProductID != "999" || c.ProductIDFile != "/tmp/id.txt" || c.CatalogFile != "/tmp/catalog.json" {
		t.Fatalf("paths env: %+v", c)
	}
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout env")
	}
	if c.WatchDebounce != 50*time.Millisecond {
		t.Fatalf("WatchDebounce env")
	}
	if c.LogLevel != "debug" {
		t.Fatalf("LogLevel env")
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("WATCH_DEBOUNCE_MS", "x")
	c := Load()
	if c.ShutdownTimeout != 15*time.Second || c.WatchDebounce != 200*time.Millisecond {
		t.Fatalf("expected defaults for malformed values: %+v", c)
	}
}
